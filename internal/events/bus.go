// Package events is a flat, synchronous publish/subscribe bus.
//
// Handlers run in registration order on the goroutine that calls Emit. A
// handler may Emit again; the nested dispatch finishes before the outer one
// continues. The first handler error stops delivery of that event.
package events

import (
	"errors"
	"fmt"
	"sync"
)

var ErrPayloadType = errors.New("events: unexpected payload type")

type Handler func(payload any) error

// HandlerError reports which event a failing handler was subscribed to.
type HandlerError struct {
	Event string
	Err   error
}

func (e *HandlerError) Error() string { return fmt.Sprintf("event %q: %v", e.Event, e.Err) }
func (e *HandlerError) Unwrap() error { return e.Err }

type Subscription struct {
	name string
	id   uint64
}

type entry struct {
	id uint64
	fn Handler
}

type Bus struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[string][]entry
}

func New() *Bus {
	return &Bus{handlers: map[string][]entry{}}
}

func (b *Bus) On(name string, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.handlers[name] = append(b.handlers[name], entry{id: b.next, fn: h})
	return Subscription{name: name, id: b.next}
}

// Off removes a subscription; unknown subscriptions are ignored.
func (b *Bus) Off(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	hs := b.handlers[s.name]
	for i, e := range hs {
		if e.id == s.id {
			b.handlers[s.name] = append(hs[:i:i], hs[i+1:]...)
			break
		}
	}
	if len(b.handlers[s.name]) == 0 {
		delete(b.handlers, s.name)
	}
}

func (b *Bus) Emit(name string, payload any) error {
	b.mu.RLock()
	hs := b.handlers[name]
	b.mu.RUnlock()

	for _, e := range hs {
		if err := e.fn(payload); err != nil {
			var he *HandlerError
			if errors.As(err, &he) {
				return err
			}
			return &HandlerError{Event: name, Err: err}
		}
	}
	return nil
}

// Subscribe registers a handler that receives the payload as T.
func Subscribe[T any](b *Bus, name string, fn func(T) error) Subscription {
	return b.On(name, func(payload any) error {
		v, ok := payload.(T)
		if !ok {
			return fmt.Errorf("%w: got %T", ErrPayloadType, payload)
		}
		return fn(v)
	})
}
