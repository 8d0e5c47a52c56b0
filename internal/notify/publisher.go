// Package notify announces accepted orders to other services.
package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	applog "weblarek/internal/log"
)

const SubjectOrderCreated = "order.created"

type OrderCreated struct {
	OrderID   string   `json:"order_id"`
	Total     int64    `json:"total"`
	Items     []string `json:"items"`
	Payment   string   `json:"payment"`
	CreatedAt string   `json:"created_at"`
}

type Publisher interface {
	PublishOrderCreated(ev OrderCreated) error
	Close()
}

// New connects to NATS when url is set; otherwise, or when the connection
// fails, publishing is disabled.
func New(url string) Publisher {
	if url == "" {
		applog.Info(nil, "notify.disabled", nil)
		return Noop{}
	}
	p, err := NewNATS(url)
	if err != nil {
		applog.Error(nil, "notify.connect.fail", err, map[string]any{"url": url})
		return Noop{}
	}
	return p
}

type NATS struct {
	nc *nats.Conn
}

func NewNATS(url string) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("larek-api"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			applog.Security(nil, "notify.disconnected", map[string]any{"err": fmt.Sprint(err)})
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			applog.Info(nil, "notify.reconnected", map[string]any{"url": nc.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	applog.Info(nil, "notify.connected", map[string]any{"url": url})
	return &NATS{nc: nc}, nil
}

func (p *NATS) PublishOrderCreated(ev OrderCreated) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.nc.Publish(SubjectOrderCreated, data); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectOrderCreated, err)
	}
	if err := p.nc.FlushTimeout(2 * time.Second); err != nil {
		return fmt.Errorf("flush %s: %w", SubjectOrderCreated, err)
	}
	return nil
}

func (p *NATS) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		p.nc.Close()
	}
}

type Noop struct{}

func (Noop) PublishOrderCreated(OrderCreated) error { return nil }
func (Noop) Close()                                 {}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []OrderCreated
}

func (r *Recorder) PublishOrderCreated(ev OrderCreated) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Events() []OrderCreated {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]OrderCreated(nil), r.events...)
}

func (r *Recorder) Close() {}
