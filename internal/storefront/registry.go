package storefront

import (
	"sync"
	"time"
)

type session struct {
	sf       *Storefront
	lastSeen time.Time
}

// Registry maps session ids to storefronts, creating them on first use. It
// holds at most limit sessions; a new one past the cap evicts the session seen
// least recently.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  func() *Storefront
	now      func() time.Time
	limit    int
}

// NewRegistry caps the registry at limit sessions; limit <= 0 means no cap.
func NewRegistry(factory func() *Storefront, limit int) *Registry {
	return &Registry{
		sessions: map[string]*session{},
		factory:  factory,
		now:      time.Now,
		limit:    limit,
	}
}

// Get returns the storefront for sid and marks it as seen.
func (r *Registry) Get(sid string) *Storefront {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sid]
	if !ok {
		if r.limit > 0 && len(r.sessions) >= r.limit {
			r.evictOldest()
		}
		s = &session{sf: r.factory()}
		r.sessions[sid] = s
	}
	s.lastSeen = r.now()
	return s.sf
}

func (r *Registry) evictOldest() {
	var (
		oldest string
		seen   time.Time
	)
	for sid, s := range r.sessions {
		if oldest == "" || s.lastSeen.Before(seen) {
			oldest, seen = sid, s.lastSeen
		}
	}
	delete(r.sessions, oldest)
}

// Sweep drops sessions idle for longer than idle and reports how many went.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	n := 0
	for sid, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, sid)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
