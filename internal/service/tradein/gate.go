package tradein

import (
	"sync"
	"time"
)

const gatePruneThreshold = 1024

// Gate rejects a repeated submission from the same submitter while a previous
// one is in flight or succeeded less than window ago.
type Gate struct {
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]gateEntry
}

type gateEntry struct {
	inFlight    bool
	lastSuccess time.Time
}

// NewGate creates a gate with the given cooldown window.
func NewGate(window time.Duration, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{window: window, now: now, entries: make(map[string]gateEntry)}
}

// Enter reserves key. It returns false when key is busy or cooling down.
// Every successful Enter must be paired with Leave.
func (g *Gate) Enter(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if len(g.entries) >= gatePruneThreshold {
		g.pruneLocked(now)
	}

	e := g.entries[key]
	if e.inFlight {
		return false
	}
	if !e.lastSuccess.IsZero() && now.Sub(e.lastSuccess) < g.window {
		return false
	}
	e.inFlight = true
	g.entries[key] = e
	return true
}

// Leave releases key. A successful submission starts the cooldown.
func (g *Gate) Leave(key string, succeeded bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e := g.entries[key]
	e.inFlight = false
	if succeeded {
		e.lastSuccess = g.now()
	}
	if e.lastSuccess.IsZero() {
		delete(g.entries, key)
		return
	}
	g.entries[key] = e
}

func (g *Gate) pruneLocked(now time.Time) {
	for k, e := range g.entries {
		if !e.inFlight && now.Sub(e.lastSuccess) >= g.window {
			delete(g.entries, k)
		}
	}
}
