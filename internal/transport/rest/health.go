package rest

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const probeTimeout = 3 * time.Second

// Overall health states.
const (
	healthOK       = "ok"
	healthDegraded = "degraded"
	healthDown     = "down"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to a health component.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type component struct {
	name     string
	p        pinger
	critical bool
}

// HealthHandler serves the liveness, readiness and full health probes.
//
// A failing critical component (the database) takes the service down. A
// failing optional one (the Redis favorites mirror) only degrades it: the
// favorites keep working in memory, so readiness stays green.
type HealthHandler struct {
	components []component
	version    string
	started    time.Time
	now        func() time.Time
}

// NewHealthHandler creates a HealthHandler with the database as its critical
// component.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{
		components: []component{{name: "database", p: db, critical: true}},
		version:    version,
		started:    time.Now(),
		now:        time.Now,
	}
}

// WithComponent registers another dependency checked by /ready and /health.
func (h *HealthHandler) WithComponent(name string, p pinger, critical bool) *HealthHandler {
	h.components = append(h.components, component{name: name, p: p, critical: critical})
	return h
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Uptime     string                `json:"uptime,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
	Latency  string `json:"latency,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: healthOK, Timestamp: h.now()})
}

// Ready answers 503 only when a critical component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, overall := h.check(r.Context())
	writeJSON(w, statusCode(overall), HealthResponse{Status: overall, Timestamp: h.now()})
}

// Health reports every component with its latency, plus version and uptime.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, overall := h.check(r.Context())
	now := h.now()
	writeJSON(w, statusCode(overall), HealthResponse{
		Status:     overall,
		Version:    h.version,
		Uptime:     now.Sub(h.started).Truncate(time.Second).String(),
		Components: components,
		Timestamp:  now,
	})
}

func statusCode(overall string) int {
	if overall == healthDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// check pings all components concurrently under one deadline.
func (h *HealthHandler) check(ctx context.Context) (map[string]CompStatus, string) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	results := make([]CompStatus, len(h.components))
	var wg sync.WaitGroup
	for i, c := range h.components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			if err := c.p.Ping(ctx); err != nil {
				results[i] = CompStatus{Status: healthDown, Critical: c.critical, Error: err.Error()}
				return
			}
			results[i] = CompStatus{Status: healthOK, Critical: c.critical, Latency: time.Since(start).String()}
		}()
	}
	wg.Wait()

	out := make(map[string]CompStatus, len(h.components))
	overall := healthOK
	for i, c := range h.components {
		out[c.name] = results[i]
		if results[i].Status == healthOK {
			continue
		}
		if c.critical {
			overall = healthDown
		} else if overall == healthOK {
			overall = healthDegraded
		}
	}
	return out, overall
}
