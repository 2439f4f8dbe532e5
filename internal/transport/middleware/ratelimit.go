package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/topgearmoscow/miniapp-backend/pkg/ctxutil"
)

// RateLimitMessage is the body text of a 429 response.
const RateLimitMessage = "Слишком много запросов. Попробуйте позже."

const bucketIdleTTL = 10 * time.Minute

// RateLimiter is a per-caller token bucket limiter. Callers with a session
// are keyed by Telegram id, the rest by client IP without port.
type RateLimiter struct {
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// bucket is guarded by RateLimiter.mu.
type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter creates a limiter that drops idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := newRateLimiter(time.Now)
	go rl.cleanup(cleanupInterval)
	return rl
}

func newRateLimiter(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		now:     now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
}

// Stop terminates the background cleanup. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit returns middleware allowing maxPerMinute requests per caller with a
// burst of the same size. Rejected requests get 429 and Retry-After.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	capacity := float64(maxPerMinute)
	perSecond := capacity / 60

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wait, ok := rl.take(callerKey(r), capacity, perSecond)
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, RateLimitMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take spends one token for key. When the bucket is empty it returns how long
// until the next token accrues.
func (rl *RateLimiter) take(key string, capacity, perSecond float64) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, seen: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(capacity, b.tokens+now.Sub(b.seen).Seconds()*perSecond)
	b.seen = now

	if b.tokens < 1 {
		if perSecond <= 0 {
			return time.Minute, false
		}
		return time.Duration((1 - b.tokens) / perSecond * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

func callerKey(r *http.Request) string {
	if id, ok := ctxutil.TelegramIDFromCtx(r.Context()); ok {
		return "tg:" + strconv.FormatInt(id, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-bucketIdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if b.seen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}
