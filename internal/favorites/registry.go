package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheFactory returns the durable cache for a Telegram user.
type CacheFactory func(telegramID int64) Cache

// Registry hands out one Store per Telegram user.
// Idle stores are bounded by an LRU; acquired or watched stores are pinned
// so every holder shares the same instance.
type Registry struct {
	newCache CacheFactory
	log      *slog.Logger

	mu     sync.Mutex
	stores *lru.Cache[int64, *Store]
	pinned map[int64]*pin
}

type pin struct {
	store *Store
	refs  int
}

// NewRegistry creates a registry keeping at most size idle stores.
func NewRegistry(size int, newCache CacheFactory, logger *slog.Logger) (*Registry, error) {
	stores, err := lru.New[int64, *Store](size)
	if err != nil {
		return nil, fmt.Errorf("favorites registry: %w", err)
	}
	if newCache == nil {
		newCache = func(int64) Cache { return NopCache{} }
	}
	return &Registry{
		newCache: newCache,
		log:      logger,
		stores:   stores,
		pinned:   make(map[int64]*pin),
	}, nil
}

// RedisKey returns the cache key of a user's favorites.
func RedisKey(prefix string, telegramID int64) string {
	return fmt.Sprintf("%s:%d", prefix, telegramID)
}

// Get returns the initialized store of telegramID without pinning it. Once
// evicted, a later call builds a fresh Store over the same cache, so callers
// that mutate across a blocking call should use Acquire.
func (r *Registry) Get(ctx context.Context, telegramID int64) *Store {
	r.mu.Lock()
	s := r.lookupLocked(telegramID)
	r.mu.Unlock()

	s.Initialize(ctx)
	return s
}

// Acquire returns the user's store pinned until release is called. While
// any pin is held every lookup of telegramID returns the same instance, so
// two Stores never race on the user's cache key.
func (r *Registry) Acquire(ctx context.Context, telegramID int64) (store *Store, release func()) {
	r.mu.Lock()
	s := r.lookupLocked(telegramID)
	p, ok := r.pinned[telegramID]
	if !ok {
		p = &pin{store: s}
		r.pinned[telegramID] = p
		r.stores.Remove(telegramID)
	}
	p.refs++
	r.mu.Unlock()

	s.Initialize(ctx)

	var once sync.Once
	return s, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			p.refs--
			if p.refs == 0 {
				delete(r.pinned, telegramID)
				r.stores.Add(telegramID, s)
			}
		})
	}
}

// Watch pins the user's store and observes it with fn: fn gets the current
// set first, then every mutation, until stop is called.
func (r *Registry) Watch(ctx context.Context, telegramID int64, fn Listener) (stop func()) {
	s, release := r.Acquire(ctx, telegramID)
	unsubscribe := s.Observe(ctx, fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			release()
		})
	}
}

// Len returns the number of stores held, pinned or idle.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stores.Len() + len(r.pinned)
}

func (r *Registry) lookupLocked(telegramID int64) *Store {
	if p, ok := r.pinned[telegramID]; ok {
		return p.store
	}
	if s, ok := r.stores.Get(telegramID); ok {
		return s
	}
	s := NewStore(r.newCache(telegramID), r.log.With("telegram_id", telegramID))
	r.stores.Add(telegramID, s)
	return s
}
