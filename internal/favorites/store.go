// Package favorites keeps per-user sets of favorite catalog items and
// mirrors them to a durable cache.
package favorites

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// Cache is the durable mirror of a favorites set. Every write replaces the
// whole payload. ReadAll returns nil, nil when nothing was stored yet.
type Cache interface {
	ReadAll(ctx context.Context) ([]byte, error)
	WriteAll(ctx context.Context, data []byte) error
}

// Listener receives a private copy of the set after every mutation.
// A listener must not call mutating Store methods.
type Listener func(snapshot []domain.FavoriteItem)

type subscription struct {
	id uint64
	fn Listener
}

// Store is an observable set of FavoriteItem.
//
// Mutations are serialized: each one updates memory, writes the whole set to
// the cache and invokes every listener in registration order before returning.
// An Add of a present item changes nothing and skips both steps.
// Cache failures are logged and never undo the in-memory change.
type Store struct {
	cache Cache
	log   *slog.Logger
	now   func() time.Time

	initOnce sync.Once
	loaded   bool

	mutateMu sync.Mutex // held across mutate, persist and notify

	mu        sync.RWMutex
	items     []domain.FavoriteItem
	subs      []subscription
	nextSubID uint64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for AddedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty, uninitialized store. A nil cache keeps the set in memory only.
func NewStore(cache Cache, logger *slog.Logger, opts ...Option) *Store {
	if cache == nil {
		cache = NopCache{}
	}
	s := &Store{
		cache: cache,
		log:   logger.With("service", "favorites"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted set once. Read or parse failures leave the set empty.
// Later calls are no-ops.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		items := s.load(ctx)

		s.mu.Lock()
		s.items = items
		s.loaded = true
		s.mu.Unlock()
	})
}

func (s *Store) load(ctx context.Context) []domain.FavoriteItem {
	data, err := s.cache.ReadAll(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "favorites read failed", slog.String("error", err.Error()))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var raw []domain.FavoriteItem
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.WarnContext(ctx, "favorites payload corrupt", slog.String("error", err.Error()))
		return nil
	}

	items := make([]domain.FavoriteItem, 0, len(raw))
	for _, it := range raw {
		if !it.ItemType.IsValid() || it.ID == "" || indexOf(items, it.ID, it.ItemType) >= 0 {
			continue
		}
		items = append(items, it)
	}
	return items
}

// Loaded reports whether Initialize has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Add inserts (id, itemType) unless already present. A duplicate is a no-op:
// nothing is written and no listener runs.
func (s *Store) Add(ctx context.Context, id string, itemType domain.ItemType) error {
	if err := validate(id, itemType); err != nil {
		return err
	}
	s.mutate(ctx, func(items []domain.FavoriteItem) ([]domain.FavoriteItem, bool) {
		if indexOf(items, id, itemType) >= 0 {
			return items, false
		}
		return append(items, domain.FavoriteItem{ID: id, ItemType: itemType, AddedAt: s.now().UnixMilli()}), true
	})
	return nil
}

// Remove deletes (id, itemType) if present. Removing an absent item still persists and notifies.
func (s *Store) Remove(ctx context.Context, id string, itemType domain.ItemType) error {
	if err := validate(id, itemType); err != nil {
		return err
	}
	s.mutate(ctx, func(items []domain.FavoriteItem) ([]domain.FavoriteItem, bool) {
		if i := indexOf(items, id, itemType); i >= 0 {
			return slices.Delete(items, i, i+1), true
		}
		return items, true
	})
	return nil
}

// Toggle flips membership of (id, itemType) and returns the new membership.
func (s *Store) Toggle(ctx context.Context, id string, itemType domain.ItemType) (bool, error) {
	if err := validate(id, itemType); err != nil {
		return false, err
	}
	var added bool
	s.mutate(ctx, func(items []domain.FavoriteItem) ([]domain.FavoriteItem, bool) {
		if i := indexOf(items, id, itemType); i >= 0 {
			added = false
			return slices.Delete(items, i, i+1), true
		}
		added = true
		return append(items, domain.FavoriteItem{ID: id, ItemType: itemType, AddedAt: s.now().UnixMilli()}), true
	})
	return added, nil
}

// Clear empties the set.
func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, func([]domain.FavoriteItem) ([]domain.FavoriteItem, bool) {
		return nil, true
	})
}

// IsFavorite reports whether (id, itemType) is in the set.
func (s *Store) IsFavorite(id string, itemType domain.ItemType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.items, id, itemType) >= 0
}

// IDsByType returns ids of the given type in insertion order.
func (s *Store) IDsByType(itemType domain.ItemType) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.items))
	for _, it := range s.items {
		if it.ItemType == itemType {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// Count returns the number of items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of the current set.
func (s *Store) Snapshot() []domain.FavoriteItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Subscribe registers fn and returns a function that unregisters it.
// Listeners added while a notification is in flight start with the next mutation.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
		})
	}
}

// Observe registers fn and calls it once with the current set before
// returning. No mutation can land between that call and the registration,
// so fn sees the set it starts from followed by every later change.
func (s *Store) Observe(ctx context.Context, fn Listener) (unsubscribe func()) {
	s.Initialize(ctx)

	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	unsubscribe = s.Subscribe(fn)
	fn(s.Snapshot())
	return unsubscribe
}

// SubscriberCount returns the number of registered listeners.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// mutate applies fn to a copy of the set. When fn reports no change the set,
// the cache and the listeners are left alone.
func (s *Store) mutate(ctx context.Context, fn func([]domain.FavoriteItem) ([]domain.FavoriteItem, bool)) {
	s.Initialize(ctx)

	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.mu.Lock()
	next, changed := fn(slices.Clone(s.items))
	if !changed {
		s.mu.Unlock()
		return
	}
	s.items = next
	snapshot := slices.Clone(next)
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	for _, sub := range subs {
		sub.fn(slices.Clone(snapshot))
	}
}

func (s *Store) persist(ctx context.Context, items []domain.FavoriteItem) {
	if items == nil {
		items = []domain.FavoriteItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.log.ErrorContext(ctx, "favorites encode failed", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.WriteAll(ctx, data); err != nil {
		s.log.ErrorContext(ctx, "favorites write failed", slog.String("error", err.Error()))
	}
}

func validate(id string, itemType domain.ItemType) error {
	var errs []domain.FieldError
	if id == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !itemType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be car, plate or tire"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func indexOf(items []domain.FavoriteItem, id string, itemType domain.ItemType) int {
	return slices.IndexFunc(items, func(it domain.FavoriteItem) bool { return it.Matches(id, itemType) })
}
