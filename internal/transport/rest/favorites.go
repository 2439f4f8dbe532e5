package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
	"github.com/topgearmoscow/miniapp-backend/internal/favorites"
	"github.com/topgearmoscow/miniapp-backend/pkg/ctxutil"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

type favoritesRegistry interface {
	Acquire(ctx context.Context, telegramID int64) (*favorites.Store, func())
	Watch(ctx context.Context, telegramID int64, fn favorites.Listener) func()
}

// FavoritesHandler serves the per-user favorites set and its live stream.
// All routes require a session.
type FavoritesHandler struct {
	registry favoritesRegistry
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewFavoritesHandler creates a FavoritesHandler.
func NewFavoritesHandler(registry favoritesRegistry, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		registry: registry,
		// Telegram clients load the app from varying webview origins; the
		// session token is the access check.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      logger.With("handler", "favorites"),
	}
}

type favoriteRequest struct {
	ID   string          `json:"id"`
	Type domain.ItemType `json:"type"`
}

type favoritesResponse struct {
	Items []domain.FavoriteItem `json:"items"`
	Count int                   `json:"count"`
}

type toggleResponse struct {
	Added bool `json:"added"`
	favoritesResponse
}

func snapshotResponse(items []domain.FavoriteItem) favoritesResponse {
	if items == nil {
		items = []domain.FavoriteItem{}
	}
	return favoritesResponse{Items: items, Count: len(items)}
}

// store pins the caller's store for the rest of the request.
func (h *FavoritesHandler) store(r *http.Request) (*favorites.Store, func()) {
	id, _ := ctxutil.TelegramIDFromCtx(r.Context())
	return h.registry.Acquire(r.Context(), id)
}

// List returns the caller's favorites, optionally filtered by ?type=.
// GET /api/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	s, release := h.store(r)
	defer release()
	items := s.Snapshot()

	if raw := r.URL.Query().Get("type"); raw != "" {
		t := domain.ItemType(raw)
		if !t.IsValid() {
			handleError(h.log, w, r, domain.NewValidationError("type", "unknown item type"))
			return
		}
		filtered := items[:0]
		for _, it := range items {
			if it.ItemType == t {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	writeJSON(w, http.StatusOK, snapshotResponse(items))
}

// Add inserts an item. Adding a present item is not an error.
// POST /api/favorites
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, release := h.store(r)
	defer release()
	if err := s.Add(r.Context(), req.ID, req.Type); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse(s.Snapshot()))
}

// Remove deletes an item. Removing an absent item is not an error.
// DELETE /api/favorites/{type}/{id}
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	s, release := h.store(r)
	defer release()
	if err := s.Remove(r.Context(), r.PathValue("id"), domain.ItemType(r.PathValue("type"))); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse(s.Snapshot()))
}

// Toggle flips membership of an item.
// POST /api/favorites/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, release := h.store(r)
	defer release()
	added, err := s.Toggle(r.Context(), req.ID, req.Type)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Added: added, favoritesResponse: snapshotResponse(s.Snapshot())})
}

// Clear empties the caller's favorites.
// DELETE /api/favorites
func (h *FavoritesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, release := h.store(r)
	defer release()
	s.Clear(r.Context())
	writeJSON(w, http.StatusOK, snapshotResponse(nil))
}

// Stream pushes the current set on connect and after every mutation.
// Bursts are coalesced: a slow client only ever receives the latest set.
// GET /api/favorites/ws
func (h *FavoritesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	telegramID, _ := ctxutil.TelegramIDFromCtx(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WarnContext(r.Context(), "websocket upgrade", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	updates := make(chan []domain.FavoriteItem, 1)
	push := func(items []domain.FavoriteItem) {
		for {
			select {
			case updates <- items:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	}

	// The request context ends with the upgrade. Watch delivers the current
	// set through push before any mutation can, so the first frame is never stale.
	unwatch := h.registry.Watch(context.WithoutCancel(r.Context()), telegramID, push)
	defer unwatch()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(1024)
		conn.SetReadDeadline(time.Now().Add(wsPongWait)) //nolint:errcheck
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case items := <-updates:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait)) //nolint:errcheck
			if err := conn.WriteJSON(snapshotResponse(items)); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
