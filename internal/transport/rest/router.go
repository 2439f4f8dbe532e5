package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/topgearmoscow/miniapp-backend/internal/config"
	"github.com/topgearmoscow/miniapp-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (int64, string, error)
}

// Handlers groups the endpoint handlers mounted by NewRouter.
// Webhook is nil when the bot runs without a webhook.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	TradeIn   *TradeInHandler
	Catalog   *CatalogHandler
	Favorites *FavoritesHandler
	Admin     *AdminHandler
	Webhook   http.Handler
}

// RouterConfig holds the cross-cutting pieces of the HTTP stack.
// Nil limits disable rate limiting on that route.
type RouterConfig struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	Tokens      tokenValidator
	LoginLimit  middleware.Middleware
	SubmitLimit middleware.Middleware
}

// NewRouter builds the full HTTP handler: probes at the root, the JSON API
// under /api/ and the bot webhook.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	loginLimit := middleware.Chain(cfg.LoginLimit)
	submitLimit := middleware.Chain(cfg.SubmitLimit)
	session := middleware.RequireSession
	admin := middleware.RequireAdmin

	api := http.NewServeMux()

	api.Handle("POST /api/auth/telegram", loginLimit(http.HandlerFunc(h.Auth.Login)))

	api.Handle("POST /api/trade-in", submitLimit(http.HandlerFunc(h.TradeIn.Submit)))
	api.HandleFunc("GET /api/trade-in/quote", h.TradeIn.Quote)

	api.HandleFunc("GET /api/cars/search", h.Catalog.Search)
	api.HandleFunc("GET /api/cars/{id}", h.Catalog.Get)

	api.Handle("GET /api/favorites", session(http.HandlerFunc(h.Favorites.List)))
	api.Handle("POST /api/favorites", session(http.HandlerFunc(h.Favorites.Add)))
	api.Handle("POST /api/favorites/toggle", session(http.HandlerFunc(h.Favorites.Toggle)))
	api.Handle("DELETE /api/favorites", session(http.HandlerFunc(h.Favorites.Clear)))
	api.Handle("DELETE /api/favorites/{type}/{id}", session(http.HandlerFunc(h.Favorites.Remove)))
	api.Handle("GET /api/favorites/ws", session(http.HandlerFunc(h.Favorites.Stream)))

	api.Handle("GET /api/admin/trade-in", admin(http.HandlerFunc(h.Admin.List)))
	api.Handle("GET /api/admin/trade-in/stats", admin(http.HandlerFunc(h.Admin.Stats)))
	api.Handle("GET /api/admin/trade-in/export", admin(http.HandlerFunc(h.Admin.Export)))
	api.Handle("POST /api/admin/trade-in/{id}/archive", admin(http.HandlerFunc(h.Admin.Archive)))
	api.Handle("POST /api/admin/trade-in/{id}/restore", admin(http.HandlerFunc(h.Admin.Restore)))
	api.Handle("DELETE /api/admin/trade-in/{id}", admin(http.HandlerFunc(h.Admin.Delete)))

	apiChain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(cfg.Logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(cfg.Tokens),
		middleware.Logger(cfg.Logger),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("/api/", apiChain(api))

	if h.Webhook != nil {
		mux.Handle("POST /telegram/webhook", middleware.Chain(
			middleware.RequestID,
			middleware.Recovery(cfg.Logger),
			middleware.Logger(cfg.Logger),
		)(h.Webhook))
	}

	return mux
}
