package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	adminrepo "github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/admin"
	botuserrepo "github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/botuser"
	carrepo "github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/car"
	tradeinrepo "github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/tradein"
	"github.com/topgearmoscow/miniapp-backend/internal/adapter/telegram"
	"github.com/topgearmoscow/miniapp-backend/internal/auth"
	"github.com/topgearmoscow/miniapp-backend/internal/config"
	"github.com/topgearmoscow/miniapp-backend/internal/favorites"
	authsvc "github.com/topgearmoscow/miniapp-backend/internal/service/auth"
	"github.com/topgearmoscow/miniapp-backend/internal/service/catalog"
	"github.com/topgearmoscow/miniapp-backend/internal/service/tradein"
	"github.com/topgearmoscow/miniapp-backend/internal/transport/middleware"
	"github.com/topgearmoscow/miniapp-backend/internal/transport/rest"
)

const telegramHTTPTimeout = 15 * time.Second

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL and Redis, wires services and serves HTTP until ctx is cancelled
// or SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := migrateUp(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
	}

	// 1. Storage.
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	health := rest.NewHealthHandler(pool, Version)

	cacheFactory, closeRedis, err := newFavoritesCache(ctx, cfg, health)
	if err != nil {
		return err
	}
	defer closeRedis()

	registry, err := favorites.NewRegistry(cfg.Favorites.RegistrySize, cacheFactory, logger)
	if err != nil {
		return err
	}

	tradeIns := tradeinrepo.New(pool)
	cars := carrepo.New(pool)
	botUsers := botuserrepo.New(pool)
	admins := adminrepo.New(pool)

	// 2. Telegram.
	var sender telegram.Sender
	var chatIDs []int64
	if cfg.Telegram.BotEnabled() {
		bot, err := telegram.NewClient(cfg.Telegram.BotToken, &http.Client{Timeout: telegramHTTPTimeout})
		if err != nil {
			return err
		}
		sender, chatIDs = bot, cfg.Telegram.ChatIDs
	} else {
		logger.Warn("telegram bot token not set: notifications and login are disabled")
	}

	notifier := telegram.NewNotifier(sender, chatIDs, cfg.Telegram.NotifyQueueSize, logger)
	notifier.Start(cfg.Telegram.NotifyWorkers)

	// 3. Services.
	catalogService := catalog.NewService(logger, cars)
	tradeInService := tradein.NewService(
		logger, tradeIns, catalogService, notifier,
		tradein.NewGate(cfg.TradeIn.SubmitCooldown, nil),
	)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	verifier := auth.NewInitDataVerifier(cfg.Telegram.BotToken, cfg.Telegram.InitDataMaxAge)
	authService := authsvc.NewService(logger, verifier, jwtManager, admins, botUsers, cfg.Telegram.AdminIDs)

	// 4. HTTP.
	submitLimiter := middleware.NewRateLimiter(time.Minute)
	defer submitLimiter.Stop()
	loginLimiter := middleware.NewRateLimiter(time.Minute)
	defer loginLimiter.Stop()

	handlers := rest.Handlers{
		Health:    health,
		Auth:      rest.NewAuthHandler(authService, logger),
		TradeIn:   rest.NewTradeInHandler(tradeInService, cfg.Telegram.ContactUsername, logger),
		Catalog:   rest.NewCatalogHandler(catalogService, logger),
		Favorites: rest.NewFavoritesHandler(registry, logger),
		Admin:     rest.NewAdminHandler(tradeInService, cfg.Telegram.ContactUsername, logger),
	}

	if cfg.Telegram.WebhookEnabled {
		handlers.Webhook = telegram.NewWebhookBot(sender, botUsers, telegram.BotConfig{
			AppURL:          cfg.Telegram.AppURL,
			ContactUsername: cfg.Telegram.ContactUsername,
			WebhookSecret:   cfg.Telegram.WebhookSecret,
		}, logger)

		if cfg.Telegram.WebhookURL != "" {
			if err := telegram.SetWebhook(sender, cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
				logger.Error("register telegram webhook", slog.String("error", err.Error()))
			} else {
				logger.Info("telegram webhook registered", slog.String("url", cfg.Telegram.WebhookURL))
			}
		}
	}

	router := rest.NewRouter(handlers, rest.RouterConfig{
		Logger:      logger,
		CORS:        cfg.CORS,
		Tokens:      authService,
		LoginLimit:  loginLimiter.Limit(cfg.Server.LoginPerMinute),
		SubmitLimit: submitLimiter.Limit(cfg.Server.SubmitPerMinute),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	if err := notifier.Stop(shutdownCtx); err != nil {
		logger.Warn("notifier did not drain", slog.String("error", err.Error()))
	}

	logger.Info("stopped")
	return nil
}

// newFavoritesCache returns the per-user cache factory. Without Redis the
// registry keeps favorites in memory only.
func newFavoritesCache(ctx context.Context, cfg *config.Config, health *rest.HealthHandler) (favorites.CacheFactory, func(), error) {
	if !cfg.Redis.Enabled() {
		return nil, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close() //nolint:errcheck
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	health.WithComponent("redis", rest.PingFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}), false)

	prefix, ttl := cfg.Favorites.KeyPrefix, cfg.Favorites.TTL
	factory := func(telegramID int64) favorites.Cache {
		return favorites.NewRedisCache(rdb, favorites.RedisKey(prefix, telegramID), ttl)
	}
	return factory, func() { rdb.Close() }, nil
}

func migrateUp(ctx context.Context, dsn string, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(ctx, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", slog.Int("count", len(applied)))
	return nil
}
