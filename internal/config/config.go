package config

import (
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Auth      AuthConfig      `yaml:"auth"`
	Favorites FavoritesConfig `yaml:"favorites"`
	TradeIn   TradeInConfig   `yaml:"tradein"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Confirm-Delete"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"Content-Disposition,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	SubmitPerMinute int           `yaml:"submit_per_minute" env:"SERVER_SUBMIT_PER_MINUTE" env-default:"10"`
	LoginPerMinute  int           `yaml:"login_per_minute"  env:"SERVER_LOGIN_PER_MINUTE"  env-default:"30"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"topgear-miniapp"`
}

// RedisConfig holds settings of the favorites cache.
// An empty Addr disables Redis and favorites live in memory only.
type RedisConfig struct {
	Addr        string        `yaml:"addr"         env:"REDIS_ADDR"`
	Password    string        `yaml:"password"     env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"           env:"REDIS_DB"           env-default:"0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// TelegramConfig holds bot and Mini App settings.
type TelegramConfig struct {
	BotToken        string        `yaml:"bot_token"         env:"TELEGRAM_BOT_TOKEN"`
	WebhookSecret   string        `yaml:"webhook_secret"    env:"TELEGRAM_WEBHOOK_SECRET"`
	WebhookEnabled  bool          `yaml:"webhook_enabled"   env:"TELEGRAM_WEBHOOK_ENABLED"   env-default:"false"`
	WebhookURL      string        `yaml:"webhook_url"       env:"TELEGRAM_WEBHOOK_URL"`
	AppURL          string        `yaml:"app_url"           env:"TELEGRAM_APP_URL"`
	ContactUsername string        `yaml:"contact_username"  env:"TELEGRAM_CONTACT_USERNAME"`
	AdminIDsRaw     string        `yaml:"admin_ids"         env:"TELEGRAM_ADMIN_IDS"`
	NotifyChatIDs   string        `yaml:"notify_chat_ids"   env:"TELEGRAM_NOTIFY_CHAT_IDS"`
	InitDataMaxAge  time.Duration `yaml:"init_data_max_age" env:"TELEGRAM_INIT_DATA_MAX_AGE" env-default:"24h"`
	NotifyQueueSize int           `yaml:"notify_queue_size" env:"TELEGRAM_NOTIFY_QUEUE_SIZE" env-default:"64"`
	NotifyWorkers   int           `yaml:"notify_workers"    env:"TELEGRAM_NOTIFY_WORKERS"    env-default:"2"`

	// AdminIDs is parsed from AdminIDsRaw during validation.
	AdminIDs []string `yaml:"-" env:"-"`
	// ChatIDs is parsed from NotifyChatIDs during validation.
	ChatIDs []int64 `yaml:"-" env:"-"`
}

// BotEnabled reports whether a bot token is configured.
func (t TelegramConfig) BotEnabled() bool { return t.BotToken != "" }

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"topgear-miniapp"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
}

// FavoritesConfig holds settings of the per-user favorites stores.
type FavoritesConfig struct {
	KeyPrefix    string        `yaml:"key_prefix"    env:"FAVORITES_KEY_PREFIX"    env-default:"topgear_favorites"`
	RegistrySize int           `yaml:"registry_size" env:"FAVORITES_REGISTRY_SIZE" env-default:"1024"`
	TTL          time.Duration `yaml:"ttl"           env:"FAVORITES_TTL"           env-default:"0s"`
}

// TradeInConfig holds trade-in request settings.
type TradeInConfig struct {
	SubmitCooldown time.Duration `yaml:"submit_cooldown" env:"TRADEIN_SUBMIT_COOLDOWN" env-default:"2s"`
	// Archived requests older than this are purged by cmd/cleanup.
	ArchiveRetentionDays int `yaml:"archive_retention_days" env:"TRADEIN_ARCHIVE_RETENTION_DAYS" env-default:"180"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ParseList splits a comma-separated string, trimming blanks.
func ParseList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
