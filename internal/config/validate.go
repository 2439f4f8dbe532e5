package config

import (
	"fmt"
	"strconv"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Telegram.validate(); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	if c.Favorites.RegistrySize <= 0 {
		return fmt.Errorf("favorites.registry_size must be > 0 (got %d)", c.Favorites.RegistrySize)
	}
	if c.TradeIn.SubmitCooldown < 0 {
		return fmt.Errorf("tradein.submit_cooldown must be >= 0 (got %v)", c.TradeIn.SubmitCooldown)
	}
	if c.TradeIn.ArchiveRetentionDays < 1 {
		return fmt.Errorf("tradein.archive_retention_days must be >= 1 (got %d)", c.TradeIn.ArchiveRetentionDays)
	}
	if c.Server.SubmitPerMinute <= 0 {
		return fmt.Errorf("server.submit_per_minute must be > 0 (got %d)", c.Server.SubmitPerMinute)
	}
	if c.Server.LoginPerMinute <= 0 {
		return fmt.Errorf("server.login_per_minute must be > 0 (got %d)", c.Server.LoginPerMinute)
	}

	return nil
}

func (t *TelegramConfig) validate() error {
	if t.WebhookEnabled && !t.BotEnabled() {
		return fmt.Errorf("webhook_enabled requires bot_token")
	}
	if t.WebhookEnabled && t.WebhookSecret == "" {
		return fmt.Errorf("webhook_enabled requires webhook_secret")
	}
	if t.NotifyQueueSize <= 0 {
		return fmt.Errorf("notify_queue_size must be > 0 (got %d)", t.NotifyQueueSize)
	}

	if t.NotifyWorkers <= 0 {
		return fmt.Errorf("notify_workers must be > 0 (got %d)", t.NotifyWorkers)
	}

	t.AdminIDs = ParseList(t.AdminIDsRaw)

	ids, err := ParseChatIDs(t.NotifyChatIDs)
	if err != nil {
		return fmt.Errorf("notify_chat_ids: %w", err)
	}
	t.ChatIDs = ids

	return nil
}

// ParseChatIDs parses a comma-separated list of Telegram chat ids.
// An empty string returns a nil slice.
func ParseChatIDs(raw string) ([]int64, error) {
	parts := ParseList(raw)
	if len(parts) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
