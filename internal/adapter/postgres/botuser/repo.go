// Package botuser stores Telegram users who have interacted with the bot.
package botuser

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides bot user persistence.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bot user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert records the user's latest profile and marks them active.
func (r *Repo) Upsert(ctx context.Context, u *domain.BotUser) error {
	now := u.UpdatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	query, args, err := psql.Insert("bot_users").
		Columns("telegram_id", "username", "first_name", "last_name", "is_active", "updated_at").
		Values(u.TelegramID, u.Username, u.FirstName, u.LastName, true, now).
		Suffix(`ON CONFLICT (telegram_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_active = true,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "bot_user", u.TelegramID)
	}
	return nil
}

// SetActive flips the active flag, e.g. when the user blocks the bot.
func (r *Repo) SetActive(ctx context.Context, telegramID int64, active bool) error {
	query, args, err := psql.Update("bot_users").
		Set("is_active", active).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "bot_user", telegramID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bot_user %d: %w", telegramID, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns a stored bot user.
func (r *Repo) GetByID(ctx context.Context, telegramID int64) (*domain.BotUser, error) {
	query, args, err := psql.Select("telegram_id", "username", "first_name", "last_name", "is_active", "updated_at").
		From("bot_users").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var u domain.BotUser
	q := postgres.QuerierFromCtx(ctx, r.pool)
	err = q.QueryRow(ctx, query, args...).Scan(
		&u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.IsActive, &u.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "bot_user", telegramID)
	}
	return &u, nil
}
