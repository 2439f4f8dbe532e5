// Package admin stores back-office access grants.
package admin

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides admin grant persistence.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new admin repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// IsAdmin reports whether telegramID has a stored grant.
func (r *Repo) IsAdmin(ctx context.Context, telegramID string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS(").
		From("admins").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var exists bool
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "admin", telegramID)
	}
	return exists, nil
}

// Add grants admin access. Returns ErrAlreadyExists for an existing grant.
func (r *Repo) Add(ctx context.Context, telegramID string) (*domain.Admin, error) {
	query, args, err := psql.Insert("admins").
		Columns("telegram_id").
		Values(telegramID).
		Suffix("RETURNING telegram_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	var a domain.Admin
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&a.TelegramID, &a.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "admin", telegramID)
	}
	return &a, nil
}

// Remove revokes a grant.
func (r *Repo) Remove(ctx context.Context, telegramID string) error {
	query, args, err := psql.Delete("admins").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "admin", telegramID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("admin %s: %w", telegramID, domain.ErrNotFound)
	}
	return nil
}

// List returns all grants, oldest first.
func (r *Repo) List(ctx context.Context) ([]domain.Admin, error) {
	query, args, err := psql.Select("telegram_id", "created_at").
		From("admins").
		OrderBy("created_at", "telegram_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.TelegramID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
