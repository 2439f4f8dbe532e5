// Package tradein implements the trade-in request repository using squirrel
// and pgx.
package tradein

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

const entity = "trade_in_request"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// requestColumns are selected from trade_in_requests aliased as r, followed by
// the joined target car columns (all nullable).
var requestColumns = []string{
	"r.id", "r.phone", "r.user_car", "r.target_car_id", "r.trade_in_amount",
	"r.comment", "r.status", "r.created_at", "r.archived_at", "r.telegram_user_id",
	"c.id", "c.brand", "c.model", "c.year", "c.price", "c.status",
}

// Repo provides trade-in request persistence operations.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new trade-in repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a request with its target car joined.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	query, args, err := selectRequests().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	req, err := scanRequest(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return req, nil
}

// ListByStatus returns requests in status, newest first. A positive limit
// caps the rows; 0 returns all of them. Ties on created_at are broken by id
// so the order is stable.
func (r *Repo) ListByStatus(ctx context.Context, status domain.TradeInStatus, limit uint64) ([]*domain.TradeInRequest, error) {
	qb := selectRequests().
		Where(squirrel.Eq{"r.status": string(status)}).
		OrderBy("r.created_at DESC", "r.id DESC")
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trade-in requests: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.TradeInRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade-in request: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade-in requests: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new request and returns it re-read with the car joined.
func (r *Repo) Create(ctx context.Context, req *domain.TradeInRequest) (*domain.TradeInRequest, error) {
	query, args, err := psql.Insert("trade_in_requests").
		Columns("id", "phone", "user_car", "target_car_id", "trade_in_amount",
			"comment", "status", "created_at", "archived_at", "telegram_user_id").
		Values(req.ID, req.Phone, req.UserCar, req.TargetCarID, req.TradeInAmount,
			req.Comment, string(req.Status), req.CreatedAt, req.ArchivedAt, req.TelegramUserID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, req.ID)
	}

	return r.GetByID(ctx, req.ID)
}

// Archive moves an active request to archived, stamping archived_at.
// Returns ErrNotFound when no active row with this id exists.
func (r *Repo) Archive(ctx context.Context, id uuid.UUID, at time.Time) (*domain.TradeInRequest, error) {
	return r.transition(ctx, id, psql.Update("trade_in_requests").
		Set("status", string(domain.TradeInStatusArchived)).
		Set("archived_at", at).
		Where(squirrel.Eq{"id": id, "status": string(domain.TradeInStatusActive)}))
}

// Restore moves an archived request back to active, clearing archived_at.
// Returns ErrNotFound when no archived row with this id exists.
func (r *Repo) Restore(ctx context.Context, id uuid.UUID) (*domain.TradeInRequest, error) {
	return r.transition(ctx, id, psql.Update("trade_in_requests").
		Set("status", string(domain.TradeInStatusActive)).
		Set("archived_at", nil).
		Where(squirrel.Eq{"id": id, "status": string(domain.TradeInStatusArchived)}))
}

// Delete removes an archived request. Active requests are never deleted;
// the call returns ErrNotFound for them as for missing ids.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("trade_in_requests").
		Where(squirrel.Eq{"id": id, "status": string(domain.TradeInStatusArchived)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// PurgeArchived deletes archived requests whose archived_at is before the
// threshold and returns how many rows were removed.
func (r *Repo) PurgeArchived(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.Delete("trade_in_requests").
		Where(squirrel.Eq{"status": string(domain.TradeInStatusArchived)}).
		Where(squirrel.Lt{"archived_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge archived requests: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountArchivedBefore reports how many rows PurgeArchived would remove.
func (r *Repo) CountArchivedBefore(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.Select("count(*)").
		From("trade_in_requests").
		Where(squirrel.Eq{"status": string(domain.TradeInStatusArchived)}).
		Where(squirrel.Lt{"archived_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count archived requests: %w", err)
	}
	return n, nil
}

// CountByStatus returns how many requests are in each status.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.TradeInStatus]int, error) {
	query, args, err := psql.Select("status", "count(*)").
		From("trade_in_requests").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count trade-in requests: %w", err)
	}
	defer rows.Close()

	counts := map[domain.TradeInStatus]int{
		domain.TradeInStatusActive:   0,
		domain.TradeInStatusArchived: 0,
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[domain.TradeInStatus(status)] = n
	}
	return counts, rows.Err()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func selectRequests() squirrel.SelectBuilder {
	return psql.Select(requestColumns...).
		From("trade_in_requests r").
		LeftJoin("cars c ON c.id = r.target_car_id")
}

// transition runs a status-guarded UPDATE in a single statement and re-reads
// the row. A guard miss surfaces as ErrNotFound.
func (r *Repo) transition(ctx context.Context, id uuid.UUID, update squirrel.UpdateBuilder) (*domain.TradeInRequest, error) {
	query, args, err := update.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transition query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var updated uuid.UUID
	if err := q.QueryRow(ctx, query, args...).Scan(&updated); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	return r.GetByID(ctx, updated)
}

func scanRequest(row pgx.Row) (*domain.TradeInRequest, error) {
	var (
		req    domain.TradeInRequest
		status string

		carID     *uuid.UUID
		carBrand  *string
		carModel  *string
		carYear   *int
		carPrice  *int64
		carStatus *string
	)

	err := row.Scan(
		&req.ID, &req.Phone, &req.UserCar, &req.TargetCarID, &req.TradeInAmount,
		&req.Comment, &status, &req.CreatedAt, &req.ArchivedAt, &req.TelegramUserID,
		&carID, &carBrand, &carModel, &carYear, &carPrice, &carStatus,
	)
	if err != nil {
		return nil, err
	}

	req.Status = domain.TradeInStatus(status)
	if err := req.CheckInvariant(); err != nil {
		return nil, err
	}

	if carID != nil {
		req.TargetCar = &domain.Car{
			ID:     *carID,
			Brand:  deref(carBrand),
			Model:  deref(carModel),
			Year:   deref(carYear),
			Price:  deref(carPrice),
			Status: domain.CarStatus(deref(carStatus)),
		}
	}

	return &req, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
