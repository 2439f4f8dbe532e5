// Package car implements the vehicle catalog queries. Writes only come from
// the offline seeder.
package car

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var carColumns = []string{
	"id", "brand", "model", "year", "price", "mileage", "description",
	"photos", "specs", "status", "hide_new_badge", "created_at",
}

// likeEscaper neutralises LIKE wildcards in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repo provides catalog queries.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new car repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a single car regardless of status.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	query, args, err := psql.Select(carColumns...).
		From("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	car, err := scanCar(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "car", id)
	}
	return car, nil
}

// Search returns up to limit non-sold cars whose brand, model or
// "brand model" contains query case-insensitively, newest first.
func (r *Repo) Search(ctx context.Context, query string, limit uint64) ([]*domain.Car, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	sql, args, err := psql.Select(carColumns...).
		From("cars").
		Where(squirrel.NotEq{"status": string(domain.CarStatusSold)}).
		Where(squirrel.Or{
			squirrel.ILike{"brand": pattern},
			squirrel.ILike{"model": pattern},
			squirrel.Expr("(brand || ' ' || model) ILIKE ?", pattern),
		}).
		OrderBy("created_at DESC", "id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search cars: %w", err)
	}
	defer rows.Close()

	cars := make([]*domain.Car, 0)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cars: %w", err)
	}

	return cars, nil
}

// Upsert inserts a car or overwrites every catalog field of an existing one.
// created_at of an existing row is kept. Reports whether a row was inserted.
func (r *Repo) Upsert(ctx context.Context, c *domain.Car) (bool, error) {
	specs, err := json.Marshal(c.Specs)
	if err != nil {
		return false, fmt.Errorf("encode specs of car %s: %w", c.ID, err)
	}
	photos := c.Photos
	if photos == nil {
		photos = []string{}
	}

	query, args, err := psql.Insert("cars").
		Columns("id", "brand", "model", "year", "price", "mileage", "description",
			"photos", "specs", "status", "hide_new_badge").
		Values(c.ID, c.Brand, c.Model, c.Year, c.Price, c.Mileage, c.Description,
			photos, specs, string(c.Status), c.HideNewBadge).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			brand = EXCLUDED.brand, model = EXCLUDED.model, year = EXCLUDED.year,
			price = EXCLUDED.price, mileage = EXCLUDED.mileage,
			description = EXCLUDED.description, photos = EXCLUDED.photos,
			specs = EXCLUDED.specs, status = EXCLUDED.status,
			hide_new_badge = EXCLUDED.hide_new_badge
			RETURNING (xmax = 0)`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build upsert query: %w", err)
	}

	var inserted bool
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&inserted); err != nil {
		return false, postgres.MapError(err, "car", c.ID)
	}
	return inserted, nil
}

func scanCar(row pgx.Row) (*domain.Car, error) {
	var (
		c      domain.Car
		specs  []byte
		status string
	)

	err := row.Scan(
		&c.ID, &c.Brand, &c.Model, &c.Year, &c.Price, &c.Mileage, &c.Description,
		&c.Photos, &specs, &status, &c.HideNewBadge, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &c.Specs); err != nil {
			return nil, fmt.Errorf("decode specs of car %s: %w", c.ID, err)
		}
	}
	c.Status = domain.CarStatus(status)

	return &c, nil
}
