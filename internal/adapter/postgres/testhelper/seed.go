package testhelper

import (
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

var telegramSeq atomic.Int64

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueTelegramID returns a telegram id that no other seed in this run uses.
func UniqueTelegramID() int64 {
	return 7_000_000_000 + time.Now().UnixNano()%1_000_000_000 + telegramSeq.Add(1)
}

// CarOption customises a seeded car.
type CarOption func(*domain.Car)

// WithCarStatus sets the listing status.
func WithCarStatus(s domain.CarStatus) CarOption {
	return func(c *domain.Car) { c.Status = s }
}

// WithBrandModel sets brand and model.
func WithBrandModel(brand, model string) CarOption {
	return func(c *domain.Car) {
		c.Brand = brand
		c.Model = model
	}
}

// WithPrice sets the listing price.
func WithPrice(price int64) CarOption {
	return func(c *domain.Car) { c.Price = price }
}

// SeedCar inserts a catalog car. Brand and model default to unique values so
// search tests do not see each other's rows.
func SeedCar(t *testing.T, pool *pgxpool.Pool, opts ...CarOption) domain.Car {
	t.Helper()

	suffix := uniqueSuffix()
	car := domain.Car{
		ID:          uuid.New(),
		Brand:       "Brand-" + suffix,
		Model:       "Model-" + suffix,
		Year:        2021,
		Price:       5_000_000,
		Mileage:     12_000,
		Description: "seeded car " + suffix,
		Photos:      []string{"/uploads/" + suffix + ".jpg"},
		Specs:       domain.CarSpecs{Engine: "3.0", Drive: "AWD"},
		Status:      domain.CarStatusAvailable,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(&car)
	}

	specs, err := json.Marshal(car.Specs)
	if err != nil {
		t.Fatalf("testhelper: SeedCar marshal specs: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO cars (id, brand, model, year, price, mileage, description, photos, specs, status, hide_new_badge, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		car.ID, car.Brand, car.Model, car.Year, car.Price, car.Mileage, car.Description,
		car.Photos, specs, string(car.Status), car.HideNewBadge, car.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCar insert: %v", err)
	}

	return car
}

// SeedTradeIn inserts an active trade-in request, optionally pointing at target.
func SeedTradeIn(t *testing.T, pool *pgxpool.Pool, target *domain.Car, amount *int64) domain.TradeInRequest {
	t.Helper()

	req := domain.TradeInRequest{
		ID:            uuid.New(),
		Phone:         "+7 (999) 123-45-67",
		UserCar:       "BMW X5 2020 " + uniqueSuffix(),
		TradeInAmount: amount,
		Status:        domain.TradeInStatusActive,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	if target != nil {
		id := target.ID
		req.TargetCarID = &id
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO trade_in_requests (id, phone, user_car, target_car_id, trade_in_amount, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.Phone, req.UserCar, req.TargetCarID, req.TradeInAmount, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTradeIn insert: %v", err)
	}

	return req
}

// SeedAdmin grants admin access to a fresh telegram id and returns it.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := strconv.FormatInt(UniqueTelegramID(), 10)
	_, err := pool.Exec(context.Background(),
		`INSERT INTO admins (telegram_id) VALUES ($1)`, id)
	if err != nil {
		t.Fatalf("testhelper: SeedAdmin insert: %v", err)
	}
	return id
}
