package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
	"github.com/topgearmoscow/miniapp-backend/pkg/ctxutil"
)

//go:generate moq -out auth_service_mock_test.go -pkg rest . authService
//go:generate moq -out trade_in_service_mock_test.go -pkg rest . tradeInService
//go:generate moq -out catalog_service_mock_test.go -pkg rest . catalogService
//go:generate moq -out trade_in_admin_service_mock_test.go -pkg rest . tradeInAdminService
//go:generate moq -out token_validator_mock_test.go -pkg rest . tokenValidator

var testNow = time.Date(2025, 1, 24, 13, 33, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func i64(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func withSession(r *http.Request, telegramID int64, admin bool) *http.Request {
	ctx := ctxutil.WithTelegramID(r.Context(), telegramID)
	ctx = ctxutil.WithAdmin(ctx, admin)
	return r.WithContext(ctx)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func testCar(price int64) *domain.Car {
	return &domain.Car{
		ID:     uuid.New(),
		Brand:  "BMW",
		Model:  "X5",
		Year:   2022,
		Price:  price,
		Photos: []string{"https://cdn.example/x5.jpg"},
		Specs:  domain.CarSpecs{Engine: "3.0", Drive: "AWD"},
		Status: domain.CarStatusAvailable,
	}
}

func testRequest(target *domain.Car, amount *int64) *domain.TradeInRequest {
	r := &domain.TradeInRequest{
		ID:            uuid.New(),
		Phone:         "+7 (999) 123-45-67",
		UserCar:       "Kia Rio 2018",
		TradeInAmount: amount,
		Status:        domain.TradeInStatusActive,
		CreatedAt:     testNow,
		TargetCar:     target,
	}
	if target != nil {
		id := target.ID
		r.TargetCarID = &id
	}
	return r
}
