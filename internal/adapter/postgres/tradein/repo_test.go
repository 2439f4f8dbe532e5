package tradein_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/testhelper"
	"github.com/topgearmoscow/miniapp-backend/internal/adapter/postgres/tradein"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

func newRepo(t *testing.T) (*tradein.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return tradein.New(pool), pool
}

func buildRequest(target *domain.Car, amount *int64) *domain.TradeInRequest {
	comment := "без ДТП"
	tg := "123456"
	req := &domain.TradeInRequest{
		ID:             uuid.New(),
		Phone:          "+7 (999) 123-45-67",
		UserCar:        "BMW X5 2020",
		TradeInAmount:  amount,
		Comment:        &comment,
		Status:         domain.TradeInStatusActive,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
		TelegramUserID: &tg,
	}
	if target != nil {
		id := target.ID
		req.TargetCarID = &id
	}
	return req
}

func i64(v int64) *int64 { return &v }

func indexOf(list []*domain.TradeInRequest, id uuid.UUID) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ---------------------------------------------------------------------------
// Create / GetByID
// ---------------------------------------------------------------------------

func TestRepo_Create_JoinsTargetCar(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	car := testhelper.SeedCar(t, pool, testhelper.WithPrice(5_000_000))

	got, err := repo.Create(ctx, buildRequest(&car, i64(3_000_000)))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.Status != domain.TradeInStatusActive || got.ArchivedAt != nil {
		t.Errorf("new request: status=%s archivedAt=%v", got.Status, got.ArchivedAt)
	}
	if got.TargetCar == nil || got.TargetCar.ID != car.ID {
		t.Fatalf("TargetCar not joined: %+v", got.TargetCar)
	}
	if d := got.Delta(); d == nil || *d != 2_000_000 {
		t.Errorf("Delta = %v, want 2000000", d)
	}
	if got.Comment == nil || *got.Comment != "без ДТП" {
		t.Errorf("Comment = %v", got.Comment)
	}
}

func TestRepo_Create_WithoutTarget(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.Create(context.Background(), buildRequest(nil, nil))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.TargetCar != nil || got.TargetCarID != nil {
		t.Errorf("expected no target car, got %+v", got.TargetCar)
	}
	if got.Delta() != nil {
		t.Error("Delta should be nil without a target")
	}
}

func TestRepo_Create_UnknownTargetCar(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	ghost := domain.Car{ID: uuid.New()}
	_, err := repo.Create(context.Background(), buildRequest(&ghost, nil))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for dangling target, got: %v", err)
	}
}

func TestRepo_Create_DuplicateID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	req := buildRequest(nil, nil)
	if _, err := repo.Create(ctx, req); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create(ctx, req); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListByStatus
// ---------------------------------------------------------------------------

func TestRepo_ListByStatus_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	older := buildRequest(nil, nil)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	newer := buildRequest(nil, nil)

	for _, r := range []*domain.TradeInRequest{older, newer} {
		if _, err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.ListByStatus(ctx, domain.TradeInStatusActive, 0)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}

	io, in := indexOf(list, older.ID), indexOf(list, newer.ID)
	if io < 0 || in < 0 {
		t.Fatalf("seeded requests missing from list (older=%d newer=%d)", io, in)
	}
	if in > io {
		t.Errorf("newer request at %d should come before older at %d", in, io)
	}
}

func TestRepo_ListByStatus_Limit(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	testhelper.SeedTradeIn(t, pool, nil, nil)
	testhelper.SeedTradeIn(t, pool, nil, nil)

	list, err := repo.ListByStatus(context.Background(), domain.TradeInStatusActive, 1)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len = %d, want 1", len(list))
	}
}

func TestRepo_ListByStatus_ZeroLimitReturnsEveryRow(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := make([]domain.TradeInRequest, 3)
	for i := range seeded {
		seeded[i] = testhelper.SeedTradeIn(t, pool, nil, nil)
	}

	capped, err := repo.ListByStatus(ctx, domain.TradeInStatusActive, 2)
	if err != nil {
		t.Fatalf("ListByStatus(limit=2): %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("len(capped) = %d, want 2", len(capped))
	}

	all, err := repo.ListByStatus(ctx, domain.TradeInStatusActive, 0)
	if err != nil {
		t.Fatalf("ListByStatus(limit=0): %v", err)
	}
	if len(all) <= len(capped) {
		t.Errorf("len(all) = %d, want more than the capped %d", len(all), len(capped))
	}
	for _, r := range seeded {
		if indexOf(all, r.ID) < 0 {
			t.Errorf("request %s missing from the unlimited list", r.ID)
		}
	}
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

func TestRepo_ArchiveRestore_RoundTrip(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	seeded := testhelper.SeedTradeIn(t, pool, nil, nil)
	at := time.Now().UTC().Truncate(time.Microsecond)

	archived, err := repo.Archive(ctx, seeded.ID, at)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if archived.Status != domain.TradeInStatusArchived || archived.ArchivedAt == nil || !archived.ArchivedAt.Equal(at) {
		t.Fatalf("after archive: status=%s archivedAt=%v", archived.Status, archived.ArchivedAt)
	}

	active, err := repo.ListByStatus(ctx, domain.TradeInStatusActive, 0)
	if err != nil {
		t.Fatalf("ListByStatus(active): %v", err)
	}
	if indexOf(active, seeded.ID) >= 0 {
		t.Error("archived request still listed as active")
	}

	restored, err := repo.Restore(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Status != domain.TradeInStatusActive || restored.ArchivedAt != nil {
		t.Errorf("after restore: status=%s archivedAt=%v", restored.Status, restored.ArchivedAt)
	}
}

func TestRepo_Archive_GuardMiss(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	seeded := testhelper.SeedTradeIn(t, pool, nil, nil)

	if _, err := repo.Archive(ctx, seeded.ID, time.Now()); err != nil {
		t.Fatalf("first Archive: %v", err)
	}
	if _, err := repo.Archive(ctx, seeded.ID, time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Archive: expected ErrNotFound, got: %v", err)
	}
	if _, err := repo.Restore(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Restore unknown: expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_Delete_OnlyArchived(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	seeded := testhelper.SeedTradeIn(t, pool, nil, nil)

	if err := repo.Delete(ctx, seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete active: expected ErrNotFound, got: %v", err)
	}

	if _, err := repo.Archive(ctx, seeded.ID, time.Now()); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete archived: %v", err)
	}

	if _, err := repo.GetByID(ctx, seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID after delete: expected ErrNotFound, got: %v", err)
	}
	if _, err := repo.Restore(ctx, seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Restore after delete: expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_CountByStatus(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	testhelper.SeedTradeIn(t, pool, nil, nil)

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[domain.TradeInStatusActive] < 1 {
		t.Errorf("active count = %d, want >= 1", counts[domain.TradeInStatusActive])
	}
	if _, ok := counts[domain.TradeInStatusArchived]; !ok {
		t.Error("archived key missing from counts")
	}
}

func TestRepo_PurgeArchived_RespectsThreshold(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	old := testhelper.SeedTradeIn(t, pool, nil, nil)
	recent := testhelper.SeedTradeIn(t, pool, nil, nil)
	active := testhelper.SeedTradeIn(t, pool, nil, nil)

	now := time.Now().UTC()
	if _, err := repo.Archive(ctx, old.ID, now.AddDate(0, 0, -200)); err != nil {
		t.Fatalf("Archive old: %v", err)
	}
	if _, err := repo.Archive(ctx, recent.ID, now.AddDate(0, 0, -10)); err != nil {
		t.Fatalf("Archive recent: %v", err)
	}

	pending, err := repo.CountArchivedBefore(ctx, now.AddDate(0, 0, -180))
	if err != nil {
		t.Fatalf("CountArchivedBefore: %v", err)
	}
	if pending < 1 {
		t.Errorf("pending = %d, want >= 1", pending)
	}

	purged, err := repo.PurgeArchived(ctx, now.AddDate(0, 0, -180))
	if err != nil {
		t.Fatalf("PurgeArchived: %v", err)
	}
	// Other parallel tests share the database; only assert on our rows.
	if purged < 1 {
		t.Errorf("purged = %d, want >= 1", purged)
	}

	if _, err := repo.GetByID(ctx, old.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("old archived request: expected ErrNotFound, got: %v", err)
	}
	if _, err := repo.GetByID(ctx, recent.ID); err != nil {
		t.Errorf("recent archived request should survive: %v", err)
	}
	if _, err := repo.GetByID(ctx, active.ID); err != nil {
		t.Errorf("active request should survive: %v", err)
	}
}
