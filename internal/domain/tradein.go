package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TradeInRequest is a customer's request to exchange their vehicle for a catalog car.
// ArchivedAt is set if and only if Status is archived.
type TradeInRequest struct {
	ID             uuid.UUID
	Phone          string
	UserCar        string
	TargetCarID    *uuid.UUID
	TradeInAmount  *int64
	Comment        *string
	Status         TradeInStatus
	CreatedAt      time.Time
	ArchivedAt     *time.Time
	TelegramUserID *string

	// TargetCar is populated by list queries that join the catalog.
	TargetCar *Car
}

// CheckInvariant verifies the status/archivedAt coupling.
func (r *TradeInRequest) CheckInvariant() error {
	archived := r.Status == TradeInStatusArchived
	if archived != (r.ArchivedAt != nil) {
		return fmt.Errorf("trade-in %s: status %q with archived_at set=%t: %w",
			r.ID, r.Status, r.ArchivedAt != nil, ErrConflict)
	}
	return nil
}

// Delta returns the trade-in delta against the joined target car, if any.
func (r *TradeInRequest) Delta() *int64 {
	if r.TargetCar == nil {
		return nil
	}
	price := r.TargetCar.Price
	return ComputeTradeInDelta(&price, r.TradeInAmount)
}

// ComputeTradeInDelta returns targetPrice - offered, or nil when either is missing.
func ComputeTradeInDelta(targetPrice, offered *int64) *int64 {
	if targetPrice == nil || offered == nil {
		return nil
	}
	d := *targetPrice - *offered
	return &d
}

// ClassifyDelta returns the kind of a delta. Zero counts as a refund.
func ClassifyDelta(delta int64) DeltaKind {
	if delta > 0 {
		return DeltaKindSurcharge
	}
	return DeltaKindRefund
}

// Summary renders the request as the plain-text body used in chat messages.
func (r *TradeInRequest) Summary() string {
	var b strings.Builder
	b.WriteString("🔄 Заявка на трейд-ин\n\n")
	b.WriteString("📞 Телефон: " + r.Phone + "\n")
	b.WriteString("🚙 Автомобиль клиента: " + r.UserCar + "\n")
	if r.TargetCar != nil {
		b.WriteString("🎯 Интересует: " + r.TargetCar.Title() + " за " + FormatPrice(r.TargetCar.Price) + "\n")
	}
	if r.TradeInAmount != nil {
		b.WriteString("💰 Оценка клиента: " + FormatPrice(*r.TradeInAmount) + "\n")
	}
	if d := r.Delta(); d != nil {
		kind := ClassifyDelta(*d)
		b.WriteString("⚖️ " + kind.Label() + ": " + FormatPrice(abs(*d)) + "\n")
	}
	if r.Comment != nil {
		b.WriteString("💬 Комментарий: " + *r.Comment + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// TradeInAction names a lifecycle transition.
type TradeInAction string

const (
	TradeInActionSubmitted TradeInAction = "submitted"
	TradeInActionArchived  TradeInAction = "archived"
	TradeInActionRestored  TradeInAction = "restored"
	TradeInActionDeleted   TradeInAction = "deleted"
)

// TradeInEvent is emitted after a lifecycle transition attempt.
type TradeInEvent struct {
	Action  TradeInAction
	Request TradeInRequest
	At      time.Time
}
