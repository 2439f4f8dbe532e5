package rest

import (
	"time"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

type carView struct {
	ID           string          `json:"id"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Price        int64           `json:"price"`
	Mileage      int64           `json:"mileage"`
	Photo        string          `json:"photo,omitempty"`
	Specs        domain.CarSpecs `json:"specs"`
	Status       string          `json:"status"`
	HideNewBadge bool            `json:"hideNewBadge"`
}

func toCarView(c *domain.Car) *carView {
	if c == nil {
		return nil
	}
	v := &carView{
		ID:           c.ID.String(),
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		Price:        c.Price,
		Mileage:      c.Mileage,
		Specs:        c.Specs,
		Status:       c.Status.String(),
		HideNewBadge: c.HideNewBadge,
	}
	if len(c.Photos) > 0 {
		v.Photo = c.Photos[0]
	}
	return v
}

// tradeInView is the admin representation of a request with derived fields.
type tradeInView struct {
	ID            string     `json:"id"`
	Tag           string     `json:"tag"`
	Phone         string     `json:"phone"`
	CallLink      string     `json:"callLink"`
	UserCar       string     `json:"userCar"`
	TargetCar     *carView   `json:"targetCar,omitempty"`
	TradeInAmount *int64     `json:"tradeInAmount,omitempty"`
	Delta         *int64     `json:"delta,omitempty"`
	DeltaKind     string     `json:"deltaKind,omitempty"`
	DeltaLabel    string     `json:"deltaLabel,omitempty"`
	Comment       *string    `json:"comment,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	ChatLink      string     `json:"chatLink,omitempty"`
}

func toTradeInView(r *domain.TradeInRequest, contactUsername string) tradeInView {
	v := tradeInView{
		ID:            r.ID.String(),
		Tag:           domain.RequestTagFor(r.ID),
		Phone:         r.Phone,
		CallLink:      domain.DialLink(r.Phone),
		UserCar:       r.UserCar,
		TargetCar:     toCarView(r.TargetCar),
		TradeInAmount: r.TradeInAmount,
		Comment:       r.Comment,
		Status:        r.Status.String(),
		CreatedAt:     r.CreatedAt,
		ArchivedAt:    r.ArchivedAt,
	}
	if d := r.Delta(); d != nil {
		kind := domain.ClassifyDelta(*d)
		v.Delta = d
		v.DeltaKind = kind.String()
		v.DeltaLabel = kind.Label()
	}
	if contactUsername != "" {
		v.ChatLink = chatLinkFor(r, contactUsername)
	}
	return v
}

func chatLinkFor(r *domain.TradeInRequest, contactUsername string) string {
	return domain.ChatLink(contactUsername, domain.RequestTagFor(r.ID), r.CreatedAt.In(domain.Moscow), r.Summary())
}
