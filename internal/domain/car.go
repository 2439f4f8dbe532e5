package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Car is a catalog listing. The trade-in flow only reads it.
type Car struct {
	ID           uuid.UUID
	Brand        string
	Model        string
	Year         int
	Price        int64
	Mileage      int64
	Description  string
	Photos       []string
	Specs        CarSpecs
	Status       CarStatus
	CreatedAt    time.Time
	HideNewBadge bool
}

// CarSpecs holds optional technical characteristics.
// Empty strings mean "not specified".
type CarSpecs struct {
	Engine        string `json:"engine,omitempty"`
	Power         string `json:"power,omitempty"`
	Transmission  string `json:"transmission,omitempty"`
	Drive         string `json:"drive,omitempty"`
	Color         string `json:"color,omitempty"`
	BodyType      string `json:"body_type,omitempty"`
	Fuel          string `json:"fuel,omitempty"`
	InteriorColor string `json:"interior_color,omitempty"`
}

// Title returns "Brand Model Year".
func (c *Car) Title() string {
	return c.Brand + " " + c.Model + " " + strconv.Itoa(c.Year)
}

// IsSold reports whether the car can no longer be chosen as a trade-in target.
func (c *Car) IsSold() bool {
	return c.Status == CarStatusSold
}
