package domain

// ItemType is the kind of catalog item a favorite points at.
type ItemType string

const (
	ItemTypeCar   ItemType = "car"
	ItemTypePlate ItemType = "plate"
	ItemTypeTire  ItemType = "tire"
)

func (t ItemType) String() string { return string(t) }

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeCar, ItemTypePlate, ItemTypeTire:
		return true
	}
	return false
}

// TradeInStatus is the lifecycle state of a trade-in request.
type TradeInStatus string

const (
	TradeInStatusActive   TradeInStatus = "active"
	TradeInStatusArchived TradeInStatus = "archived"
)

func (s TradeInStatus) String() string { return string(s) }

func (s TradeInStatus) IsValid() bool {
	switch s {
	case TradeInStatusActive, TradeInStatusArchived:
		return true
	}
	return false
}

// CarStatus is the availability of a catalog car.
type CarStatus string

const (
	CarStatusAvailable CarStatus = "available"
	CarStatusOrder     CarStatus = "order"
	CarStatusInTransit CarStatus = "inTransit"
	CarStatusSold      CarStatus = "sold"
)

func (s CarStatus) String() string { return string(s) }

func (s CarStatus) IsValid() bool {
	switch s {
	case CarStatusAvailable, CarStatusOrder, CarStatusInTransit, CarStatusSold:
		return true
	}
	return false
}

// DeltaKind classifies the sign of a trade-in delta.
type DeltaKind string

const (
	// DeltaKindSurcharge means the customer pays the difference.
	DeltaKindSurcharge DeltaKind = "surcharge"
	// DeltaKindRefund means the dealership pays the difference (or nothing is owed).
	DeltaKindRefund DeltaKind = "refund"
)

func (k DeltaKind) String() string { return string(k) }

// Label returns the user-facing caption for the delta kind.
func (k DeltaKind) Label() string {
	switch k {
	case DeltaKindSurcharge:
		return "Доплата"
	case DeltaKindRefund:
		return "К возврату"
	}
	return ""
}
