package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	ProductRef string
	Quantity   int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

type PaymentInfo struct {
	Method    string
	Reference string
	PaidAt    *time.Time
}

type DeliveryInfo struct {
	Address      string
	ContactName  string
	ContactPhone string
	Instructions string
}

type Location struct {
	Latitude  float64
	Longitude float64
	UpdatedAt time.Time
}

type Order struct {
	ID          uuid.UUID
	OrderNumber string
	DriverRef   string
	VendorRef   string

	Items []LineItem

	TotalBillAmount decimal.Decimal
	CollectedAmount decimal.Decimal
	PendingAmount   decimal.Decimal

	Status   Status
	IsUrgent bool

	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time

	// опциональные поля, nil означает отсутствие данных
	Payment  *PaymentInfo
	Delivery *DeliveryInfo
	Location *Location

	Notes    string
	Tags     []string
	Metadata map[string]string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLineItem is a cart entry. UnitPrice is resolved from the vendor catalog when nil.
type NewLineItem struct {
	ProductRef string
	Quantity   int
	UnitPrice  *decimal.Decimal
}

type NewOrder struct {
	DriverRef string
	VendorRef string
	Items     []NewLineItem

	DeclaredTotal     decimal.Decimal
	DeclaredCollected decimal.Decimal

	IsUrgent             bool
	ExpectedDeliveryDate *time.Time
	Payment              *PaymentInfo
	Delivery             *DeliveryInfo
	Location             *Location
	Notes                string
	Tags                 []string
	Metadata             map[string]string
}

// OrderUpdate is a partial update, nil fields are left untouched.
type OrderUpdate struct {
	Status               *Status
	CollectedAmount      *decimal.Decimal
	Payment              *PaymentInfo
	Delivery             *DeliveryInfo
	Location             *Location
	Notes                *string
	Tags                 []string
	IsUrgent             *bool
	ExpectedDeliveryDate *time.Time
}

func (u OrderUpdate) IsEmpty() bool {
	return u.Status == nil && u.CollectedAmount == nil && u.Payment == nil &&
		u.Delivery == nil && u.Location == nil && u.Notes == nil && u.Tags == nil &&
		u.IsUrgent == nil && u.ExpectedDeliveryDate == nil
}
