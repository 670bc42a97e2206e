package repo

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uuid.UUID `db:"id"`
	OrderNumber string    `db:"order_number"`
	DriverRef   string    `db:"driver_ref"`
	VendorRef   string    `db:"vendor_ref"`

	TotalBillAmount decimal.Decimal `db:"total_bill_amount"`
	CollectedAmount decimal.Decimal `db:"collected_amount"`
	PendingAmount   decimal.Decimal `db:"pending_amount"`

	Status   string `db:"status"`
	IsUrgent bool   `db:"is_urgent"`

	OrderDate            time.Time    `db:"order_date"`
	ExpectedDeliveryDate sql.NullTime `db:"expected_delivery_date"`
	ActualDeliveryDate   sql.NullTime `db:"actual_delivery_date"`

	PaymentMethod    sql.NullString `db:"payment_method"`
	PaymentReference sql.NullString `db:"payment_reference"`
	PaidAt           sql.NullTime   `db:"paid_at"`

	DeliveryAddress      sql.NullString `db:"delivery_address"`
	DeliveryContactName  sql.NullString `db:"delivery_contact_name"`
	DeliveryContactPhone sql.NullString `db:"delivery_contact_phone"`
	DeliveryInstructions sql.NullString `db:"delivery_instructions"`

	Latitude          sql.NullFloat64 `db:"latitude"`
	Longitude         sql.NullFloat64 `db:"longitude"`
	LocationUpdatedAt sql.NullTime    `db:"location_updated_at"`

	Notes    string   `db:"notes"`
	Metadata Metadata `db:"metadata"`

	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var orderColumns = []string{
	"id", "order_number", "driver_ref", "vendor_ref",
	"total_bill_amount", "collected_amount", "pending_amount",
	"status", "is_urgent",
	"order_date", "expected_delivery_date", "actual_delivery_date",
	"payment_method", "payment_reference", "paid_at",
	"delivery_address", "delivery_contact_name", "delivery_contact_phone", "delivery_instructions",
	"latitude", "longitude", "location_updated_at",
	"notes", "metadata",
	"is_active", "created_at", "updated_at",
}

type Item struct {
	OrderID    uuid.UUID       `db:"order_id"`
	Position   int             `db:"position"`
	ProductRef string          `db:"product_ref"`
	Quantity   int             `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	LineTotal  decimal.Decimal `db:"line_total"`
}

type Tag struct {
	OrderID uuid.UUID `db:"order_id"`
	Tag     string    `db:"tag"`
}

// Metadata is stored as a JSON object.
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *Metadata) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}

	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if len(out) == 0 {
		out = nil
	}
	*m = out
	return nil
}

func ItemToEntity(i Item) entities.LineItem {
	return entities.LineItem{
		ProductRef: i.ProductRef,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		LineTotal:  i.LineTotal,
	}
}

func OrderToEntity(o Order, items []Item, tags []string) entities.Order {
	order := entities.Order{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		DriverRef:            o.DriverRef,
		VendorRef:            o.VendorRef,
		TotalBillAmount:      o.TotalBillAmount,
		CollectedAmount:      o.CollectedAmount,
		PendingAmount:        o.PendingAmount,
		Status:               entities.Status(o.Status),
		IsUrgent:             o.IsUrgent,
		OrderDate:            o.OrderDate.UTC(),
		ExpectedDeliveryDate: nullTimeToPtr(o.ExpectedDeliveryDate),
		ActualDeliveryDate:   nullTimeToPtr(o.ActualDeliveryDate),
		Notes:                o.Notes,
		Tags:                 tags,
		Metadata:             o.Metadata,
		IsActive:             o.IsActive,
		CreatedAt:            o.CreatedAt.UTC(),
		UpdatedAt:            o.UpdatedAt.UTC(),
	}

	if o.PaymentMethod.Valid || o.PaymentReference.Valid || o.PaidAt.Valid {
		order.Payment = &entities.PaymentInfo{
			Method:    nullStringToString(o.PaymentMethod),
			Reference: nullStringToString(o.PaymentReference),
			PaidAt:    nullTimeToPtr(o.PaidAt),
		}
	}

	if o.DeliveryAddress.Valid || o.DeliveryContactName.Valid ||
		o.DeliveryContactPhone.Valid || o.DeliveryInstructions.Valid {
		order.Delivery = &entities.DeliveryInfo{
			Address:      nullStringToString(o.DeliveryAddress),
			ContactName:  nullStringToString(o.DeliveryContactName),
			ContactPhone: nullStringToString(o.DeliveryContactPhone),
			Instructions: nullStringToString(o.DeliveryInstructions),
		}
	}

	if o.Latitude.Valid && o.Longitude.Valid {
		order.Location = &entities.Location{
			Latitude:  o.Latitude.Float64,
			Longitude: o.Longitude.Float64,
			UpdatedAt: o.LocationUpdatedAt.Time.UTC(),
		}
	}

	if len(items) > 0 {
		order.Items = make([]entities.LineItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order
}

// orderValues lists every column of orderColumns for an insert, in the same order.
func orderValues(o entities.Order) []any {
	var (
		payMethod, payRef, addr, contact, phone, instructions sql.NullString
		paidAt, locUpdated                                    sql.NullTime
		lat, lng                                              sql.NullFloat64
	)
	if o.Payment != nil {
		payMethod = nullString(o.Payment.Method)
		payRef = nullString(o.Payment.Reference)
		paidAt = nullTime(o.Payment.PaidAt)
	}
	if o.Delivery != nil {
		addr = nullString(o.Delivery.Address)
		contact = nullString(o.Delivery.ContactName)
		phone = nullString(o.Delivery.ContactPhone)
		instructions = nullString(o.Delivery.Instructions)
	}
	if o.Location != nil {
		lat = sql.NullFloat64{Float64: o.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: o.Location.Longitude, Valid: true}
		locUpdated = nullTime(&o.Location.UpdatedAt)
	}

	return []any{
		o.ID.String(), o.OrderNumber, o.DriverRef, o.VendorRef,
		money(o.TotalBillAmount), money(o.CollectedAmount), money(o.PendingAmount),
		string(o.Status), o.IsUrgent,
		o.OrderDate.UTC(), nullTime(o.ExpectedDeliveryDate), nullTime(o.ActualDeliveryDate),
		payMethod, payRef, paidAt,
		addr, contact, phone, instructions,
		lat, lng, locUpdated,
		o.Notes, Metadata(o.Metadata),
		o.IsActive, o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	}
}

// money rounds to the precision of the NUMERIC(14, 2) columns.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil || t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
