package handler

import (
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/shopspring/decimal"
)

// LineItem позиция заказа
type LineItem struct {
	ProductRef string  `json:"productRef"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	LineTotal  float64 `json:"lineTotal"`
}

// NewLineItem позиция корзины. Цена берётся из каталога поставщика, если не указана
type NewLineItem struct {
	ProductRef string           `json:"productRef" validate:"required,max=64"`
	Quantity   int              `json:"quantity" validate:"gt=0"`
	UnitPrice  *decimal.Decimal `json:"unitPrice,omitempty" swaggertype:"number"`
}

// PaymentInfo информация об оплате
type PaymentInfo struct {
	Method    string     `json:"method,omitempty" validate:"max=32"`
	Reference string     `json:"reference,omitempty" validate:"max=128"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// DeliveryInfo информация о доставке
type DeliveryInfo struct {
	Address      string `json:"address,omitempty" validate:"max=512"`
	ContactName  string `json:"contactName,omitempty" validate:"max=128"`
	ContactPhone string `json:"contactPhone,omitempty" validate:"max=32"`
	Instructions string `json:"instructions,omitempty" validate:"max=1024"`
}

// Location последние координаты заказа
type Location struct {
	Latitude  float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64   `json:"longitude" validate:"gte=-180,lte=180"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Order представляет заказ
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	DriverRef   string `json:"driverRef"`
	VendorRef   string `json:"vendorRef"`

	Items []LineItem `json:"items"`

	TotalBillAmount float64 `json:"totalBillAmount"`
	CollectedAmount float64 `json:"collectedAmount"`
	PendingAmount   float64 `json:"pendingAmount"`

	Status   string `json:"status"`
	IsUrgent bool   `json:"isUrgent"`

	OrderDate            time.Time  `json:"orderDate"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   *time.Time `json:"actualDeliveryDate,omitempty"`

	Payment  *PaymentInfo      `json:"paymentInfo,omitempty"`
	Delivery *DeliveryInfo     `json:"deliveryInfo,omitempty"`
	Location *Location         `json:"location,omitempty"`
	Notes    string            `json:"notes,omitempty"`
	Tags     []string          `json:"tags"`
	Metadata map[string]string `json:"metadata,omitempty"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateOrderRequest запрос на создание заказа, тот же формат читается из kafka
type CreateOrderRequest struct {
	DriverRef string        `json:"driverRef" validate:"required,max=64"`
	VendorRef string        `json:"vendorRef" validate:"required,max=64"`
	Items     []NewLineItem `json:"items" validate:"required,min=1,max=200,dive"`

	TotalBillAmount decimal.Decimal `json:"totalBillAmount" swaggertype:"number"`
	CollectedAmount decimal.Decimal `json:"collectedAmount" swaggertype:"number"`

	IsUrgent             bool              `json:"isUrgent"`
	ExpectedDeliveryDate *time.Time        `json:"expectedDeliveryDate,omitempty"`
	Payment              *PaymentInfo      `json:"paymentInfo,omitempty" validate:"omitempty"`
	Delivery             *DeliveryInfo     `json:"deliveryInfo,omitempty" validate:"omitempty"`
	Location             *Location         `json:"location,omitempty" validate:"omitempty"`
	Notes                string            `json:"notes,omitempty" validate:"max=2000"`
	Tags                 []string          `json:"tags,omitempty" validate:"max=20,dive,required,max=64"`
	Metadata             map[string]string `json:"metadata,omitempty" validate:"max=50"`
}

// UpdateOrderRequest частичное обновление, отсутствующие поля не меняются
type UpdateOrderRequest struct {
	Status               *string          `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	CollectedAmount      *decimal.Decimal `json:"collectedAmount,omitempty" swaggertype:"number"`
	Payment              *PaymentInfo     `json:"paymentInfo,omitempty" validate:"omitempty"`
	Delivery             *DeliveryInfo    `json:"deliveryInfo,omitempty" validate:"omitempty"`
	Location             *Location        `json:"location,omitempty" validate:"omitempty"`
	Notes                *string          `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Tags                 []string         `json:"tags,omitempty" validate:"omitempty,max=20,dive,required,max=64"`
	IsUrgent             *bool            `json:"isUrgent,omitempty"`
	ExpectedDeliveryDate *time.Time       `json:"expectedDeliveryDate,omitempty"`
}

// UpdateStatusRequest смена статуса заказа
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// UpdatePaymentRequest новая собранная сумма
type UpdatePaymentRequest struct {
	CollectedAmount decimal.Decimal `json:"collectedAmount" swaggertype:"number"`
	Payment         *PaymentInfo    `json:"paymentInfo,omitempty" validate:"omitempty"`
}

// UpdateLocationRequest новые координаты
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// OrderList страница заказов
type OrderList struct {
	Data       []Order `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
	HasNext    bool    `json:"hasNext"`
	HasPrev    bool    `json:"hasPrev"`
}

// Revenue выручка за период
type Revenue struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	OrderCount        int     `json:"orderCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// StatusSummary сводка по статусу за период
type StatusSummary struct {
	Status          string  `json:"status"`
	OrderCount      int     `json:"orderCount"`
	TotalBillAmount float64 `json:"totalBillAmount"`
	CollectedAmount float64 `json:"collectedAmount"`
	PendingAmount   float64 `json:"pendingAmount"`
}

func PaymentEntityToJSON(p *entities.PaymentInfo) *PaymentInfo {
	if p == nil {
		return nil
	}
	return &PaymentInfo{
		Method:    p.Method,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}

func PaymentJSONToEntity(p *PaymentInfo) *entities.PaymentInfo {
	if p == nil {
		return nil
	}
	return &entities.PaymentInfo{
		Method:    p.Method,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}

func DeliveryEntityToJSON(d *entities.DeliveryInfo) *DeliveryInfo {
	if d == nil {
		return nil
	}
	return &DeliveryInfo{
		Address:      d.Address,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		Instructions: d.Instructions,
	}
}

func DeliveryJSONToEntity(d *DeliveryInfo) *entities.DeliveryInfo {
	if d == nil {
		return nil
	}
	return &entities.DeliveryInfo{
		Address:      d.Address,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		Instructions: d.Instructions,
	}
}

func LocationEntityToJSON(l *entities.Location) *Location {
	if l == nil {
		return nil
	}
	return &Location{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		UpdatedAt: l.UpdatedAt,
	}
}

func LocationJSONToEntity(l *Location) *entities.Location {
	if l == nil {
		return nil
	}
	return &entities.Location{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

func ItemEntityToJSON(i entities.LineItem) LineItem {
	return LineItem{
		ProductRef: i.ProductRef,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice.InexactFloat64(),
		LineTotal:  i.LineTotal.InexactFloat64(),
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemEntityToJSON(it))
	}

	tags := o.Tags
	if tags == nil {
		tags = []string{}
	}

	return Order{
		ID:                   o.ID.String(),
		OrderNumber:          o.OrderNumber,
		DriverRef:            o.DriverRef,
		VendorRef:            o.VendorRef,
		Items:                items,
		TotalBillAmount:      o.TotalBillAmount.InexactFloat64(),
		CollectedAmount:      o.CollectedAmount.InexactFloat64(),
		PendingAmount:        o.PendingAmount.InexactFloat64(),
		Status:               string(o.Status),
		IsUrgent:             o.IsUrgent,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		ActualDeliveryDate:   o.ActualDeliveryDate,
		Payment:              PaymentEntityToJSON(o.Payment),
		Delivery:             DeliveryEntityToJSON(o.Delivery),
		Location:             LocationEntityToJSON(o.Location),
		Notes:                o.Notes,
		Tags:                 tags,
		Metadata:             o.Metadata,
		IsActive:             o.IsActive,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func CreateOrderJSONToEntity(req CreateOrderRequest) entities.NewOrder {
	items := make([]entities.NewLineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, entities.NewLineItem{
			ProductRef: it.ProductRef,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}

	return entities.NewOrder{
		DriverRef:            req.DriverRef,
		VendorRef:            req.VendorRef,
		Items:                items,
		DeclaredTotal:        req.TotalBillAmount,
		DeclaredCollected:    req.CollectedAmount,
		IsUrgent:             req.IsUrgent,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Payment:              PaymentJSONToEntity(req.Payment),
		Delivery:             DeliveryJSONToEntity(req.Delivery),
		Location:             LocationJSONToEntity(req.Location),
		Notes:                req.Notes,
		Tags:                 req.Tags,
		Metadata:             req.Metadata,
	}
}

func UpdateOrderJSONToEntity(req UpdateOrderRequest) entities.OrderUpdate {
	upd := entities.OrderUpdate{
		CollectedAmount:      req.CollectedAmount,
		Payment:              PaymentJSONToEntity(req.Payment),
		Delivery:             DeliveryJSONToEntity(req.Delivery),
		Location:             LocationJSONToEntity(req.Location),
		Notes:                req.Notes,
		Tags:                 req.Tags,
		IsUrgent:             req.IsUrgent,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
	}
	if req.Status != nil {
		status := entities.Status(*req.Status)
		upd.Status = &status
	}
	return upd
}

func PageEntityToJSON(p entities.Page[entities.Order]) OrderList {
	data := make([]Order, 0, len(p.Items))
	for _, o := range p.Items {
		data = append(data, OrderEntityToJSON(o))
	}
	return OrderList{
		Data:       data,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.PageSize,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func RevenueEntityToJSON(r entities.Revenue) Revenue {
	return Revenue{
		TotalRevenue:      r.TotalRevenue.InexactFloat64(),
		OrderCount:        r.OrderCount,
		AverageOrderValue: r.AverageOrderValue.InexactFloat64(),
	}
}

func SummaryEntityToJSON(s []entities.StatusSummary) []StatusSummary {
	out := make([]StatusSummary, 0, len(s))
	for _, row := range s {
		out = append(out, StatusSummary{
			Status:          string(row.Status),
			OrderCount:      row.OrderCount,
			TotalBillAmount: row.TotalBillAmount.InexactFloat64(),
			CollectedAmount: row.CollectedAmount.InexactFloat64(),
			PendingAmount:   row.PendingAmount.InexactFloat64(),
		})
	}
	return out
}
