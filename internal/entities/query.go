package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type SortField string

const (
	SortByCreatedAt            SortField = "createdAt"
	SortByUpdatedAt            SortField = "updatedAt"
	SortByOrderDate            SortField = "orderDate"
	SortByOrderNumber          SortField = "orderNumber"
	SortByTotalBillAmount      SortField = "totalBillAmount"
	SortByCollectedAmount      SortField = "collectedAmount"
	SortByPendingAmount        SortField = "pendingAmount"
	SortByStatus               SortField = "status"
	SortByExpectedDeliveryDate SortField = "expectedDeliveryDate"
)

var sortFields = map[SortField]struct{}{
	SortByCreatedAt: {}, SortByUpdatedAt: {}, SortByOrderDate: {}, SortByOrderNumber: {},
	SortByTotalBillAmount: {}, SortByCollectedAmount: {}, SortByPendingAmount: {},
	SortByStatus: {}, SortByExpectedDeliveryDate: {},
}

func (f SortField) IsValid() bool {
	_, ok := sortFields[f]
	return ok
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// OrderQuery describes a filtered, sorted and paginated scan over orders.
// Zero values mean "no filter". PageSize 0 disables pagination.
type OrderQuery struct {
	DriverRef  string
	VendorRef  string
	ProductRef string
	Status     Status
	IsUrgent   *bool
	Tags       []string
	Search     string

	From *time.Time
	To   *time.Time

	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal

	IncludeInactive bool

	SortBy    SortField
	SortOrder SortOrder
	Page      int
	PageSize  int
}

func (q OrderQuery) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func NewPage[T any](items []T, total, page, pageSize int) Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type Revenue struct {
	TotalRevenue      decimal.Decimal
	OrderCount        int
	AverageOrderValue decimal.Decimal
}

type StatusSummary struct {
	Status          Status
	OrderCount      int
	TotalBillAmount decimal.Decimal
	CollectedAmount decimal.Decimal
	PendingAmount   decimal.Decimal
}
