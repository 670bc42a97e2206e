package repo

import (
	"fmt"
	"strings"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

var sortColumns = map[entities.SortField]string{
	entities.SortByCreatedAt:            "created_at",
	entities.SortByUpdatedAt:            "updated_at",
	entities.SortByOrderDate:            "order_date",
	entities.SortByOrderNumber:          "order_number",
	entities.SortByTotalBillAmount:      "total_bill_amount",
	entities.SortByCollectedAmount:      "collected_amount",
	entities.SortByPendingAmount:        "pending_amount",
	entities.SortByStatus:               "status",
	entities.SortByExpectedDeliveryDate: "expected_delivery_date",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyFilters adds one predicate per non-empty field of q. Sub-selects are
// built with "?" placeholders, the outer builder rewrites them for the dialect.
func applyFilters(b sq.SelectBuilder, q entities.OrderQuery) sq.SelectBuilder {
	if !q.IncludeInactive {
		b = b.Where(sq.Eq{"is_active": true})
	}
	if q.DriverRef != "" {
		b = b.Where(sq.Eq{"driver_ref": q.DriverRef})
	}
	if q.VendorRef != "" {
		b = b.Where(sq.Eq{"vendor_ref": q.VendorRef})
	}
	if q.Status != "" {
		b = b.Where(sq.Eq{"status": string(q.Status)})
	}
	if q.IsUrgent != nil {
		b = b.Where(sq.Eq{"is_urgent": *q.IsUrgent})
	}
	if q.From != nil {
		b = b.Where(sq.GtOrEq{"order_date": q.From.UTC()})
	}
	if q.To != nil {
		b = b.Where(sq.LtOrEq{"order_date": q.To.UTC()})
	}
	if q.MinAmount != nil {
		b = b.Where(sq.GtOrEq{"total_bill_amount": money(*q.MinAmount)})
	}
	if q.MaxAmount != nil {
		b = b.Where(sq.LtOrEq{"total_bill_amount": money(*q.MaxAmount)})
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		b = b.Where(sq.Expr(`LOWER(order_number) LIKE ? ESCAPE '\'`, pattern))
	}
	if len(q.Tags) > 0 {
		sub := sq.Select("order_id").From("order_tags").Where(sq.Eq{"tag": q.Tags})
		b = b.Where(sq.Expr("id IN (?)", sub))
	}
	if q.ProductRef != "" {
		sub := sq.Select("order_id").From("order_items").Where(sq.Eq{"product_ref": q.ProductRef})
		b = b.Where(sq.Expr("id IN (?)", sub))
	}
	return b
}

// applySort orders by the requested column with id as the tie-breaker, so
// pages never overlap when the primary values repeat.
func applySort(b sq.SelectBuilder, q entities.OrderQuery) (sq.SelectBuilder, error) {
	field := q.SortBy
	if field == "" {
		field = entities.SortByCreatedAt
	}
	column, ok := sortColumns[field]
	if !ok {
		return b, fmt.Errorf("%w: unknown sort field %q", entities.ErrValidation, field)
	}

	dir := "DESC"
	switch q.SortOrder {
	case entities.SortAsc:
		dir = "ASC"
	case entities.SortDesc, "":
	default:
		return b, fmt.Errorf("%w: unknown sort order %q", entities.ErrValidation, q.SortOrder)
	}

	return b.OrderBy(column+" "+dir, "id "+dir), nil
}

func applyPage(b sq.SelectBuilder, q entities.OrderQuery) sq.SelectBuilder {
	if q.PageSize <= 0 {
		return b
	}
	return b.Limit(uint64(q.PageSize)).Offset(uint64(q.Offset()))
}
