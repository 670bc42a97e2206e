package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/trm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type sqlRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

// NewSQLRepo works on top of Postgres or SQLite, picking placeholders by driver name.
func NewSQLRepo(db *sqlx.DB) *sqlRepo {
	var format sq.PlaceholderFormat = sq.Question
	if db.DriverName() == "postgres" {
		format = sq.Dollar
	}
	return &sqlRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

func (r *sqlRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(orderValues(o)...).
		MustSql()

	_, err := r.querier(ctx).ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", entities.ErrConflict, o.OrderNumber)
	}
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *sqlRepo) SaveItems(ctx context.Context, orderID uuid.UUID, items []entities.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "position", "product_ref", "quantity", "unit_price", "line_total")

	for i, it := range items {
		q = q.Values(orderID.String(), i, it.ProductRef, it.Quantity, money(it.UnitPrice), money(it.LineTotal))
	}

	query, args := q.MustSql()
	if _, err := r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

func (r *sqlRepo) SaveTags(ctx context.Context, orderID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	q := r.qb.Insert("order_tags").
		Columns("order_id", "tag").
		Suffix("ON CONFLICT DO NOTHING")

	for _, tag := range tags {
		q = q.Values(orderID.String(), tag)
	}

	query, args := q.MustSql()
	if _, err := r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}
	return nil
}

func (r *sqlRepo) ReplaceTags(ctx context.Context, orderID uuid.UUID, tags []string) error {
	query, args := r.qb.Delete("order_tags").
		Where(sq.Eq{"order_id": orderID.String()}).
		MustSql()

	if _, err := r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete tags: %w", err)
	}
	return r.SaveTags(ctx, orderID, tags)
}

// UpdateOrder overwrites every mutable column. Identity, number, refs, total
// and order date are never written after creation.
func (r *sqlRepo) UpdateOrder(ctx context.Context, o entities.Order) error {
	values := orderValues(o)
	set := make(map[string]any, len(orderColumns))
	for i, col := range orderColumns {
		set[col] = values[i]
	}
	for _, col := range immutableColumns {
		delete(set, col)
	}

	query, args := r.qb.Update("orders").
		SetMap(set).
		Where(sq.Eq{"id": o.ID.String()}).
		MustSql()

	res, err := r.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

var immutableColumns = []string{
	"id", "order_number", "driver_ref", "vendor_ref",
	"total_bill_amount", "order_date", "created_at",
}

// GetOrderByID returns soft-deleted orders too, callers decide whether to hide them.
func (r *sqlRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id.String()}).
		MustSql()

	var order Order
	err := r.querier(ctx).GetContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	orders, err := r.attach(ctx, []Order{order})
	if err != nil {
		return entities.Order{}, err
	}
	return orders[0], nil
}

// LastOrderNumber returns the highest number starting with prefix, or "" when
// there is none. Soft-deleted orders still hold their numbers.
func (r *sqlRepo) LastOrderNumber(ctx context.Context, prefix string) (string, error) {
	query, args := r.qb.Select("order_number").
		From("orders").
		Where(sq.Like{"order_number": prefix + "%"}).
		OrderBy("order_number DESC").
		Limit(1).
		MustSql()

	var number string
	err := r.querier(ctx).GetContext(ctx, &number, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last order number: %w", err)
	}
	return number, nil
}

func (r *sqlRepo) FindOrders(ctx context.Context, q entities.OrderQuery) ([]entities.Order, error) {
	b := applyFilters(r.qb.Select(orderColumns...).From("orders"), q)
	b, err := applySort(b, q)
	if err != nil {
		return nil, err
	}

	query, args, err := applyPage(b, q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	var orders []Order
	if err := r.querier(ctx).SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	return r.attach(ctx, orders)
}

func (r *sqlRepo) CountOrders(ctx context.Context, q entities.OrderQuery) (int, error) {
	query, args, err := applyFilters(r.qb.Select("COUNT(*)").From("orders"), q).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.querier(ctx).GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

func (r *sqlRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	return r.FindOrders(ctx, entities.OrderQuery{
		SortBy:    entities.SortByCreatedAt,
		SortOrder: entities.SortDesc,
		Page:      1,
		PageSize:  count,
	})
}

func (r *sqlRepo) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	query, args := r.qb.Select("COALESCE(SUM(total_bill_amount), 0) AS total", "COUNT(*) AS orders").
		From("orders").
		Where(sq.Eq{"is_active": true}).
		Where(sq.GtOrEq{"order_date": from.UTC()}).
		Where(sq.LtOrEq{"order_date": to.UTC()}).
		MustSql()

	var row struct {
		Total  decimal.Decimal `db:"total"`
		Orders int             `db:"orders"`
	}
	if err := r.querier(ctx).GetContext(ctx, &row, query, args...); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	return row.Total, row.Orders, nil
}

func (r *sqlRepo) StatusBreakdown(ctx context.Context, from, to time.Time) ([]entities.StatusSummary, error) {
	query, args := r.qb.Select(
		"status",
		"COUNT(*) AS orders",
		"COALESCE(SUM(total_bill_amount), 0) AS total",
		"COALESCE(SUM(collected_amount), 0) AS collected",
		"COALESCE(SUM(pending_amount), 0) AS pending",
	).
		From("orders").
		Where(sq.Eq{"is_active": true}).
		Where(sq.GtOrEq{"order_date": from.UTC()}).
		Where(sq.LtOrEq{"order_date": to.UTC()}).
		GroupBy("status").
		OrderBy("status").
		MustSql()

	var rows []struct {
		Status    string          `db:"status"`
		Orders    int             `db:"orders"`
		Total     decimal.Decimal `db:"total"`
		Collected decimal.Decimal `db:"collected"`
		Pending   decimal.Decimal `db:"pending"`
	}
	if err := r.querier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate statuses: %w", err)
	}

	out := make([]entities.StatusSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.StatusSummary{
			Status:          entities.Status(row.Status),
			OrderCount:      row.Orders,
			TotalBillAmount: row.Total,
			CollectedAmount: row.Collected,
			PendingAmount:   row.Pending,
		})
	}
	return out, nil
}

// ProductPrices reads current prices from the vendor catalog. Products that
// are unknown, inactive or belong to another vendor are absent from the result.
func (r *sqlRepo) ProductPrices(ctx context.Context, vendorRef string, productRefs []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(productRefs))
	if len(productRefs) == 0 {
		return prices, nil
	}

	query, args := r.qb.Select("id", "price").
		From("products").
		Where(sq.Eq{"vendor_ref": vendorRef, "is_active": true, "id": productRefs}).
		MustSql()

	var rows []struct {
		ID    string          `db:"id"`
		Price decimal.Decimal `db:"price"`
	}
	if err := r.querier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select product prices: %w", err)
	}

	for _, row := range rows {
		prices[row.ID] = row.Price
	}
	return prices, nil
}

// attach loads items and tags for the given orders in two batch queries.
func (r *sqlRepo) attach(ctx context.Context, orders []Order) ([]entities.Order, error) {
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID.String()
	}

	query, args := r.qb.Select("order_id", "position", "product_ref", "quantity", "unit_price", "line_total").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		MustSql()

	var items []Item
	if err := r.querier(ctx).SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	itemsMap := make(map[uuid.UUID][]Item, len(orders))
	for _, item := range items {
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}

	query, args = r.qb.Select("order_id", "tag").
		From("order_tags").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "tag").
		MustSql()

	var tags []Tag
	if err := r.querier(ctx).SelectContext(ctx, &tags, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	tagsMap := make(map[uuid.UUID][]string, len(orders))
	for _, tag := range tags {
		tagsMap[tag.OrderID] = append(tagsMap[tag.OrderID], tag.Tag)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, itemsMap[order.ID], tagsMap[order.ID]))
	}
	return result, nil
}

func (r *sqlRepo) querier(ctx context.Context) trm.Querier {
	return trm.QuerierFrom(ctx, r.db)
}
