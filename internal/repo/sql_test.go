package repo_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/config"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/repo"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/storage"
	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/trm"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func newDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := config.Config{
		Storage: config.Storage{Driver: "sqlite"},
		SQLite:  config.SQLite{Path: filepath.Join(t.TempDir(), "orders.db")},
	}
	db, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newOrder(seq int, created time.Time) entities.Order {
	return entities.Order{
		ID:              uuid.New(),
		OrderNumber:     entities.FormatOrderNumber(created, seq),
		DriverRef:       "driver-1",
		VendorRef:       "vendor-1",
		TotalBillAmount: dec("25"),
		CollectedAmount: dec("20"),
		PendingAmount:   dec("5"),
		Status:          entities.StatusPending,
		OrderDate:       created,
		IsActive:        true,
		CreatedAt:       created,
		UpdatedAt:       created,
		Items: []entities.LineItem{
			{ProductRef: "p1", Quantity: 2, UnitPrice: dec("10"), LineTotal: dec("20")},
			{ProductRef: "p2", Quantity: 1, UnitPrice: dec("5"), LineTotal: dec("5")},
		},
	}
}

func save(t *testing.T, r interface {
	SaveOrder(context.Context, entities.Order) error
	SaveItems(context.Context, uuid.UUID, []entities.LineItem) error
	SaveTags(context.Context, uuid.UUID, []string) error
}, o entities.Order) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, r.SaveOrder(ctx, o))
	require.NoError(t, r.SaveItems(ctx, o.ID, o.Items))
	require.NoError(t, r.SaveTags(ctx, o.ID, o.Tags))
}

func TestSQLRepo_SaveAndGet(t *testing.T) {
	r := repo.NewSQLRepo(newDB(t))
	ctx := context.Background()

	paidAt := baseTime.Add(time.Hour)
	o := newOrder(1, baseTime)
	o.Tags = []string{"fragile", "cold"}
	o.Metadata = map[string]string{"source": "app"}
	o.Payment = &entities.PaymentInfo{Method: "cash", PaidAt: &paidAt}
	o.Delivery = &entities.DeliveryInfo{Address: "Main st. 1", ContactPhone: "+100"}
	o.Location = &entities.Location{Latitude: 55.75, Longitude: 37.61, UpdatedAt: baseTime}
	save(t, r, o)

	got, err := r.GetOrderByID(ctx, o.ID)
	require.NoError(t, err)

	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, o.OrderNumber, got.OrderNumber)
	assert.True(t, o.TotalBillAmount.Equal(got.TotalBillAmount))
	assert.True(t, o.PendingAmount.Equal(got.PendingAmount))
	assert.Equal(t, entities.StatusPending, got.Status)
	assert.True(t, baseTime.Equal(got.OrderDate))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "p1", got.Items[0].ProductRef)
	assert.True(t, dec("20").Equal(got.Items[0].LineTotal))
	assert.ElementsMatch(t, []string{"fragile", "cold"}, got.Tags)
	assert.Equal(t, map[string]string{"source": "app"}, got.Metadata)
	require.NotNil(t, got.Payment)
	assert.Equal(t, "cash", got.Payment.Method)
	require.NotNil(t, got.Payment.PaidAt)
	assert.True(t, paidAt.Equal(*got.Payment.PaidAt))
	require.NotNil(t, got.Delivery)
	assert.Equal(t, "Main st. 1", got.Delivery.Address)
	require.NotNil(t, got.Location)
	assert.InDelta(t, 55.75, got.Location.Latitude, 1e-9)
}

func TestSQLRepo_GetOrderByID_NotFound(t *testing.T) {
	r := repo.NewSQLRepo(newDB(t))
	_, err := r.GetOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}

func TestSQLRepo_SaveOrder_DuplicateNumber(t *testing.T) {
	r := repo.NewSQLRepo(newDB(t))
	ctx := context.Background()

	first := newOrder(1, baseTime)
	require.NoError(t, r.SaveOrder(ctx, first))

	second := newOrder(1, baseTime)
	err := r.SaveOrder(ctx, second)
	assert.ErrorIs(t, err, entities.ErrConflict)
}

func TestSQLRepo_UpdateOrder(t *testing.T) {
	r := repo.NewSQLRepo(newDB(t))
	ctx := context.Background()

	o := newOrder(1, baseTime)
	save(t, r, o)

	o.Status = entities.StatusInProgress
	o.CollectedAmount = dec("25")
	o.PendingAmount = decimal.Zero
	o.Notes = "left at the gate"
	o.DriverRef = "someone-else"
	o.UpdatedAt = baseTime.Add(time.Minute)
	require.NoError(t, r.UpdateOrder(ctx, o))
	require.NoError(t, r.ReplaceTags(ctx, o.ID, []string{"done"}))

	got, err := r.GetOrderByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInProgress, got.Status)
	assert.True(t, got.PendingAmount.IsZero())
	assert.Equal(t, "left at the gate", got.Notes)
	assert.Equal(t, "driver-1", got.DriverRef)
	assert.Equal(t, []string{"done"}, got.Tags)

	missing := newOrder(2, baseTime)
	assert.ErrorIs(t, r.UpdateOrder(ctx, missing), entities.ErrOrderNotFound)
}

func TestSQLRepo_LastOrderNumber(t *testing.T) {
	r := repo.NewSQLRepo(newDB(t))
	ctx := context.Background()
	prefix := entities.OrderNumberPrefix(baseTime)

	last, err := r.LastOrderNumber(ctx, prefix)
	require.NoError(t, err)
	assert.Empty(t, last)

	for _, seq := range []int{1, 7, 3} {
		save(t, r, newOrder(seq, baseTime))
	}
	save(t, r, newOrder(42, baseTime.AddDate(0, 0, 1)))

	last, err = r.LastOrderNumber(ctx, prefix)
	require.NoError(t, err)
	assert.Equal(t, entities.FormatOrderNumber(baseTime, 7), last)
}

func TestSQLRepo_FindOrders(t *testing.T) {
	r := repo.NewSQLRepo(newDB(t))
	ctx := context.Background()

	var orders []entities.Order
	for i := 1; i <= 5; i++ {
		o := newOrder(i, baseTime.Add(time.Duration(i)*time.Minute))
		o.TotalBillAmount = dec(fmt.Sprintf("%d", i*10))
		o.CollectedAmount = decimal.Zero
		o.PendingAmount = o.TotalBillAmount
		o.Items = []entities.LineItem{{ProductRef: fmt.Sprintf("p%d", i), Quantity: 1, UnitPrice: o.TotalBillAmount, LineTotal: o.TotalBillAmount}}
		if i%2 == 0 {
			o.DriverRef = "driver-2"
			o.IsUrgent = true
			o.Tags = []string{"even"}
		}
		save(t, r, o)
		orders = append(orders, o)
	}

	urgent := true
	minAmount := dec("20")
	maxAmount := dec("40")

	testCases := []struct {
		name    string
		query   entities.OrderQuery
		wantIDs []uuid.UUID
		wantErr error
	}{
		{
			name:    "default sort is newest first",
			query:   entities.OrderQuery{},
			wantIDs: []uuid.UUID{orders[4].ID, orders[3].ID, orders[2].ID, orders[1].ID, orders[0].ID},
		},
		{
			name:    "first page ascending",
			query:   entities.OrderQuery{SortOrder: entities.SortAsc, Page: 1, PageSize: 2},
			wantIDs: []uuid.UUID{orders[0].ID, orders[1].ID},
		},
		{
			name:    "last page ascending",
			query:   entities.OrderQuery{SortOrder: entities.SortAsc, Page: 3, PageSize: 2},
			wantIDs: []uuid.UUID{orders[4].ID},
		},
		{
			name:    "by driver",
			query:   entities.OrderQuery{DriverRef: "driver-2", SortOrder: entities.SortAsc},
			wantIDs: []uuid.UUID{orders[1].ID, orders[3].ID},
		},
		{
			name:    "urgent by amount",
			query:   entities.OrderQuery{IsUrgent: &urgent, SortBy: entities.SortByTotalBillAmount, SortOrder: entities.SortDesc},
			wantIDs: []uuid.UUID{orders[3].ID, orders[1].ID},
		},
		{
			name:    "amount range",
			query:   entities.OrderQuery{MinAmount: &minAmount, MaxAmount: &maxAmount, SortOrder: entities.SortAsc},
			wantIDs: []uuid.UUID{orders[1].ID, orders[2].ID, orders[3].ID},
		},
		{
			name:    "by product",
			query:   entities.OrderQuery{ProductRef: "p3"},
			wantIDs: []uuid.UUID{orders[2].ID},
		},
		{
			name:    "by tag",
			query:   entities.OrderQuery{Tags: []string{"even"}, SortOrder: entities.SortAsc},
			wantIDs: []uuid.UUID{orders[1].ID, orders[3].ID},
		},
		{
			name:    "search by number suffix",
			query:   entities.OrderQuery{Search: "0005"},
			wantIDs: []uuid.UUID{orders[4].ID},
		},
		{
			name:    "search escapes wildcards",
			query:   entities.OrderQuery{Search: "%"},
			wantIDs: []uuid.UUID{},
		},
		{
			name:    "unknown sort field",
			query:   entities.OrderQuery{SortBy: "driverRef"},
			wantErr: entities.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.FindOrders(ctx, tc.query)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]uuid.UUID, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)

			total, err := r.CountOrders(ctx, tc.query)
			require.NoError(t, err)
			if tc.query.PageSize == 0 {
				assert.Equal(t, len(tc.wantIDs), total)
			}
		})
	}
}

func TestSQLRepo_SoftDeletedOrdersAreHidden(t *testing.T) {
	r := repo.NewSQLRepo(newDB(t))
	ctx := context.Background()

	active := newOrder(1, baseTime)
	removed := newOrder(2, baseTime.Add(time.Minute))
	save(t, r, active)
	save(t, r, removed)

	removed.IsActive = false
	require.NoError(t, r.UpdateOrder(ctx, removed))

	total, err := r.CountOrders(ctx, entities.OrderQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	total, err = r.CountOrders(ctx, entities.OrderQuery{IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	got, err := r.GetOrderByID(ctx, removed.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestSQLRepo_RevenueAndBreakdown(t *testing.T) {
	db := newDB(t)
	r := repo.NewSQLRepo(db)
	ctx := context.Background()

	a := newOrder(1, baseTime)
	b := newOrder(2, baseTime.Add(time.Hour))
	b.TotalBillAmount = dec("35")
	b.CollectedAmount = dec("35")
	b.PendingAmount = decimal.Zero
	b.Status = entities.StatusCompleted
	outside := newOrder(3, baseTime.AddDate(0, 1, 0))
	for _, o := range []entities.Order{a, b, outside} {
		save(t, r, o)
	}

	from, to := baseTime.Add(-time.Hour), baseTime.Add(2*time.Hour)

	total, count, err := r.Revenue(ctx, from, to)
	require.NoError(t, err)
	assert.True(t, dec("60").Equal(total), total.String())
	assert.Equal(t, 2, count)

	total, count, err = r.Revenue(ctx, baseTime.AddDate(1, 0, 0), baseTime.AddDate(2, 0, 0))
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.Zero(t, count)

	summary, err := r.StatusBreakdown(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, entities.StatusCompleted, summary[0].Status)
	assert.True(t, dec("35").Equal(summary[0].CollectedAmount))
	assert.Equal(t, entities.StatusPending, summary[1].Status)
	assert.True(t, dec("5").Equal(summary[1].PendingAmount))
}

func TestSQLRepo_ProductPrices(t *testing.T) {
	db := newDB(t)
	r := repo.NewSQLRepo(db)
	ctx := context.Background()

	db.MustExec(`INSERT INTO products (id, vendor_ref, name, price, is_active) VALUES
		('p1', 'vendor-1', 'Milk', 10.5, 1),
		('p2', 'vendor-1', 'Bread', 3, 0),
		('p3', 'vendor-2', 'Eggs', 7, 1)`)

	prices, err := r.ProductPrices(ctx, "vendor-1", []string{"p1", "p2", "p3", "p4"})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.True(t, dec("10.5").Equal(prices["p1"]))
}

func TestSQLRepo_RollbackLeavesNoOrder(t *testing.T) {
	db := newDB(t)
	r := repo.NewSQLRepo(db)
	manager := trm.NewManager(db)
	ctx := context.Background()

	o := newOrder(1, baseTime)
	o.Items = append(o.Items, entities.LineItem{ProductRef: "bad", Quantity: 0, UnitPrice: dec("1"), LineTotal: decimal.Zero})

	err := manager.Do(ctx, func(ctx context.Context) error {
		if err := r.SaveOrder(ctx, o); err != nil {
			return err
		}
		return r.SaveItems(ctx, o.ID, o.Items)
	})
	require.Error(t, err)

	_, err = r.GetOrderByID(ctx, o.ID)
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}
