package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/config"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/trm"
	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	// Операции идемпотентны, т.к. используется ON CONFLICT DO NOTHING
	SaveTags(ctx context.Context, orderID uuid.UUID, tags []string) error
	ReplaceTags(ctx context.Context, orderID uuid.UUID, tags []string) error
	SaveItems(ctx context.Context, orderID uuid.UUID, items []entities.LineItem) error

	UpdateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error)

	FindOrders(ctx context.Context, q entities.OrderQuery) ([]entities.Order, error)
	CountOrders(ctx context.Context, q entities.OrderQuery) (int, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)

	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error)
	StatusBreakdown(ctx context.Context, from, to time.Time) ([]entities.StatusSummary, error)
}

// PriceLookup is the vendor catalog read model.
type PriceLookup interface {
	ProductPrices(ctx context.Context, vendorRef string, productRefs []string) (map[string]decimal.Decimal, error)
}

type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

type OrderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	prices    PriceLookup
	numbers   NumberGenerator
	cache     Cache
	cfg       config.Orders
	now       func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	prices PriceLookup,
	numbers NumberGenerator,
	cache Cache,
	cfg config.Orders,
) *OrderService {
	return &OrderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		prices:    prices,
		numbers:   numbers,
		cache:     cache,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var readRetry = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  5,
	Multiplier:   2,
}

func (s *OrderService) CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error) {
	if err := validateNewOrder(in); err != nil {
		return entities.Order{}, err
	}

	items, err := s.resolveItems(ctx, in)
	if err != nil {
		return entities.Order{}, err
	}

	amounts, err := entities.Reconcile(items, in.DeclaredTotal, in.DeclaredCollected)
	if err != nil {
		return entities.Order{}, err
	}

	now := s.now()
	order := entities.Order{
		DriverRef:            in.DriverRef,
		VendorRef:            in.VendorRef,
		Items:                items,
		TotalBillAmount:      amounts.TotalBillAmount,
		CollectedAmount:      in.DeclaredCollected,
		PendingAmount:        amounts.PendingAmount,
		Status:               entities.StatusPending,
		IsUrgent:             in.IsUrgent,
		OrderDate:            now,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Payment:              in.Payment,
		Delivery:             in.Delivery,
		Notes:                in.Notes,
		Tags:                 normalizeTags(in.Tags),
		Metadata:             in.Metadata,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if in.Location != nil {
		if err := validateCoordinates(in.Location.Latitude, in.Location.Longitude); err != nil {
			return entities.Order{}, err
		}
		order.Location = &entities.Location{
			Latitude:  in.Location.Latitude,
			Longitude: in.Location.Longitude,
			UpdatedAt: now,
		}
	}

	fn := func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			number, err := s.numbers.Generate(ctx)
			if err != nil {
				return err
			}
			order.ID = uuid.New()
			order.OrderNumber = number

			if err := s.repo.SaveOrder(ctx, order); err != nil {
				return err
			}
			if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
				return err
			}
			return s.repo.SaveTags(ctx, order.ID, order.Tags)
		})
	}

	cfg := utils.RetryConfig{
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     200 * time.Millisecond,
		MaxAttempts:  s.cfg.NumberAttempts,
		Multiplier:   2,
	}
	isConflict := func(err error) bool {
		if errors.Is(err, entities.ErrConflict) {
			s.logger.Warn("order number collision, retrying", slog.String("order_number", order.OrderNumber))
			return true
		}
		return false
	}
	if err := utils.RetryIf(ctx, cfg, fn, isConflict); err != nil {
		return entities.Order{}, err
	}

	s.logger.Debug("order created", slog.String("order_id", order.ID.String()), slog.String("order_number", order.OrderNumber))
	s.cacheOrder(ctx, order)
	return order, nil
}

// resolveItems copies the cart, taking missing unit prices from the vendor catalog.
func (s *OrderService) resolveItems(ctx context.Context, in entities.NewOrder) ([]entities.LineItem, error) {
	var missing []string
	for _, it := range in.Items {
		if it.UnitPrice == nil {
			missing = append(missing, it.ProductRef)
		}
	}

	var prices map[string]decimal.Decimal
	if len(missing) > 0 {
		var err error
		prices, err = s.prices.ProductPrices(ctx, in.VendorRef, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve prices: %w", err)
		}
	}

	items := make([]entities.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		price := it.UnitPrice
		if price == nil {
			p, ok := prices[it.ProductRef]
			if !ok {
				return nil, fmt.Errorf("%w: product %q is not sold by vendor %q", entities.ErrValidation, it.ProductRef, in.VendorRef)
			}
			price = &p
		}
		items = append(items, entities.LineItem{
			ProductRef: it.ProductRef,
			Quantity:   it.Quantity,
			UnitPrice:  *price,
		})
	}
	return items, nil
}

// GetOrderByID hides soft-deleted orders behind ErrOrderNotFound.
func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error) {
	if data, ok := s.cache.Get(ctx, id.String()); ok {
		var order entities.Order
		err := order.Unmarshal(data)
		if err == nil {
			return order, nil
		}
		s.logger.Warn("dropping broken cache entry", slog.String("order_id", id.String()), slog.Any("error", err))
		s.cache.Delete(ctx, id.String())
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, id)
		return err
	}
	if err := utils.Retry(ctx, readRetry, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}
	if !order.IsActive {
		return entities.Order{}, entities.ErrOrderNotFound
	}

	s.cacheOrder(ctx, order)
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) (entities.Order, error) {
	return s.mutate(ctx, id, func(_ context.Context, o *entities.Order) error {
		return o.Transition(status, s.now())
	})
}

func (s *OrderService) UpdatePayment(ctx context.Context, id uuid.UUID, collected decimal.Decimal, payment *entities.PaymentInfo) (entities.Order, error) {
	return s.mutate(ctx, id, func(_ context.Context, o *entities.Order) error {
		if err := o.ApplyCollection(collected); err != nil {
			return err
		}
		if payment != nil {
			o.Payment = payment
		}
		return nil
	})
}

func (s *OrderService) UpdateDeliveryInfo(ctx context.Context, id uuid.UUID, info entities.DeliveryInfo) (entities.Order, error) {
	return s.mutate(ctx, id, func(_ context.Context, o *entities.Order) error {
		o.Delivery = &info
		return nil
	})
}

func (s *OrderService) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) (entities.Order, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return entities.Order{}, err
	}
	return s.mutate(ctx, id, func(_ context.Context, o *entities.Order) error {
		o.Location = &entities.Location{Latitude: lat, Longitude: lng, UpdatedAt: s.now()}
		return nil
	})
}

// UpdateOrder applies a partial update. The status transition runs first so a
// rejected transition leaves every other field untouched.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, upd entities.OrderUpdate) (entities.Order, error) {
	if upd.IsEmpty() {
		return entities.Order{}, fmt.Errorf("%w: nothing to update", entities.ErrValidation)
	}
	if upd.Location != nil {
		if err := validateCoordinates(upd.Location.Latitude, upd.Location.Longitude); err != nil {
			return entities.Order{}, err
		}
	}

	return s.mutate(ctx, id, func(ctx context.Context, o *entities.Order) error {
		now := s.now()
		if upd.Status != nil {
			if err := o.Transition(*upd.Status, now); err != nil {
				return err
			}
		}
		if upd.CollectedAmount != nil {
			if err := o.ApplyCollection(*upd.CollectedAmount); err != nil {
				return err
			}
		}
		if upd.Payment != nil {
			o.Payment = upd.Payment
		}
		if upd.Delivery != nil {
			o.Delivery = upd.Delivery
		}
		if upd.Location != nil {
			o.Location = &entities.Location{
				Latitude:  upd.Location.Latitude,
				Longitude: upd.Location.Longitude,
				UpdatedAt: now,
			}
		}
		if upd.Notes != nil {
			o.Notes = *upd.Notes
		}
		if upd.IsUrgent != nil {
			o.IsUrgent = *upd.IsUrgent
		}
		if upd.ExpectedDeliveryDate != nil {
			o.ExpectedDeliveryDate = upd.ExpectedDeliveryDate
		}
		if upd.Tags != nil {
			o.Tags = normalizeTags(upd.Tags)
			if err := s.repo.ReplaceTags(ctx, o.ID, o.Tags); err != nil {
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}
		return nil
	})
}

// RemoveOrder soft-deletes a pending order.
func (s *OrderService) RemoveOrder(ctx context.Context, id uuid.UUID) error {
	_, err := s.mutate(ctx, id, func(_ context.Context, o *entities.Order) error {
		if o.Status != entities.StatusPending {
			return fmt.Errorf("%w: only pending orders can be removed, order is %s", entities.ErrValidation, o.Status)
		}
		o.IsActive = false
		return nil
	})
	return err
}

// mutate loads the order, applies fn and writes it back in one transaction.
// Concurrent writers are not detected, the last one wins.
func (s *OrderService) mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, o *entities.Order) error) (entities.Order, error) {
	var order entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}
		if !order.IsActive {
			return entities.ErrOrderNotFound
		}

		if err := fn(ctx, &order); err != nil {
			return err
		}

		order.UpdatedAt = s.now()
		if err := s.repo.UpdateOrder(ctx, order); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	if order.IsActive {
		s.cacheOrder(ctx, order)
	} else {
		s.cache.Delete(ctx, id.String())
	}
	s.logger.Debug("order updated", slog.String("order_id", id.String()), slog.String("status", string(order.Status)))
	return order, nil
}

func (s *OrderService) ListByDriver(ctx context.Context, driverRef string, page, pageSize int) (entities.Page[entities.Order], error) {
	if strings.TrimSpace(driverRef) == "" {
		return entities.Page[entities.Order]{}, fmt.Errorf("%w: driver ref is required", entities.ErrValidation)
	}
	return s.SearchOrders(ctx, newestFirst(entities.OrderQuery{DriverRef: driverRef, Page: page, PageSize: pageSize}))
}

func (s *OrderService) ListByVendor(ctx context.Context, vendorRef string, page, pageSize int) (entities.Page[entities.Order], error) {
	if strings.TrimSpace(vendorRef) == "" {
		return entities.Page[entities.Order]{}, fmt.Errorf("%w: vendor ref is required", entities.ErrValidation)
	}
	return s.SearchOrders(ctx, newestFirst(entities.OrderQuery{VendorRef: vendorRef, Page: page, PageSize: pageSize}))
}

func (s *OrderService) ListByProduct(ctx context.Context, productRef string, page, pageSize int) (entities.Page[entities.Order], error) {
	if strings.TrimSpace(productRef) == "" {
		return entities.Page[entities.Order]{}, fmt.Errorf("%w: product ref is required", entities.ErrValidation)
	}
	return s.SearchOrders(ctx, newestFirst(entities.OrderQuery{ProductRef: productRef, Page: page, PageSize: pageSize}))
}

// ListByStatus keeps the queue order for pending orders, oldest first.
func (s *OrderService) ListByStatus(ctx context.Context, status entities.Status, page, pageSize int) (entities.Page[entities.Order], error) {
	if !status.IsValid() {
		return entities.Page[entities.Order]{}, fmt.Errorf("%w: unknown status %q", entities.ErrValidation, status)
	}
	q := entities.OrderQuery{Status: status, Page: page, PageSize: pageSize}
	if status == entities.StatusPending {
		q.SortBy, q.SortOrder = entities.SortByCreatedAt, entities.SortAsc
		return s.SearchOrders(ctx, q)
	}
	return s.SearchOrders(ctx, newestFirst(q))
}

func (s *OrderService) ListPending(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	return s.ListByStatus(ctx, entities.StatusPending, page, pageSize)
}

func (s *OrderService) ListInProgress(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	return s.ListByStatus(ctx, entities.StatusInProgress, page, pageSize)
}

func (s *OrderService) ListCompleted(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	return s.ListByStatus(ctx, entities.StatusCompleted, page, pageSize)
}

func (s *OrderService) ListUrgent(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	urgent := true
	return s.SearchOrders(ctx, newestFirst(entities.OrderQuery{IsUrgent: &urgent, Page: page, PageSize: pageSize}))
}

func (s *OrderService) ListByDateRange(ctx context.Context, from, to time.Time, page, pageSize int) (entities.Page[entities.Order], error) {
	if err := validateRange(from, to); err != nil {
		return entities.Page[entities.Order]{}, err
	}
	return s.SearchOrders(ctx, entities.OrderQuery{
		From:      &from,
		To:        &to,
		SortBy:    entities.SortByOrderDate,
		SortOrder: entities.SortDesc,
		Page:      page,
		PageSize:  pageSize,
	})
}

func newestFirst(q entities.OrderQuery) entities.OrderQuery {
	q.SortBy, q.SortOrder = entities.SortByCreatedAt, entities.SortDesc
	return q
}

func (s *OrderService) RevenueInRange(ctx context.Context, from, to time.Time) (entities.Revenue, error) {
	if err := validateRange(from, to); err != nil {
		return entities.Revenue{}, err
	}

	total, count, err := s.repo.Revenue(ctx, from, to)
	if err != nil {
		return entities.Revenue{}, err
	}

	revenue := entities.Revenue{
		TotalRevenue:      total.Round(2),
		OrderCount:        count,
		AverageOrderValue: decimal.Zero,
	}
	if count > 0 {
		revenue.AverageOrderValue = total.Div(decimal.NewFromInt(int64(count))).Round(2)
	}
	return revenue, nil
}

func (s *OrderService) StatusBreakdown(ctx context.Context, from, to time.Time) ([]entities.StatusSummary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.StatusBreakdown(ctx, from, to)
}

func (s *OrderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to get latest orders: %w", err)
	}

	for _, order := range orders {
		s.cacheOrder(ctx, order)
	}

	s.logger.Info("cache warmed up", slog.Int("count", len(orders)))
	return nil
}

func (s *OrderService) cacheOrder(ctx context.Context, order entities.Order) {
	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", order.ID.String()), slog.Any("error", err))
		return
	}
	s.cache.Set(ctx, order.ID.String(), data)
}

func validateNewOrder(in entities.NewOrder) error {
	if strings.TrimSpace(in.DriverRef) == "" {
		return fmt.Errorf("%w: driver ref is required", entities.ErrValidation)
	}
	if strings.TrimSpace(in.VendorRef) == "" {
		return fmt.Errorf("%w: vendor ref is required", entities.ErrValidation)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", entities.ErrValidation)
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductRef) == "" {
			return fmt.Errorf("%w: item %d has no product ref", entities.ErrValidation, i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", entities.ErrValidation, i)
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d unit price must not be negative", entities.ErrValidation, i)
		}
	}
	return nil
}

func validateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", entities.ErrValidation, lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", entities.ErrValidation, lng)
	}
	return nil
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: both ends of the range are required", entities.ErrValidation)
	}
	if from.After(to) {
		return fmt.Errorf("%w: range start is after its end", entities.ErrValidation)
	}
	return nil
}

// normalizeTags trims, drops empty and duplicate tags and sorts the rest.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
