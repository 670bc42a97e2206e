package mocks

import (
	"context"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func NewMockOrderService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderService {
	m := &MockOrderService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrderService) order(args mock.Arguments) (entities.Order, error) {
	order, _ := args.Get(0).(entities.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) page(args mock.Arguments) (entities.Page[entities.Order], error) {
	page, _ := args.Get(0).(entities.Page[entities.Order])
	return page, args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error) {
	return m.order(m.Called(ctx, in))
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, upd entities.OrderUpdate) (entities.Order, error) {
	return m.order(m.Called(ctx, id, upd))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) (entities.Order, error) {
	return m.order(m.Called(ctx, id, status))
}

func (m *MockOrderService) UpdatePayment(ctx context.Context, id uuid.UUID, collected decimal.Decimal, payment *entities.PaymentInfo) (entities.Order, error) {
	return m.order(m.Called(ctx, id, collected, payment))
}

func (m *MockOrderService) UpdateDeliveryInfo(ctx context.Context, id uuid.UUID, info entities.DeliveryInfo) (entities.Order, error) {
	return m.order(m.Called(ctx, id, info))
}

func (m *MockOrderService) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) (entities.Order, error) {
	return m.order(m.Called(ctx, id, lat, lng))
}

func (m *MockOrderService) RemoveOrder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) SearchOrders(ctx context.Context, q entities.OrderQuery) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockOrderService) ListByDriver(ctx context.Context, driverRef string, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, driverRef, page, pageSize))
}

func (m *MockOrderService) ListByVendor(ctx context.Context, vendorRef string, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, vendorRef, page, pageSize))
}

func (m *MockOrderService) ListByProduct(ctx context.Context, productRef string, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, productRef, page, pageSize))
}

func (m *MockOrderService) ListByStatus(ctx context.Context, status entities.Status, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, status, page, pageSize))
}

func (m *MockOrderService) ListPending(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, page, pageSize))
}

func (m *MockOrderService) ListInProgress(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, page, pageSize))
}

func (m *MockOrderService) ListCompleted(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, page, pageSize))
}

func (m *MockOrderService) ListUrgent(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, page, pageSize))
}

func (m *MockOrderService) ListByDateRange(ctx context.Context, from, to time.Time, page, pageSize int) (entities.Page[entities.Order], error) {
	return m.page(m.Called(ctx, from, to, page, pageSize))
}

func (m *MockOrderService) RevenueInRange(ctx context.Context, from, to time.Time) (entities.Revenue, error) {
	args := m.Called(ctx, from, to)
	revenue, _ := args.Get(0).(entities.Revenue)
	return revenue, args.Error(1)
}

func (m *MockOrderService) StatusBreakdown(ctx context.Context, from, to time.Time) ([]entities.StatusSummary, error) {
	args := m.Called(ctx, from, to)
	summary, _ := args.Get(0).([]entities.StatusSummary)
	return summary, args.Error(1)
}
