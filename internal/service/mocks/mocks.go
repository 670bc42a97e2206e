package mocks

import (
	"context"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockOrderRepo struct {
	mock.Mock
}

func NewMockOrderRepo(t testingT) *MockOrderRepo {
	m := &MockOrderRepo{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepo) SaveItems(ctx context.Context, orderID uuid.UUID, items []entities.LineItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *MockOrderRepo) SaveTags(ctx context.Context, orderID uuid.UUID, tags []string) error {
	return m.Called(ctx, orderID, tags).Error(0)
}

func (m *MockOrderRepo) ReplaceTags(ctx context.Context, orderID uuid.UUID, tags []string) error {
	return m.Called(ctx, orderID, tags).Error(0)
}

func (m *MockOrderRepo) UpdateOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *MockOrderRepo) FindOrders(ctx context.Context, q entities.OrderQuery) ([]entities.Order, error) {
	args := m.Called(ctx, q)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) CountOrders(ctx context.Context, q entities.OrderQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	args := m.Called(ctx, count)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

func (m *MockOrderRepo) StatusBreakdown(ctx context.Context, from, to time.Time) ([]entities.StatusSummary, error) {
	args := m.Called(ctx, from, to)
	summary, _ := args.Get(0).([]entities.StatusSummary)
	return summary, args.Error(1)
}

type MockPriceLookup struct {
	mock.Mock
}

func NewMockPriceLookup(t testingT) *MockPriceLookup {
	m := &MockPriceLookup{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPriceLookup) ProductPrices(ctx context.Context, vendorRef string, productRefs []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, vendorRef, productRefs)
	prices, _ := args.Get(0).(map[string]decimal.Decimal)
	return prices, args.Error(1)
}

type MockNumberGenerator struct {
	mock.Mock
}

func NewMockNumberGenerator(t testingT) *MockNumberGenerator {
	m := &MockNumberGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNumberGenerator) Generate(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockSequenceRepo struct {
	mock.Mock
}

func NewMockSequenceRepo(t testingT) *MockSequenceRepo {
	m := &MockSequenceRepo{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSequenceRepo) LastOrderNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func NewMockCache(t testingT) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte) {
	m.Called(ctx, key, value)
}

func (m *MockCache) Delete(ctx context.Context, key string) {
	m.Called(ctx, key)
}
