package mocks

import (
	"context"

	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/trm"
	"github.com/stretchr/testify/mock"
)

// MockManager runs callbacks inline, without a database.
type MockManager struct {
	mock.Mock
}

func NewMockManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockManager {
	m := &MockManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(1) == nil {
		return ctx, nil, args.Error(2)
	}
	return args.Get(0).(context.Context), args.Get(1).(trm.Transaction), args.Error(2)
}

func (m *MockManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	args := m.Called(ctx, callback)
	if err := args.Error(0); err != nil {
		return err
	}
	return callback(ctx)
}
