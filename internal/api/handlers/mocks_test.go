package handlers_test

import (
	"context"

	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdatePaymentStatus(ctx context.Context, orderNumber string, status models.CheckoutStatus) error {
	return m.Called(ctx, orderNumber, status).Error(0)
}

func (m *mockOrderRepo) UpdateOrderStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderNumber, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) CountOrders(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

func (m *mockOrderRepo) Revenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)

	return args.Get(0).(float64), args.Error(1)
}

func (m *mockOrderRepo) CountPendingOrders(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

type mockStockRepo struct {
	mock.Mock
}

func (m *mockStockRepo) GetLevel(ctx context.Context, sku string) (int, error) {
	args := m.Called(ctx, sku)

	return args.Int(0), args.Error(1)
}

func (m *mockStockRepo) LowStock(ctx context.Context, threshold int) ([]models.StockLevel, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.StockLevel), args.Error(1)
}

func (m *mockStockRepo) OutOfStock(ctx context.Context) ([]models.StockLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.StockLevel), args.Error(1)
}

func (m *mockStockRepo) DecrementStock(ctx context.Context, sku string, quantity int) error {
	return m.Called(ctx, sku, quantity).Error(0)
}
