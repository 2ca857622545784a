package service

import (
	"context"
	"time"

	"github.com/retrogameshop/storefront-platform/internal/catalog"
	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
	repository "github.com/retrogameshop/storefront-platform/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	recentOrderCount  = 10
	lowStockThreshold = 5
	tokenTTL          = 24 * time.Hour
)

type DashboardService struct {
	orderRepo         repository.OrderRepository
	stockRepo         repository.StockRepository
	subscriberRepo    repository.SubscriberRepository
	catalog           *catalog.Catalog
	jwtKey            []byte
	adminPasswordHash []byte
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	subscriberRepo repository.SubscriberRepository,
	cat *catalog.Catalog,
	jwtKey []byte,
	adminPasswordHash []byte,
) *DashboardService {
	return &DashboardService{
		orderRepo:         orderRepo,
		stockRepo:         stockRepo,
		subscriberRepo:    subscriberRepo,
		catalog:           cat,
		jwtKey:            jwtKey,
		adminPasswordHash: adminPasswordHash,
	}
}

func (s *DashboardService) Login(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error) {

	if bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(req.Password)) != nil {
		return nil, errors.UnauthorizedError("Invalid credentials")
	}

	expiresAt := time.Now().Add(tokenTTL)

	claims := &models.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// Generate Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate the token").WithError(err)
	}

	return &models.AdminLoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}, nil
}

// Summary assembles the dashboard read model in one pass. Sales figures come
// from orders, inventory from stock levels, and the product count from the
// in-memory catalog.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {

	totalOrders, err := s.orderRepo.CountOrders(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count orders").WithError(err)
	}

	revenue, err := s.orderRepo.Revenue(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to sum revenue").WithError(err)
	}

	pending, err := s.orderRepo.CountPendingOrders(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count pending orders").WithError(err)
	}

	recent, err := s.orderRepo.ListRecent(ctx, recentOrderCount)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch recent orders").WithError(err)
	}

	lowStock, err := s.stockRepo.LowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch low stock").WithError(err)
	}

	outOfStock, err := s.stockRepo.OutOfStock(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch out of stock").WithError(err)
	}

	subscribers, err := s.subscriberRepo.CountSubscribers(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count subscribers").WithError(err)
	}

	var averageOrderValue float64
	if totalOrders > 0 {
		averageOrderValue = revenue / float64(totalOrders)
	}

	return &models.DashboardSummary{
		Overview: models.DashboardOverview{
			TotalOrders:       totalOrders,
			Revenue:           revenue,
			AverageOrderValue: averageOrderValue,
			PendingOrders:     pending,
		},
		RecentOrders: recent,
		Inventory: models.DashboardInventory{
			TotalProducts: s.catalog.Len(),
			LowStock:      lowStock,
			OutOfStock:    outOfStock,
		},
		Subscribers: subscribers,
		LastUpdated: time.Now(),
	}, nil
}

func (s *DashboardService) ListOrders(ctx context.Context, page int, size int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	orders, total, err := s.orderRepo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *DashboardService) UpdateOrderStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (*models.Order, error) {

	// check if order exists or not
	if _, err := s.orderRepo.GetOrderByNumber(ctx, orderNumber); err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	order, err := s.orderRepo.UpdateOrderStatus(ctx, orderNumber, status)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	return order, nil
}
