package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderNumber string, status models.CheckoutStatus) error
	UpdateOrderStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
	CountOrders(ctx context.Context) (int, error)
	Revenue(ctx context.Context) (float64, error)
	CountPendingOrders(ctx context.Context) (int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `
	order_number, customer_name, customer_email, items, subtotal, shipping,
	discount, total, discount_code, street, house_number, postal_code, city,
	notes, payment_method, status, payment_status, created_at, updated_at
`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		order.OrderNumber, order.CustomerName, order.CustomerEmail, itemsJSON,
		order.Subtotal, order.Shipping, order.Discount, order.Total,
		order.DiscountCode, order.Street, order.HouseNumber, order.PostalCode,
		order.City, order.Notes, order.PaymentMethod, order.Status, order.PaymentStatus,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	return scanOrder(r.DB.QueryRowContext(dbCtx, query, orderNumber))
}

// UpdatePaymentStatus is idempotent: re-reporting the same terminal status
// leaves the row untouched, which keeps provider webhooks and polling safe to
// repeat.
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderNumber string, status models.CheckoutStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET payment_status = $1, updated_at = NOW()
		WHERE order_number = $2 AND payment_status <> $1
	`

	_, err := r.DB.ExecContext(dbCtx, query, status, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE order_number = $2
		RETURNING ` + orderColumns

	return scanOrder(r.DB.QueryRowContext(dbCtx, query, status, orderNumber))
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`

	rows, err := r.DB.QueryContext(dbCtx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) CountOrders(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// Revenue only counts orders whose payment reached a terminal-success state.
func (r *orderRepository) Revenue(ctx context.Context) (float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT COALESCE(SUM(total), 0) FROM orders WHERE payment_status IN ('paid', 'authorized')`

	var revenue float64
	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return revenue, nil
}

func (r *orderRepository) CountPendingOrders(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT COUNT(*) FROM orders WHERE payment_status = 'pending'`

	var count int
	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending orders: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {

	order := &models.Order{}

	var itemsJSON []byte

	err := row.Scan(
		&order.OrderNumber, &order.CustomerName, &order.CustomerEmail, &itemsJSON,
		&order.Subtotal, &order.Shipping, &order.Discount, &order.Total,
		&order.DiscountCode, &order.Street, &order.HouseNumber, &order.PostalCode,
		&order.City, &order.Notes, &order.PaymentMethod, &order.Status,
		&order.PaymentStatus, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {

	var orders []models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}

		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
