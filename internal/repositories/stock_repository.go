package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/internal/utils"
)

type StockRepository interface {
	GetLevel(ctx context.Context, sku string) (int, error)
	LowStock(ctx context.Context, threshold int) ([]models.StockLevel, error)
	OutOfStock(ctx context.Context) ([]models.StockLevel, error)
	DecrementStock(ctx context.Context, sku string, quantity int) error
}

type stockRepository struct {
	DB *sql.DB
}

func NewStockRepo(db *sql.DB) StockRepository {
	return &stockRepository{DB: db}
}

func (r *stockRepository) GetLevel(ctx context.Context, sku string) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT quantity FROM stock_levels WHERE sku = $1`

	var quantity int
	if err := r.DB.QueryRowContext(dbCtx, query, sku).Scan(&quantity); err != nil {
		if err == sql.ErrNoRows {
			return 0, err
		}

		return 0, fmt.Errorf("failed to get stock level: %w", err)
	}

	return quantity, nil
}

// LowStock returns items that are still available but below the threshold.
// Items at zero belong in OutOfStock, not here.
func (r *stockRepository) LowStock(ctx context.Context, threshold int) ([]models.StockLevel, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT sku, quantity FROM stock_levels WHERE quantity > 0 AND quantity <= $1 ORDER BY quantity ASC, sku ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}

	defer rows.Close()

	return collectLevels(rows)
}

func (r *stockRepository) OutOfStock(ctx context.Context) ([]models.StockLevel, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT sku, quantity FROM stock_levels WHERE quantity <= 0 ORDER BY sku ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list out of stock: %w", err)
	}

	defer rows.Close()

	return collectLevels(rows)
}

// DecrementStock never drops a level below zero. An oversell clamps at zero
// and surfaces on the dashboard as out of stock.
func (r *stockRepository) DecrementStock(ctx context.Context, sku string, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE stock_levels
		SET quantity = GREATEST(quantity - $1, 0), updated_at = NOW()
		WHERE sku = $2
	`

	if _, err := r.DB.ExecContext(dbCtx, query, quantity, sku); err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	return nil
}

func collectLevels(rows *sql.Rows) ([]models.StockLevel, error) {

	var levels []models.StockLevel

	for rows.Next() {
		var level models.StockLevel
		if err := rows.Scan(&level.SKU, &level.Quantity); err != nil {
			return nil, fmt.Errorf("scanning stock row: %w", err)
		}

		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock rows: %w", err)
	}

	return levels, nil
}
