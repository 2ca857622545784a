package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/internal/utils"

	"github.com/lib/pq"
)

type SubscriberRepository interface {
	CreateSubscriber(ctx context.Context, subscriber *models.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	GetByCode(ctx context.Context, code string) (*models.Subscriber, error)
	MarkCodeUsed(ctx context.Context, code string) error
	CountSubscribers(ctx context.Context) (int, error)
}

type subscriberRepository struct {
	DB *sql.DB
}

func NewSubscriberRepo(db *sql.DB) SubscriberRepository {
	return &subscriberRepository{DB: db}
}

func (r *subscriberRepository) CreateSubscriber(ctx context.Context, subscriber *models.Subscriber) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO subscribers (email, discount_code, code_used, created_at)
		VALUES ($1, $2, FALSE, NOW())
		RETURNING created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, subscriber.Email, subscriber.DiscountCode).
		Scan(&subscriber.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("subscriber already exists: %w", err)
		}

		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	return r.getBy(ctx, "email", email)
}

func (r *subscriberRepository) GetByCode(ctx context.Context, code string) (*models.Subscriber, error) {
	return r.getBy(ctx, "discount_code", code)
}

func (r *subscriberRepository) getBy(ctx context.Context, column, value string) (*models.Subscriber, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(
		`SELECT email, discount_code, code_used, created_at FROM subscribers WHERE %s = $1`,
		column,
	)

	subscriber := &models.Subscriber{}

	err := r.DB.QueryRowContext(dbCtx, query, value).Scan(
		&subscriber.Email, &subscriber.DiscountCode,
		&subscriber.CodeUsed, &subscriber.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return subscriber, nil
}

func (r *subscriberRepository) MarkCodeUsed(ctx context.Context, code string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE subscribers SET code_used = TRUE WHERE discount_code = $1`

	if _, err := r.DB.ExecContext(dbCtx, query, code); err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}

	return nil
}

func (r *subscriberRepository) CountSubscribers(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM subscribers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	return count, nil
}
