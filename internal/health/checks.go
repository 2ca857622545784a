package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/retrogameshop/storefront-platform/internal/config"
	"github.com/retrogameshop/storefront-platform/pkg/payment"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"
)

type Endpoints struct {
	DB              *sql.DB
	RedisClient     *redis.Client
	PaymentProvider payment.Provider
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "storefront-platform",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: true,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "payment-provider",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check: func(ctx context.Context) error {
					if endpoints.PaymentProvider == nil {
						return fmt.Errorf("payment provider is not initialized")
					}

					// A lookup for a nonexistent order exercises auth and
					// connectivity without touching real payments.
					_, err := endpoints.PaymentProvider.GetPaymentStatus(ctx, "healthcheck")
					if err != nil && err != payment.ErrPaymentNotFound {
						return fmt.Errorf("failed to reach payment provider: %w", err)
					}

					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
