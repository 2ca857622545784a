package repository

import (
	"database/sql"
	"fmt"

	"github.com/retrogameshop/storefront-platform/internal/config"

	_ "github.com/lib/pq"
)

type Repositories struct {
	DB          *sql.DB
	Orders      OrderRepository
	Stock       StockRepository
	Subscribers SubscriberRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:          db,
		Orders:      NewOrderRepo(db),
		Stock:       NewStockRepo(db),
		Subscribers: NewSubscriberRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
