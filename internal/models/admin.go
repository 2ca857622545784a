package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type StockLevel struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type DashboardOverview struct {
	TotalOrders       int     `json:"total_orders"`
	Revenue           float64 `json:"revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	PendingOrders     int     `json:"pending_orders"`
}

type DashboardInventory struct {
	TotalProducts int          `json:"total_products"`
	LowStock      []StockLevel `json:"low_stock"`
	OutOfStock    []StockLevel `json:"out_of_stock"`
}

type DashboardSummary struct {
	Overview     DashboardOverview  `json:"overview"`
	RecentOrders []Order            `json:"recent_orders"`
	Inventory    DashboardInventory `json:"inventory"`
	Subscribers  int                `json:"subscribers"`
	LastUpdated  time.Time          `json:"last_updated"`
}
