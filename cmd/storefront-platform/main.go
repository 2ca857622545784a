package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/retrogameshop/storefront-platform/internal/api/handlers"
	"github.com/retrogameshop/storefront-platform/internal/api/middleware"
	"github.com/retrogameshop/storefront-platform/internal/cart"
	"github.com/retrogameshop/storefront-platform/internal/catalog"
	"github.com/retrogameshop/storefront-platform/internal/config"
	"github.com/retrogameshop/storefront-platform/internal/discount"
	"github.com/retrogameshop/storefront-platform/internal/health"
	"github.com/retrogameshop/storefront-platform/internal/metrics"
	"github.com/retrogameshop/storefront-platform/internal/reconciler"
	repository "github.com/retrogameshop/storefront-platform/internal/repositories"
	service "github.com/retrogameshop/storefront-platform/internal/services"
	"github.com/retrogameshop/storefront-platform/pkg/payment"
	"github.com/retrogameshop/storefront-platform/pkg/payment/mollie"
	stripeProvider "github.com/retrogameshop/storefront-platform/pkg/payment/stripe"
	"github.com/retrogameshop/storefront-platform/pkg/sendgrid"

	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Product catalog
	cat, err := catalog.Load(cfg.Catalog.ProductsPath)
	if err != nil {
		slog.Error("❌ Error loading the product catalog", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host + ":" + cfg.RedisConnect.Port,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// Carts survive without redis, they just stop surviving restarts.
		slog.Warn("⚠️ Redis unreachable, cart persistence degraded", slog.String("error", err.Error()))
	}

	// Payment provider selection
	var provider payment.Provider

	switch cfg.Payment.Provider {
	case "stripe":
		provider = stripeProvider.NewClient(cfg.Payment.StripeAPIKey)
	default:
		provider = mollie.NewClient(cfg.Payment.MollieAPIKey, cfg.Payment.MollieBaseURL)
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	jwtKey := []byte(cfg.Security.JWTKey)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	discountEngine := discount.NewEngine(repos.Subscribers)
	cartManager := cart.NewManager(cart.NewRedisStore(redisClient, &cfg.Cart), discountEngine)
	cartManager.Subscribe(func(e cart.Event) {
		slog.Debug("Item added to cart", slog.String("sku", e.SKU), slog.String("variant", e.Variant), slog.Int("quantity", e.Quantity))
	})
	recon := reconciler.New(provider, cfg.Reconciler.PollInterval)
	checkoutService := service.NewCheckoutService(repos.Orders, repos.Stock, repos.Subscribers, cartManager, provider, sendGridClient, &cfg.Checkout, &cfg.Payment)
	newsletterService := service.NewNewsletterService(repos.Subscribers, sendGridClient)
	dashboardService := service.NewDashboardService(repos.Orders, repos.Stock, repos.Subscribers, cat, jwtKey, []byte(cfg.Security.AdminPasswordHash))
	productHandler := handlers.NewProductHandler(cat)
	cartHandler := handlers.NewCartHandler(cartManager, cat)
	discountHandler := handlers.NewDiscountHandler(discountEngine)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	statusHandler := handlers.NewStatusHandler(appCtx, recon, cartManager)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	adminHandler := handlers.NewAdminHandler(dashboardService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:              repos.DB,
		RedisClient:     redisClient,
		PaymentProvider: provider,
	})
	if err != nil {
		slog.Error("❌ Error building health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("✅ Storefront initialized", slog.String("env", cfg.Env), slog.Int("products", cat.Len()))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{sku}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/platforms", productHandler.ListPlatforms())
	routerMux.HandleFunc("GET /api/v1/genres", productHandler.ListGenres())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{key}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{key}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/discount", cartHandler.ApplyDiscount())
	routerMux.HandleFunc("DELETE /api/v1/cart/discount", cartHandler.RemoveDiscount())
	routerMux.HandleFunc("POST /api/v1/discount/validate", discountHandler.Validate())
	routerMux.HandleFunc("GET /api/v1/discount", discountHandler.Check())
	routerMux.HandleFunc("POST /api/v1/orders", checkoutHandler.CreateOrder())
	routerMux.HandleFunc("GET /api/v1/orders/status", statusHandler.GetStatus())
	routerMux.HandleFunc("POST /api/v1/payments/webhook", checkoutHandler.Webhook())
	routerMux.HandleFunc("POST /api/v1/newsletter", newsletterHandler.Subscribe())
	routerMux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login())
	routerMux.HandleFunc("GET /api/v1/admin/dashboard", authMiddleware.Authenticate(adminHandler.Dashboard()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", authMiddleware.Authenticate(adminHandler.ListOrders()))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{orderNumber}/status", authMiddleware.Authenticate(adminHandler.UpdateOrderStatus()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done // blocking, until no signal is added to "done" channel, after the some signal is received the code after this point would be executed

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Stop payment watchers before taking the server down
	recon.Stop()
	stopApp()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
