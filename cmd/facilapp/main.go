package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/api/handlers"
	"github.com/Izioneves/Facilapp-1.2/internal/api/middleware"
	"github.com/Izioneves/Facilapp-1.2/internal/cache"
	"github.com/Izioneves/Facilapp-1.2/internal/config"
	"github.com/Izioneves/Facilapp-1.2/internal/health"
	"github.com/Izioneves/Facilapp-1.2/internal/metrics"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	service "github.com/Izioneves/Facilapp-1.2/internal/services"
	"github.com/Izioneves/Facilapp-1.2/pkg/cep"
	"github.com/Izioneves/Facilapp-1.2/pkg/sendgrid"
	"github.com/Izioneves/Facilapp-1.2/pkg/stripe"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}

		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	cepClient := cep.NewClient(cfg.Geocoding.ViaCEPBaseURL, cfg.Geocoding.NominatimBaseURL, cfg.Geocoding.UserAgent, cfg.Geocoding.Timeout)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, repos.Store, rateLimitRepo, cepClient, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, repos.Store, redisCache, cfg.Cache)
	productHandler := handlers.NewProductHandler(productService)
	storeService := service.NewStoreService(repos.Store, redisCache, cfg.Cache)
	deliveryService := service.NewDeliveryService(repos.User, repos.Store, cepClient, redisCache, &cfg.Cache)
	storeHandler := handlers.NewStoreHandler(storeService, deliveryService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(repos.User, repos.Cart, repos.Store, repos.Order, deliveryService, emailService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderService := service.NewOrderService(repos.Order)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentService := service.NewPaymentService(repos.Payment, repos.Order, repos.User, stripeClient, cfg.Stripe.Currency)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.2.0"))

	supplierOnly := func(next http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleSupplier, next))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/users/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))

	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", supplierOnly(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", supplierOnly(productHandler.UpdateProduct()))

	routerMux.HandleFunc("GET /api/v1/stores", storeHandler.ListStores())
	routerMux.HandleFunc("GET /api/v1/stores/{id}", storeHandler.GetStore())
	routerMux.HandleFunc("GET /api/v1/stores/{id}/delivery", authMiddleware.Authenticate(storeHandler.CheckDelivery()))

	routerMux.HandleFunc("GET /api/v1/suppliers/store", supplierOnly(storeHandler.GetMyStore()))
	routerMux.HandleFunc("PUT /api/v1/suppliers/store", supplierOnly(storeHandler.UpdateMyStore()))
	routerMux.HandleFunc("GET /api/v1/suppliers/products", supplierOnly(productHandler.ListMyProducts()))
	routerMux.HandleFunc("GET /api/v1/suppliers/orders", supplierOnly(orderHandler.ListSupplierOrders()))
	routerMux.HandleFunc("PATCH /api/v1/suppliers/orders/{id}/status", supplierOnly(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("GET /api/v1/suppliers/statement", supplierOnly(orderHandler.SupplierStatement()))

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))

	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/payment", authMiddleware.Authenticate(paymentHandler.CreatePayment()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.StripeWebhook())

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

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
