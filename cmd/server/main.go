package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harvesthub/harvesthub/pkg/apiversion"
	"github.com/harvesthub/harvesthub/pkg/cache"
	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/config"
	"github.com/harvesthub/harvesthub/pkg/csrf"
	handlers "github.com/harvesthub/harvesthub/pkg/handlers/http"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	infracache "github.com/harvesthub/harvesthub/pkg/infra/cache"
	"github.com/harvesthub/harvesthub/pkg/infra/database"
	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	infralogger "github.com/harvesthub/harvesthub/pkg/infra/logger"
	"github.com/harvesthub/harvesthub/pkg/infra/repository"
	"github.com/harvesthub/harvesthub/pkg/middleware"
	"github.com/harvesthub/harvesthub/pkg/ratelimit"
	"github.com/harvesthub/harvesthub/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := infralogger.NewLogger(cfg.Server.Env)

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := infracache.NewClient(infracache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	defer redisClient.Close()

	tieredCache := cache.NewTieredCache(logger, infracache.NewTTLMap(common.ProductCacheTTL), redisClient)

	policies, err := ratelimit.ParsePolicies(cfg.RateLimits)
	if err != nil {
		logger.Fatalf("invalid rate limit configuration: %v", err)
	}
	limiter := ratelimit.NewLimiter(logger, tieredCache)

	guard := csrf.NewGuard(cfg.Security.CsrfSecret, cfg.Security.CsrfTokenTTL)
	writer := response.NewWriter(logger, cfg.IsProduction())
	versionRouter := apiversion.NewRouter(logger, writer)

	// repositories
	store := softdelete.NewStore(logger, db.DB)
	productRepository := repository.NewProductRepository(store, tieredCache)
	farmerRepository := repository.NewFarmerRepository(store, tieredCache)
	userRepository := repository.NewUserRepository(store)
	orderRepository := repository.NewOrderRepository(store, db.DB)
	subscriptionRepository := repository.NewSubscriptionRepository(store)

	base := handlers.NewBaseHandler(logger, writer)
	retention := time.Duration(cfg.Retention.TrashDays) * 24 * time.Hour

	middlewareTransport := middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(logger),
		FingerprintMiddleware:  middleware.NewFingerprintMiddleware(logger),
		RateLimitMiddleware:    middleware.NewRateLimitMiddleware(logger, limiter, writer, policies),
		SessionMiddleware:      middleware.NewSessionMiddleware(logger, writer, cfg.Security.JWTSecret),
		CsrfMiddleware:         middleware.NewCsrfMiddleware(logger, writer, guard),
	}

	handlerTransport := handlers.HandlerTransport{
		// Operational
		HealthHandler:     handlers.NewHealthHandler(base, db, tieredCache),
		GetVersionHandler: handlers.NewGetVersionHandler(base),
		CsrfTokenHandler:  handlers.NewCsrfTokenHandler(base, guard),
		PurgeTrashHandler: handlers.NewPurgeTrashHandler(base, store, retention),
		// Product
		CreateProductHandler:       handlers.NewCreateProductHandler(base, productRepository, farmerRepository),
		ListProductsHandler:        handlers.NewListProductsHandler(base, productRepository, versionRouter),
		GetProductHandler:          handlers.NewGetProductHandler(base, productRepository),
		UpdateProductHandler:       handlers.NewUpdateProductHandler(base, productRepository, farmerRepository),
		DeleteProductHandler:       handlers.NewDeleteProductHandler(base, productRepository, farmerRepository),
		RestoreProductHandler:      handlers.NewRestoreProductHandler(base, productRepository, farmerRepository),
		ListTrashedProductsHandler: handlers.NewListTrashedProductsHandler(base, productRepository, farmerRepository),
		HardDeleteProductHandler:   handlers.NewHardDeleteProductHandler(base, productRepository),
		// Farmer
		CreateFarmerHandler: handlers.NewCreateFarmerHandler(base, farmerRepository),
		ListFarmersHandler:  handlers.NewListFarmersHandler(base, farmerRepository),
		GetFarmerHandler:    handlers.NewGetFarmerHandler(base, farmerRepository),
		UpdateFarmerHandler: handlers.NewUpdateFarmerHandler(base, farmerRepository),
		DeleteFarmerHandler: handlers.NewDeleteFarmerHandler(base, farmerRepository),
		// Order
		CreateOrderHandler: handlers.NewCreateOrderHandler(base, orderRepository, productRepository),
		ListOrdersHandler:  handlers.NewListOrdersHandler(base, orderRepository),
		GetOrderHandler:    handlers.NewGetOrderHandler(base, orderRepository),
		CancelOrderHandler: handlers.NewCancelOrderHandler(base, orderRepository, productRepository),
		// Subscription
		CreateSubscriptionHandler: handlers.NewCreateSubscriptionHandler(base, subscriptionRepository, farmerRepository),
		ListSubscriptionsHandler:  handlers.NewListSubscriptionsHandler(base, subscriptionRepository),
		CancelSubscriptionHandler: handlers.NewCancelSubscriptionHandler(base, subscriptionRepository),
		// User
		GetMeHandler:    handlers.NewGetMeHandler(base, userRepository),
		UpdateMeHandler: handlers.NewUpdateMeHandler(base, userRepository),
		DeleteMeHandler: handlers.NewDeleteMeHandler(base, userRepository),
	}

	srv := server.NewApiServer(server.ApiServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		VersionRouter:       versionRouter,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}
