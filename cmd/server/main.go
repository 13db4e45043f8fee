package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/boutikla/backend/internal/application/catalog"
	currencyapp "github.com/boutikla/backend/internal/application/currency"
	financeapp "github.com/boutikla/backend/internal/application/finance"
	identityapp "github.com/boutikla/backend/internal/application/identity"
	partnerapp "github.com/boutikla/backend/internal/application/partner"
	reportapp "github.com/boutikla/backend/internal/application/report"
	tradeapp "github.com/boutikla/backend/internal/application/trade"
	"github.com/boutikla/backend/internal/infrastructure/auth"
	"github.com/boutikla/backend/internal/infrastructure/cache"
	"github.com/boutikla/backend/internal/infrastructure/config"
	"github.com/boutikla/backend/internal/infrastructure/event"
	"github.com/boutikla/backend/internal/infrastructure/logger"
	"github.com/boutikla/backend/internal/infrastructure/persistence"
	"github.com/boutikla/backend/internal/interfaces/http/handler"
	"github.com/boutikla/backend/internal/interfaces/http/middleware"
	"github.com/boutikla/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting boutikla backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Exchange rate cache: redis when configured, in-process otherwise
	var rateCache cache.RateCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		rateCache = cache.NewRedisRateCache(redisClient, log)
		log.Info("Redis rate cache enabled")
	} else {
		rateCache = cache.NewInMemoryRateCache()
	}
	defer func() {
		if err := rateCache.Close(); err != nil {
			log.Error("Error closing rate cache", zap.Error(err))
		}
	}()

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	refundRepo := persistence.NewGormRefundRepository(db.DB)
	refundPaymentRepo := persistence.NewGormRefundPaymentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	txManager := persistence.NewTxManager(db)

	// Event bus and stock movement handler. Trade documents move stock
	// through domain events dispatched synchronously inside the request.
	eventBus := event.NewInMemoryEventBus(log)
	stockHandler := tradeapp.NewStockMovementHandler(productRepo, log)
	eventBus.Subscribe(stockHandler)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	log.Info("Stock movement handler registered",
		zap.Strings("event_types", stockHandler.EventTypes()),
	)

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	clientService := partnerapp.NewClientService(clientRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	userService := identityapp.NewUserService(userRepo, roleRepo)
	roleService := identityapp.NewRoleService(roleRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	currencyService := currencyapp.NewCurrencyService(currencyRepo)
	rateService := currencyapp.NewExchangeRateService(
		rateRepo,
		rateCache,
		cfg.Currency.RateCacheTTL,
		decimal.NewFromFloat(cfg.Currency.DefaultExchangeRate),
		log,
	)

	orderService := tradeapp.NewPurchaseOrderService(orderRepo, supplierRepo, productRepo, txManager, eventBus, log)
	saleService := tradeapp.NewSaleService(saleRepo, clientRepo, productRepo, paymentRepo, rateService, txManager, eventBus, log)
	returnService := tradeapp.NewReturnService(returnRepo, saleRepo, refundRepo, refundPaymentRepo, txManager, eventBus, log)

	paymentService := financeapp.NewPaymentService(paymentRepo, saleRepo, txManager, log)
	refundService := financeapp.NewRefundService(refundRepo, refundPaymentRepo)
	refundPaymentService := financeapp.NewRefundPaymentService(refundPaymentRepo, refundRepo, log)

	reportService := reportapp.NewReportService(reportRepo, saleRepo, paymentRepo, clientRepo)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.JWTAuth(jwtService, log))

	healthHandler := handler.NewHealthHandler(db.DB, cfg.App.Name, version)
	engine.GET("/health", healthHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(healthHandler).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewSupplierHandler(supplierService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewRoleHandler(roleService)).
		Register(handler.NewCurrencyHandler(currencyService, rateService)).
		Register(handler.NewPurchaseOrderHandler(orderService)).
		Register(handler.NewSaleHandler(saleService, reportService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewReturnHandler(returnService)).
		Register(handler.NewRefundHandler(refundService, refundPaymentService)).
		Register(handler.NewReportHandler(reportService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
