package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowslots/config"
	"glowslots/database"
	"glowslots/database/repository"
	"glowslots/handlers"
	"glowslots/middleware"
	"glowslots/routes"
	"glowslots/services/booking"
	"glowslots/services/travel"
	"glowslots/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	loc, err := cfg.Location()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid BUSINESS_TIMEZONE: %v", err)
	}

	if err := database.InitDB(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	db := database.DB()

	// repositories.
	staffRepo := repository.NewMongoStaffRepo(db, logger.Named("staff"))
	vendorRepo := repository.NewMongoVendorRepo(db, cfg.DefaultTravelSpeedKmh)
	commitmentRepo := repository.NewMongoCommitmentRepo(db)
	catalogRepo := repository.NewMongoCatalogRepo(db)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 10*time.Second)
	if err := staffRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("main: staff indexes", zap.Error(err))
	}
	if err := commitmentRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("main: commitment indexes", zap.Error(err))
	}
	cancelIndexes()

	// metrics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	travelMetrics := travel.NewMetrics(registry)

	// travel estimation.
	var store travel.Store
	var redisClient *redis.Client
	if cfg.TravelCacheBackend == "redis" {
		redisClient = utils.GetCacheClient()
	}
	if redisClient != nil {
		store = travel.NewRedisStore(redisClient)
	} else {
		logger.Info("main: using in-process travel cache")
		store = travel.NewMemoryStore()
	}

	var routing travel.RoutingProvider
	if cfg.GoogleAPIKey != "" {
		routing = travel.NewGoogleRoutingClient(cfg.GoogleAPIKey, cfg.RoutingAPIURL, cfg.RoutingTimeout(), cfg.RoutingRequestsPerSecond)
	} else {
		logger.Info("main: GOOGLE_API_KEY not set, travel falls back to haversine")
	}

	estimator := travel.NewEstimator(travel.Options{
		Store:             store,
		Provider:          routing,
		RoutingTimeout:    cfg.RoutingTimeout(),
		CacheTTL:          cfg.TravelCacheTTL(),
		DefaultSpeedKmh:   cfg.DefaultTravelSpeedKmh,
		DefaultRadiusKm:   cfg.DefaultTravelRadiusKm,
		TrafficMultiplier: cfg.TravelTrafficMultiplier,
		BatchConcurrency:  cfg.BatchTravelConcurrency,
		Logger:            logger.Named("travel"),
		Metrics:           travelMetrics,
	})

	engine := booking.NewEngine(booking.Dependencies{
		Staff:       staffRepo,
		Vendors:     vendorRepo,
		Commitments: commitmentRepo,
		Packages:    catalogRepo,
		Travel:      estimator,
		Logger:      logger.Named("slots"),
	}, booking.Config{
		Location:                    loc,
		TravelFallbackMinutes:       cfg.TravelFallbackMinutes,
		CommitmentHomeTravelMinutes: cfg.CommitmentHomeTravelMinutes,
		DefaultStepMinutes:          cfg.DefaultStepMinutes,
		MaxAdvanceBookingDays:       cfg.MaxAdvanceBookingDays,
	})

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiterStore(cfg.MaxRequestsPerMin)))

	handlerBundle := handlers.NewHandlerBundle(handlers.NewSlotHandler(engine, catalogRepo))
	routes.RegisterRoutes(router, handlerBundle, registry)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	utils.StartHealthMonitor(monitorCtx, redisClient, database.MongoClient)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
