package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/shop-insights/internal/auth"
	"github.com/rogerio-castellano/shop-insights/internal/config"
	"github.com/rogerio-castellano/shop-insights/internal/dashboard"
	"github.com/rogerio-castellano/shop-insights/internal/db"
	api "github.com/rogerio-castellano/shop-insights/internal/http"
	"github.com/rogerio-castellano/shop-insights/internal/http/handlers"
	rl "github.com/rogerio-castellano/shop-insights/internal/http/rate_limiter"
	"github.com/rogerio-castellano/shop-insights/internal/repo"
	"github.com/rogerio-castellano/shop-insights/internal/seed"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load configuration", zap.Error(err))
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx, database); err != nil {
		logger.Fatal("could not prepare schema", zap.Error(err))
	}

	orderRepo := repo.NewPostgresOrderRepository(database)
	inventoryRepo := repo.NewPostgresInventoryRepository(database)

	if cfg.SeedMockData {
		opts := seed.Options{Shop: cfg.DefaultShop}
		if err := seed.Run(ctx, orderRepo, inventoryRepo, opts, logger); err != nil {
			logger.Error("mock data seeding failed", zap.Error(err))
		}
	}

	var sessionStore auth.SessionStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("could not connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		sessionStore = auth.NewRedisSessionStore(rdb)
	} else {
		logger.Warn("no redis address configured, sessions are in-memory and lost on restart")
		sessionStore = auth.NewInMemorySessionStore()
	}

	signer := auth.NewCookieSigner(cfg.SessionSecret, 24*time.Hour)
	oauthClient := auth.NewOAuthClient(cfg.APIKey, cfg.APISecret, cfg.APIVersion, cfg.RedirectURI, cfg.Scopes)
	svc := dashboard.NewService(orderRepo, inventoryRepo, logger)

	handlers.SetLogger(logger)
	handlers.SetDashboardService(svc)
	handlers.SetSessionStore(sessionStore)
	handlers.SetOAuthClient(oauthClient)
	handlers.SetCookieSigner(signer)
	handlers.SetDefaults(handlers.Defaults{
		SalesWindowDays:   cfg.SalesWindowDays,
		LowStockThreshold: cfg.LowStockThreshold,
		DaysOfCover:       cfg.DaysOfCover,
		LeadTimeDays:      cfg.LeadTimeDays,
		DefaultShop:       cfg.DefaultShop,
	})

	limiter := rl.NewPerIP(1, 3)
	go limiter.StartCleanupLoop()

	api.SetLogger(logger)
	api.SetAuth(signer, sessionStore)
	api.SetRateLimiter(limiter)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      api.NewRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
