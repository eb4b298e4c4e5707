package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/trongnd106/Banking-system/internal/adapter/http"
	"github.com/trongnd106/Banking-system/internal/adapter/http/handler"
	postgresRepo "github.com/trongnd106/Banking-system/internal/adapter/repository/postgres"
	redisRepo "github.com/trongnd106/Banking-system/internal/adapter/repository/redis"
	"github.com/trongnd106/Banking-system/internal/infrastructure/auth"
	"github.com/trongnd106/Banking-system/internal/infrastructure/config"
	"github.com/trongnd106/Banking-system/internal/infrastructure/logger"
	"github.com/trongnd106/Banking-system/internal/infrastructure/metrics"
	"github.com/trongnd106/Banking-system/internal/infrastructure/postgres"
	"github.com/trongnd106/Banking-system/internal/infrastructure/redis"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, resolveMigrationsPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	logRepo := postgresRepo.NewTransactionLogRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	detailCache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, txnRepo, logRepo, idGen, retrier, appMetrics)
	historyUC := usecase.NewHistoryUseCase(txnRepo, accountRepo, userRepo, logRepo, detailCache, cfg.PerPage, appMetrics)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transferUC, historyUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		Logger:             appLogger,
		RateLimit:          cfg.RateLimit,
		RateBurst:          cfg.RateBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}

	return "migrations"
}
