package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-resultstore/internal/results/config"
	"golang-stock-resultstore/internal/results/delivery/consumer"
	delivery "golang-stock-resultstore/internal/results/delivery/http"
	"golang-stock-resultstore/internal/results/repository"
	"golang-stock-resultstore/internal/results/service"
	"golang-stock-resultstore/pkg/common"
	"golang-stock-resultstore/pkg/logger"
	"golang-stock-resultstore/pkg/postgres"
	"golang-stock-resultstore/pkg/redis"
	"golang-stock-resultstore/pkg/telegram"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the results store service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Results Store Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist
	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamAnalysisResults, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	snapshotRepo := repository.NewStockSnapshotRepository(db.DB)

	// Shared read cache for the ranked stock list
	cacheTTL := cfg.Results.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	listCache := gocache.New(cacheTTL, 2*cacheTTL)

	// Optional write throttle against the managed database
	var limiter *rate.Limiter
	if cfg.Results.WritesPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Results.WritesPerMinute)), 1)
	}

	// Optional Telegram notifier for batch summaries
	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	writerSvc := service.NewWriterService(snapshotRepo, appLogger, listCache, limiter, notifier, redisClient.Client)
	readerSvc := service.NewReaderService(snapshotRepo, appLogger, listCache)
	prunerSvc := service.NewPrunerService(cfg, snapshotRepo, appLogger)

	if cfg.Pruner.Enabled {
		if err := prunerSvc.Start(ctx); err != nil {
			appLogger.Fatal("Failed to start pruner", logger.ErrorField(err))
		}
		defer prunerSvc.Stop()
	}

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, writerSvc, appLogger)
	redisConsumer.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	analysisHandler := delivery.NewAnalysisHandler(writerSvc, appLogger)
	analysisHandler.RegisterRoutes(apiV1.Group("/analysis"))

	stockHandler := delivery.NewStockHandler(readerSvc, appLogger)
	stockHandler.RegisterRoutes(apiV1.Group("/stocks"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down results store service...")
	redisConsumer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Results store service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "results-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-results.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing results-service CLI: %s\n", err)
		os.Exit(1)
	}
}
