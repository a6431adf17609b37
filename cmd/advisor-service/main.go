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

	"golang-stock-advisor/internal/advisor/config"
	delivery "golang-stock-advisor/internal/advisor/delivery/http"
	_ "golang-stock-advisor/internal/advisor/docs"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/postgres"
	"golang-stock-advisor/pkg/redis"
	"golang-stock-advisor/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "advisor-service",
	Short: "Stock advisory chat and price alerting service",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the advisor service",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
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

	appLogger.Info("Starting Advisor Service", logger.StringField("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
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

	// Initialize Redis (optional; cooldowns degrade to process memory)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisCfg := redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
		redisClient, err = redis.NewClient(redisCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
	}

	// Initialize repositories
	stocksRepo := repository.NewStocksRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	preferenceRepo := repository.NewNotificationPreferenceRepository(db.DB)
	usersRepo := repository.NewUsersRepository(db.DB)
	chatMemoryRepo := repository.NewChatMemoryRepository(db.DB)
	embeddingRepo := repository.NewOllamaEmbeddingRepository(cfg, appLogger)
	marketDataRepo := repository.NewMarketDataRepository(cfg, appLogger)

	// Initialize AI provider
	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		repo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
		aiRepo = repo
	case "openai":
		aiRepo = repository.NewOpenAIRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
	}

	// Optional Telegram alert forwarding
	var telegramNotifier telegram.Notifier
	if cfg.Telegram.Enabled {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	chatSvc := service.NewChatService(embeddingRepo, chatMemoryRepo, aiRepo, appLogger, cfg.Chat.ContextLimit)
	alertSvc := service.NewPriceAlertService(db.DB, stocksRepo, notificationRepo, preferenceRepo, redisClient, telegramNotifier, appLogger)
	notificationSvc := service.NewNotificationService(notificationRepo, preferenceRepo, usersRepo, appLogger)
	stockSvc := service.NewStockService(stocksRepo)

	// Start the quote poller
	if cfg.Poller.Enabled {
		poller, err := service.NewQuotePoller(stocksRepo, marketDataRepo, alertSvc, appLogger, cfg.Poller.CronExpression)
		if err != nil {
			appLogger.Fatal("Failed to initialize quote poller", logger.ErrorField(err))
		}
		go poller.Start(ctx)
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")

	chatHandler := delivery.NewChatHandler(chatSvc, appLogger)
	chatHandler.RegisterRoutes(apiV1.Group("/chat"))

	stockHandler := delivery.NewStockHandler(stockSvc, alertSvc, appLogger)
	stockHandler.RegisterRoutes(apiV1.Group("/stocks"))

	notificationHandler := delivery.NewNotificationHandler(notificationSvc, appLogger)
	notificationHandler.RegisterRoutes(apiV1.Group("/notifications"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Advisor API
// @version 1.0
// @description RAG-grounded stock advisory chat and price-change alerting.
// @BasePath /api/v1
