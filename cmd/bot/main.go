package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todobot/internal/api"
	"todobot/internal/bot"
	"todobot/internal/config"
	"todobot/internal/conversation"
	"todobot/internal/handler"
	"todobot/internal/middleware"
	"todobot/internal/repository/postgres"
	"todobot/internal/scheduler"
	"todobot/internal/service"
	"todobot/internal/telegram"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting TodoList Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	tgUserRepo := postgres.NewTgUserRepo(db)
	goalRepo := postgres.NewGoalRepo(db)

	// Initialize services
	identityService := service.NewIdentityService(tgUserRepo, logger)
	goalService := service.NewGoalService(goalRepo)

	store := conversation.NewMemoryStore()
	cleanupService := service.NewCleanupService(store, logger)

	// Polling is driven by bot.Runner, so telebot stays offline and only talks to the API
	teleBot, err := tele.NewBot(tele.Settings{
		Token:   cfg.BotToken,
		Offline: true,
		Client:  &http.Client{Timeout: cfg.PollTimeout + 15*time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}
	gateway := telegram.NewBotGateway(teleBot)

	logger.Info("Telegram bot initialized")

	router := handler.NewRouter(goalService, store, logger)
	handle := middleware.RequireVerified(identityService, logger)(router.Handle)
	runner := bot.NewRunner(gateway, handle, cfg.PollTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start flow sweeper
	if cfg.Flow.TTL > 0 {
		sweeper, err := scheduler.StartFlowSweeper(cleanupService, cfg.Flow.TTL, cfg.Flow.SweepInterval, logger)
		if err != nil {
			logger.Fatal("Failed to start flow sweeper", zap.Error(err))
		}
		defer func() {
			if err := sweeper.Shutdown(); err != nil {
				logger.Warn("Failed to stop flow sweeper", zap.Error(err))
			}
		}()
	}

	// Start verification endpoint
	var srv *http.Server
	if cfg.Verify.Addr != "" {
		verifyHandler := api.NewVerifyHandler(identityService, gateway, cfg.Verify.APIToken, logger)
		srv = &http.Server{
			Addr:         cfg.Verify.Addr,
			Handler:      api.NewRouter(verifyHandler),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			logger.Info("Verification endpoint listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Verification endpoint failed", zap.Error(err))
				stop()
			}
		}()
	}

	logger.Info("Bot started successfully")

	// Blocks until a shutdown signal
	if err := runner.Run(ctx); err != nil {
		logger.Error("Polling loop failed", zap.Error(err))
	}

	logger.Info("Shutdown signal received, stopping bot...")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Verification endpoint forced to shutdown", zap.Error(err))
		}
	}

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
