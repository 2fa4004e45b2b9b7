// @title           Post Content API
// @version         1.0
// @description     Post CRUD with image attachments

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"post-content-api/internal/client"
	"post-content-api/internal/config"
	"post-content-api/internal/database"
	"post-content-api/internal/job"
	"post-content-api/internal/metrics"
	"post-content-api/internal/repository"
	"post-content-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Post Content API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database
	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	// Initialize metrics
	m := metrics.New()
	logger.Info("Metrics initialized")

	// Initialize blob client
	var blob client.BlobClient
	if cfg.Blob.Bucket != "" && cfg.Blob.Region != "" {
		s3Blob, err := client.NewS3BlobClient(&cfg.Blob)
		if err != nil {
			logger.Fatal("Failed to initialize blob client", zap.Error(err))
		}
		blob = s3Blob
		logger.Info("Blob client initialized",
			zap.String("bucket", cfg.Blob.Bucket),
			zap.String("region", cfg.Blob.Region),
			zap.String("prefix", cfg.Blob.Prefix),
		)
	} else {
		blob = client.NewMockBlobClient()
		logger.Warn("Blob configuration incomplete, using in-process mock client")
	}

	// Initialize notifier
	var notifier client.Notifier
	if cfg.Notifier.BaseURL != "" {
		notifier = client.NewNotifier(cfg.Notifier.BaseURL, cfg.Notifier.APIKey, cfg.Notifier.Timeout, logger, m)
		logger.Info("Notifier initialized", zap.String("base_url", cfg.Notifier.BaseURL))
	} else {
		notifier = client.NewNoOpNotifier()
		logger.Warn("Notifier not configured, events will be dropped")
	}

	// Start orphan cleanup schedule
	var scheduler *cron.Cron
	if cfg.Cleanup.Schedule != "" {
		attachmentRepo := repository.NewAttachmentRepository(db)
		cleanup := job.NewCleanupJob(attachmentRepo, blob, logger)

		scheduler = cron.New()
		if _, err := scheduler.AddJob(cfg.Cleanup.Schedule, cleanup); err != nil {
			logger.Fatal("Invalid cleanup schedule", zap.Error(err))
		}
		scheduler.Start()
		logger.Info("Cleanup job scheduled", zap.String("schedule", cfg.Cleanup.Schedule))
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:                 db,
		Logger:             logger,
		BasePath:           cfg.Server.BasePath,
		Blob:               blob,
		Notifier:           notifier,
		Metrics:            m,
		ValidationMessages: cfg.Validation.Messages,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Post Content API started successfully",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
