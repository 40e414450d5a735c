// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"formflow/internal/common/aws"
	"formflow/internal/common/config"
	"formflow/internal/common/database"
	"formflow/internal/common/logger"
	"formflow/internal/server"
	"formflow/internal/services/analysis"
	"formflow/internal/services/generation"
	"formflow/internal/services/notification"
	"formflow/internal/services/submission"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting formflow server...",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Form store: Redis when enabled, in-memory otherwise ---
	var formStore generation.FormStore = generation.NewMemoryFormStore()
	if cfg.Database.Redis.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
		formStore = generation.NewRedisFormStore(redis.GetClient())
	} else {
		zapLog.Info("Redis disabled, using in-memory form store")
	}

	// --- Submission repository: PostgreSQL when enabled ---
	var repository submission.Repository = submission.NewMemoryRepository()
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
		repository = submission.NewPostgresRepository(pg)
	} else {
		zapLog.Info("PostgreSQL disabled, using in-memory submission repository")
	}

	// --- Classifier: external backend when enabled, rules otherwise ---
	var backend analysis.Backend
	if cfg.Classifier.Enabled {
		backend = analysis.NewClaudeClient(cfg.Classifier)
		zapLog.Info("Classification backend enabled", zap.String("model", cfg.Classifier.Model))
	} else {
		zapLog.Info("Classification backend disabled, using rule-based classifier")
	}
	rules := analysis.NewRuleClassifier(analysis.NewEntityExtractor())
	classifier := analysis.NewClassifier(backend, rules, cfg.Classifier.FallbackOnError, log)

	// --- Email sender: SES or SMTP per config ---
	var emailSender notification.EmailSender
	if cfg.Notifications.Email.Enabled {
		switch cfg.Notifications.Email.Provider {
		case "ses":
			sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.Email.SES.Region)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
			emailSender = notification.NewSESSender(sesClient, cfg.Notifications.Email.From)
			zapLog.Info("SES email sender initialized", zap.String("region", cfg.Notifications.Email.SES.Region))
		default:
			emailSender = notification.NewSMTPSender(cfg.Notifications.Email)
			zapLog.Info("SMTP email sender initialized", zap.String("host", cfg.Notifications.Email.SMTP.Host))
		}
	}

	// --- SMS sender: SNS when enabled ---
	var smsSender notification.SMSSender
	if cfg.Notifications.SMS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.SMS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		smsSender = snsClient
		zapLog.Info("SNS sms sender initialized", zap.String("region", cfg.Notifications.SMS.Region))
	}

	// --- Service and handler wiring ---
	dispatcher := notification.NewDispatcher(cfg.Notifications, emailSender, smsSender, log)
	var bulkMailer *notification.BulkMailer
	if emailSender != nil {
		bulkMailer = notification.NewBulkMailer(
			emailSender,
			cfg.Notifications.Email.BatchSize,
			cfg.Notifications.Email.DelayBetweenBatchesMs,
			log,
		)
	}

	analysisService := analysis.NewService(classifier, log)
	generationService := generation.NewService(classifier, formStore, log)
	submissionService := submission.NewService(formStore, repository, dispatcher, log)

	handlers := server.Handlers{
		Analysis:     analysis.NewHandler(analysisService, log),
		Generation:   generation.NewHandler(generationService, log),
		Submission:   submission.NewHandler(submissionService, log),
		Notification: notification.NewHandler(dispatcher, emailSender, bulkMailer, log),
	}

	router := server.NewRouter(cfg, handlers, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown error", zap.Error(err))
	}

	zapLog.Info("Server stopped")
}
