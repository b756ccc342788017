// cmd/creditpath-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"creditpath/internal/common/config"
	"creditpath/internal/common/database"
	"creditpath/internal/common/logger"
	"creditpath/internal/common/observability"
	"creditpath/internal/dispute"
	"creditpath/internal/mail"
	"creditpath/internal/models"
	"creditpath/internal/notify"
	"creditpath/internal/service"
	"creditpath/internal/storage"
	"creditpath/internal/web"
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

// overdueSource joins the history store's user listing with the tracker's
// overdue view for the reminder sweep.
type overdueSource struct {
	history *storage.DisputeHistoryStore
	tracker *dispute.Tracker
}

func (o *overdueSource) Users(ctx context.Context) ([]string, error) {
	return o.history.ListUsers(ctx)
}

func (o *overdueSource) Overdue(ctx context.Context, userID string) ([]models.DisputeRecord, error) {
	return o.tracker.Overdue(ctx, userID)
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

	zapLog.Info("Starting creditpath server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
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

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Stores ---
	profiles := storage.NewProfileStore(rdb.Client, log)
	addresses := storage.NewCreditorAddressCache(rdb.Client, log)
	history := storage.NewDisputeHistoryStore(pg.DB, log)
	tracker := dispute.NewTracker(history, log)

	// --- Mail carrier ---
	carrier := mail.NewCarrierClient(
		cfg.Mail.BaseURL,
		cfg.Mail.APIKey,
		time.Duration(cfg.Mail.TimeoutSeconds)*time.Second,
	)
	gateway := mail.NewGateway(carrier, log)
	if carrier.TestMode() {
		zapLog.Info("Mail carrier is in test mode; no physical mail will be sent")
	}

	svc := service.New(profiles, addresses, tracker, gateway, log)

	// --- Reminder sweep ---
	var scheduler *cron.Cron
	if cfg.Reminders.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Notifications.AWSRegion))
		if err != nil {
			zapLog.Fatal("load AWS config failed", zap.Error(err))
		}

		reminder := notify.NewReminder(
			cfg.Notifications,
			ses.NewFromConfig(awsCfg),
			sns.NewFromConfig(awsCfg),
			profiles,
			&overdueSource{history: history, tracker: tracker},
			log,
		)

		scheduler = cron.New()
		_, err = scheduler.AddFunc(cfg.Reminders.Schedule, func() {
			sweepCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			reminded, err := reminder.Sweep(sweepCtx)
			if err != nil {
				zapLog.Error("reminder sweep failed", zap.Error(err))
				return
			}
			zapLog.Info("reminder sweep completed", zap.Int("usersReminded", reminded))
		})
		if err != nil {
			zapLog.Fatal("reminder schedule invalid", zap.Error(err), zap.String("schedule", cfg.Reminders.Schedule))
		}
		scheduler.Start()
		zapLog.Info("Reminder sweep scheduled", zap.String("schedule", cfg.Reminders.Schedule))
	}

	// --- HTTP server ---
	router := web.NewRouter(web.NewHandler(svc, log), log)
	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("Shutdown signal received")

	if scheduler != nil {
		cronCtx := scheduler.Stop()
		<-cronCtx.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}

	zapLog.Info("Server stopped")
}
