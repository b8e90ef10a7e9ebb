package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/grschool/sms_backend/internal/core/services"
	"github.com/grschool/sms_backend/internal/middleware"
	"github.com/grschool/sms_backend/internal/platform/cache"
	"github.com/grschool/sms_backend/internal/platform/config"
	"github.com/grschool/sms_backend/internal/platform/push"
	"github.com/grschool/sms_backend/internal/repositories/database/pgsql"
	"github.com/grschool/sms_backend/pkg/database"
	"github.com/robfig/cron/v3"
)

// The scheduler runs the recurring jobs that the API server should not carry:
// currently the daily overdue-fees reminder sweep.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	var statements cache.Cache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("Failed to connect to Redis", slog.String("error", err.Error()))
		} else {
			defer redisClient.Close()
			statements = cache.NewRedisCache(redisClient)
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, statements, push.NewLogSender())

	c := cron.New()

	// Daily at 07:00 server time, before the school day starts.
	_, err = c.AddFunc("0 7 * * *", func() {
		jobLogger := logger.With(slog.String("job", "overdue_fees_reminder"))
		ctx := middleware.WithLogger(context.Background(), jobLogger)

		sent, err := serviceContainer.Fees.RemindOverdueAccounts(ctx)
		if err != nil {
			jobLogger.Error("Overdue fees sweep failed", slog.String("error", err.Error()))
			return
		}
		jobLogger.Info("Overdue fees sweep completed", slog.Int("reminders_sent", sent))
	})
	if err != nil {
		logger.Error("Failed to schedule overdue fees sweep", slog.String("error", err.Error()))
		os.Exit(1)
	}

	c.Start()
	logger.Info("Scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Scheduler stopping")
	<-c.Stop().Done()
}
