package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "sitebid.com/sitebid/internal/configs"
	httpapi "sitebid.com/sitebid/internal/http"
	"sitebid.com/sitebid/internal/notify"
	repository "sitebid.com/sitebid/internal/repositories"
	"sitebid.com/sitebid/internal/services"
	"sitebid.com/sitebid/internal/workload"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the marketplace HTTP API",
	Long:  "Starts the job marketplace API: job/bid lifecycle, progress updates and notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		jobRepo := repository.NewJobRepository(database)
		updateRepo := repository.NewProgressUpdateRepository(database)
		notificationRepo := repository.NewNotificationRepository(database)
		projects := repository.NewGormProjectRegistry(database)

		var ledger workload.Ledger
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			ledger = workload.NewRedisLedger(redisClient, cfg.WorkloadKeyPrefix)
		} else {
			log.Println("REDIS_HOST not set, keeping workload counters in memory")
			ledger = workload.NewMemoryLedger()
		}

		dispatcher := notify.NewDispatcher(
			notificationRepo,
			cfg.NotifyWorkers,
			cfg.NotifyQueueSize,
			time.Duration(cfg.NotificationTTLDays)*24*time.Hour,
		)

		bidService := services.NewBidService(jobRepo)
		jobService := services.NewJobService(jobRepo, bidService, projects, ledger, dispatcher)
		progressService := services.NewProgressService(
			updateRepo, jobRepo, projects, dispatcher,
			time.Duration(cfg.EditWindowHours)*time.Hour,
			time.Duration(cfg.DeleteWindowMinutes)*time.Minute,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		httpapi.Register(
			e,
			httpapi.NewJobHandler(jobService),
			httpapi.NewProgressHandler(progressService),
			httpapi.NewNotificationHandler(notificationRepo),
			cfg.RateLimit,
		)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
		dispatcher.Shutdown(shutdownCtx)

		log.Println("HTTP server and notification dispatcher shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
