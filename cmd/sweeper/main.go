package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/matos-01/gestaoDocumentos/internal/config"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/service"
)

// The sweeper runs the periodic notification passes from cron. Each
// subcommand performs one pass and exits.
func main() {
	root := &cobra.Command{
		Use:   "sweeper",
		Short: "Periodic document sweeps",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "expiration",
			Short: "Expire overdue documents and email expiring-soon digests",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSweep(cmd.Context(), func(ctx context.Context, svc *service.Services) (*service.SweepResult, error) {
					return svc.Sweep.RunExpiration(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "approval",
			Short: "Email digests of documents waiting for approval",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSweep(cmd.Context(), func(ctx context.Context, svc *service.Services) (*service.SweepResult, error) {
					return svc.Sweep.RunApprovalWaiting(ctx)
				})
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSweep(ctx context.Context, pass func(context.Context, *service.Services) (*service.SweepResult, error)) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, logger)

	result, err := pass(ctx, services)
	if err != nil {
		return err
	}

	logger.Info("Sweep done",
		zap.Int("expired", result.Expired),
		zap.Int("notified", result.Notified),
		zap.Int("emails_sent", result.EmailsSent),
	)
	return nil
}
