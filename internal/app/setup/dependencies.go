package setup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-settlement-service/internal/config"
	"github.com/LavaJover/shvark-settlement-service/internal/domain"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/cache"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.SettlementConfig
	DB           *gorm.DB
	UnitOfWork   domain.UnitOfWork
	Repositories domain.Repositories
	Idempotency  domain.IdempotencyStore
	Events       domain.EventPublisher
	Rejections   domain.RejectionLog
	Notifier     *notifier.WithdrawalNotifier
	Metrics      *metrics.SettlementMetrics
	Subscriber   domain.SubscriberPort

	closers []io.Closer
}

// InitializeDependencies opens the stores and brokers named by cfg. Optional
// backends (redis, kafka) fall back to in-process versions when unset.
func InitializeDependencies(ctx context.Context, cfg *config.SettlementConfig, reg prometheus.Registerer) (*Dependencies, error) {
	deps := &Dependencies{
		Config:   cfg,
		Notifier: notifier.NewWithdrawalNotifier(cfg.Notifier.WithdrawalCallbackURL, cfg.Notifier.Timeout),
		Metrics:  metrics.NewSettlementMetrics(reg),
	}

	if err := initStorage(deps, cfg); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := initIdempotency(ctx, deps, cfg); err != nil {
		deps.Close()
		return nil, fmt.Errorf("idempotency store: %w", err)
	}
	if err := initEvents(deps, cfg); err != nil {
		deps.Close()
		return nil, fmt.Errorf("event publisher: %w", err)
	}
	return deps, nil
}

func initStorage(deps *Dependencies, cfg *config.SettlementConfig) error {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.InitDB(cfg.SettlementDB)
		if err != nil {
			return err
		}
		deps.DB = db
		deps.UnitOfWork = repository.NewDefaultUnitOfWork(db)
		deps.Repositories = repository.NewRepositories(db)
		deps.Rejections = logger.NewPGRejectionLogger(db)
	case "memory":
		store := memory.NewStore()
		deps.UnitOfWork = store
		deps.Repositories = store.Repositories()
		deps.Rejections = logger.NewSlogRejectionLogger(slog.Default())
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	return nil
}

func initIdempotency(ctx context.Context, deps *Dependencies, cfg *config.SettlementConfig) error {
	if cfg.Redis.URL == "" {
		deps.Idempotency = memory.NewIdempotencyStore()
		return nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := cache.Connect(connectCtx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	deps.closers = append(deps.closers, client)
	deps.Idempotency = cache.NewRedisIdempotencyStore(client)
	return nil
}

func initEvents(deps *Dependencies, cfg *config.SettlementConfig) error {
	if cfg.KafkaService.Host == "" {
		slog.Warn("kafka is not configured, settlement events stay in process")
		deps.Events = memory.NewEventRecorder()
		return nil
	}
	kafkaConfig := kafka.KafkaConfig{
		Brokers:    []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)},
		Username:   cfg.KafkaService.Username,
		Password:   cfg.KafkaService.Password,
		Mechanism:  cfg.KafkaService.Mechanism,
		TLSEnabled: cfg.KafkaService.TLSEnabled,
	}
	pub, err := kafka.NewDefaultKafkaPublisher(kafkaConfig)
	if err != nil {
		return err
	}
	deps.closers = append(deps.closers, pub)
	deps.Events = kafka.NewSettlementEventPublisher(pub, cfg.KafkaService.EventsTopic)
	deps.Subscriber = kafka.NewDefaultKafkaSubscriber(kafkaConfig)
	return nil
}

// Ready reports whether the backing database answers.
func (d *Dependencies) Ready(ctx context.Context) error {
	if d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Dependencies) Close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			slog.Error("failed to close dependency", "error", err)
		}
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
