package app

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/isk-lottery/internal/api"
	"github.com/vietanh2810/isk-lottery/internal/config"
	"github.com/vietanh2810/isk-lottery/internal/db"
	"github.com/vietanh2810/isk-lottery/internal/lock"
	"github.com/vietanh2810/isk-lottery/internal/logger"
	"github.com/vietanh2810/isk-lottery/internal/notify"
	"github.com/vietanh2810/isk-lottery/internal/repository"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
	"github.com/vietanh2810/isk-lottery/internal/repository/memstore"
	"github.com/vietanh2810/isk-lottery/internal/scheduler"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

const redisKeyPrefix = "isk-lottery:"

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	storage, err := openStorage(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}

	locker, err := openLocker(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize locker -> %w", err)
	}

	notifier, webhook := buildNotifier(conf.Notify)
	if webhook != nil {
		defer webhook.Wait()
	}

	var picker *service.WinnerPicker
	if conf.Lottery.DrawSeed != 0 {
		picker = service.NewWinnerPicker(conf.Lottery.DrawSeed)
	} else {
		picker = service.NewSecureWinnerPicker()
	}

	sched := scheduler.New()
	defer sched.Stop()

	issuance := service.NewIssuanceService(storage.store, storage.ledger, storage.identity, notifier, conf.Lottery.ScanWorkers)
	references := service.NewReferenceGenerator(storage.store, conf.Lottery.ReferenceAttempts)
	lotteries := service.NewLotteryService(storage.store, references, notifier, conf.Lottery.ReferenceAttempts)
	rewards := service.NewRewardService(storage.store)
	recurring := service.NewRecurringService(storage.store, lotteries, sched)
	lifecycle := service.NewLifecycleService(storage.store, storage.ledger, issuance, locker, picker, rewards, notifier,
		service.LifecycleConfig{
			LockKey:          conf.Lottery.LockKey,
			LockTTL:          conf.Lottery.LockTTL,
			SyncPollInterval: conf.Lottery.SyncPollInterval,
			SyncTimeout:      conf.Lottery.SyncTimeout,
			ScanTimeout:      conf.Lottery.ScanTimeout,
			FinalizeRetries:  conf.Lottery.FinalizeRetries,
			FinalizeBackoff:  conf.Lottery.FinalizeBackoff,
		})

	sched.Every("scan", conf.Lottery.ScanInterval, func(ctx context.Context) {
		result, err := issuance.ScanPendingPayments(ctx)
		if err != nil {
			zap.L().Error("scheduled scan failed", zap.Error(err))
			return
		}
		if result.Fetched > 0 {
			zap.L().Info("scheduled scan finished",
				zap.Int("fetched", result.Fetched),
				zap.Int("processed", result.Processed),
				zap.Int("failed", result.Failed),
			)
		}
	})
	sched.Every("sweep", conf.Lottery.SweepInterval, func(ctx context.Context) {
		if _, err := lifecycle.SweepExpiredLotteries(ctx); err != nil {
			zap.L().Error("scheduled sweep failed", zap.Error(err))
		}
	})

	if err = recurring.RestoreSchedules(context.Background()); err != nil {
		return fmt.Errorf("failed to restore recurring schedules -> %w", err)
	}
	sched.Start()

	conf.Watch(func(event fsnotify.Event, reloaded *config.AppConfig) {
		zap.L().Info("configuration file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
		if webhook != nil {
			webhook.SetRate(reloaded.Notify.RatePerSecond, reloaded.Notify.Burst)
		}
	})

	s := api.NewServer(conf, api.Services{
		Auth:      service.NewAuthService(conf.API.OperatorUsername, conf.API.OperatorPasswordHash),
		Lotteries: lotteries,
		Templates: recurring,
		Rewards:   rewards,
		Scanner:   issuance,
		Sweeper:   lifecycle,
	})

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

type storage struct {
	store    repository.Store
	ledger   service.LedgerSource
	identity service.IdentityResolver
}

// openStorage prefers DATABASE_URL, then the postgres section. The memory
// driver starts with an empty wallet journal and directory.
func openStorage(conf *config.AppConfig) (storage, error) {
	if conf.Storage.Driver == config.StorageDriverMemory {
		zap.L().Warn("using in-memory storage, data is lost on restart")
		store := memstore.New()

		return storage{
			store:    store,
			ledger:   memstore.NewLedger(store),
			identity: memstore.NewDirectory(),
		}, nil
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	var err error
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return storage{}, err
	}

	return storage{
		store:    repository.NewGormStore(postgresDB),
		ledger:   repository.NewLedgerRepository(dao.NewLedgerDAO(postgresDB)),
		identity: repository.NewDirectoryRepository(dao.NewDirectoryDAO(postgresDB)),
	}, nil
}

// openLocker prefers REDIS_URL, then the redis section. Without either the
// sweep lease is only exclusive within this process.
func openLocker(conf *config.AppConfig) (service.Locker, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		client, err := db.OpenRedisWithURL(url)
		if err != nil {
			return nil, err
		}

		return lock.NewRedisLocker(client, redisKeyPrefix), nil
	}

	if conf.Redis.Addr != "" {
		client, err := db.OpenRedis(conf.Redis)
		if err != nil {
			return nil, err
		}

		return lock.NewRedisLocker(client, redisKeyPrefix), nil
	}

	zap.L().Warn("redis not configured, sweep lock is process-local")

	return lock.NewMemoryLocker(), nil
}

func buildNotifier(conf *config.NotifyConfig) (service.Notifier, *notify.WebhookSink) {
	if conf.WebhookURL == "" {
		return notify.LogSink{}, nil
	}

	webhook := notify.NewWebhookSink(conf.WebhookURL, conf.RatePerSecond, conf.Burst, conf.Timeout)

	return notify.Fanout{notify.LogSink{}, webhook}, webhook
}
