package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=lottery",
		"POSTGRES_PASSWORD=lottery",
		"POSTGRES_DB=lottery",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf(
		"host=localhost port=%s user=lottery password=lottery dbname=lottery sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
		if openErr != nil {
			return openErr
		}
		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)
	require.NoError(t, dao.ResetTables(db))

	return db
}

func testLottery(reference string, end time.Time) domain.Lottery {
	return domain.Lottery{
		Reference:           reference,
		TicketPrice:         decimal.NewFromInt(1_000_000),
		StartDate:           end.Add(-24 * time.Hour),
		EndDate:             end,
		Status:              domain.LotteryStatusActive,
		WinnerCount:         2,
		WinnersDistribution: []decimal.Decimal{decimal.NewFromInt(70), decimal.NewFromInt(30)},
		PaymentReceiverID:   98000001,
	}
}

func TestGormStore(t *testing.T) {
	db := startPostgres(t)
	store := NewGormStore(db)
	ctx := context.Background()
	end := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

	lottery, err := store.CreateLottery(ctx, testLottery("LOTTERY-1000000001", end))
	require.NoError(t, err)
	require.NotZero(t, lottery.ID)

	t.Run("lottery round trip", func(t *testing.T) {
		loaded, err := store.GetLottery(ctx, lottery.ID)
		require.NoError(t, err)
		assert.Equal(t, lottery.Reference, loaded.Reference)
		assert.True(t, loaded.TicketPrice.Equal(decimal.NewFromInt(1_000_000)))
		require.Len(t, loaded.WinnersDistribution, 2)
		assert.True(t, loaded.WinnersDistribution[0].Equal(decimal.NewFromInt(70)))

		_, err = store.GetLottery(ctx, lottery.ID+1000)
		assert.ErrorIs(t, err, ErrLotteryNotFound)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		_, err := store.CreateLottery(ctx, testLottery("LOTTERY-1000000001", end))
		assert.ErrorIs(t, err, ErrLotteryReferenceExists)
	})

	t.Run("processed payments are unique", func(t *testing.T) {
		require.NoError(t, store.MarkProcessed(ctx, domain.ProcessedPayment{
			TransactionID: "9000001",
			Outcome:       domain.OutcomeTicket,
			ProcessedAt:   time.Now(),
		}))

		err := store.MarkProcessed(ctx, domain.ProcessedPayment{
			TransactionID: "9000001",
			Outcome:       domain.OutcomeAnomaly,
			ProcessedAt:   time.Now(),
		})
		assert.ErrorIs(t, err, ErrAlreadyProcessed)

		done, err := store.IsProcessed(ctx, "9000001")
		require.NoError(t, err)
		assert.True(t, done)
	})

	t.Run("template names are unique", func(t *testing.T) {
		template := domain.RecurringTemplate{
			Name:                "weekly",
			Active:              true,
			Frequency:           domain.Cadence{Value: 1, Unit: domain.CadenceWeeks},
			Duration:            domain.Cadence{Value: 6, Unit: domain.CadenceDays},
			TicketPrice:         decimal.NewFromInt(5_000_000),
			WinnerCount:         1,
			WinnersDistribution: []decimal.Decimal{decimal.NewFromInt(100)},
		}
		_, err := store.CreateTemplate(ctx, template)
		require.NoError(t, err)

		_, err = store.CreateTemplate(ctx, template)
		assert.ErrorIs(t, err, ErrTemplateNameExists)
	})

	t.Run("atomic rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Atomic(ctx, func(tx Store) error {
			if _, err := tx.LockLottery(ctx, lottery.ID); err != nil {
				return err
			}
			if err := tx.UpdateLotteryPot(ctx, lottery.ID, decimal.NewFromInt(3_000_000)); err != nil {
				return err
			}
			if err := tx.MarkProcessed(ctx, domain.ProcessedPayment{TransactionID: "9000002", Outcome: domain.OutcomeTicket, ProcessedAt: time.Now()}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		loaded, err := store.GetLottery(ctx, lottery.ID)
		require.NoError(t, err)
		assert.True(t, loaded.TotalPot.IsZero())

		done, err := store.IsProcessed(ctx, "9000002")
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("transition is conditional", func(t *testing.T) {
		moved, err := store.TransitionLottery(ctx, lottery.ID, []domain.LotteryStatus{domain.LotteryStatusPending}, domain.LotteryStatusCompleted, time.Now())
		require.NoError(t, err)
		assert.False(t, moved)

		moved, err = store.TransitionLottery(ctx, lottery.ID, OpenStatuses(), domain.LotteryStatusCancelled, time.Now())
		require.NoError(t, err)
		assert.True(t, moved)

		_, err = store.LockOpenLotteryByReference(ctx, lottery.Reference)
		assert.ErrorIs(t, err, ErrLotteryNotFound)
	})
}
