package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/metrics"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

type LifecycleConfig struct {
	LockKey          string
	LockTTL          time.Duration
	SyncPollInterval time.Duration
	SyncTimeout      time.Duration
	ScanTimeout      time.Duration
	FinalizeRetries  uint64
	FinalizeBackoff  time.Duration
}

type SweepResult struct {
	Skipped   bool   `json:"skipped"`
	Completed []uint `json:"completed"`
	Failed    []uint `json:"failed"`
}

type WinnerDrawer interface {
	Pick(tickets []domain.Ticket, distribution []decimal.Decimal, pot decimal.Decimal, now time.Time) []domain.Winner
}

// LifecycleService closes expired lotteries: active -> pending -> completed.
type LifecycleService struct {
	store    repository.Store
	ledger   LedgerSource
	scanner  PaymentScanner
	locker   Locker
	drawer   WinnerDrawer
	rewards  *RewardService
	notifier Notifier
	conf     LifecycleConfig
	now      func() time.Time
}

func NewLifecycleService(
	store repository.Store,
	ledger LedgerSource,
	scanner PaymentScanner,
	locker Locker,
	drawer WinnerDrawer,
	rewards *RewardService,
	notifier Notifier,
	conf LifecycleConfig,
) *LifecycleService {
	return &LifecycleService{
		store:    store,
		ledger:   ledger,
		scanner:  scanner,
		locker:   locker,
		drawer:   drawer,
		rewards:  rewards,
		notifier: notifier,
		conf:     conf,
		now:      time.Now,
	}
}

// SweepExpiredLotteries runs at most once at a time across the cluster. When
// another sweep holds the lease the call returns immediately with Skipped set.
func (s *LifecycleService) SweepExpiredLotteries(ctx context.Context) (SweepResult, error) {
	started := time.Now()

	lease, acquired, err := s.locker.TryAcquire(ctx, s.conf.LockKey, s.conf.LockTTL)
	switch {
	case err != nil:
		// Row locks and conditional transitions still keep concurrent sweeps
		// from completing a lottery twice.
		zap.L().Warn("sweep lock unavailable, proceeding without it", zap.Error(err))
		metrics.RecordDegraded("lock")
	case !acquired:
		metrics.RecordSweep("skipped", time.Since(started))
		return SweepResult{Skipped: true}, nil
	default:
		defer func() {
			if err := lease.Release(context.Background()); err != nil {
				zap.L().Warn("failed to release sweep lock", zap.String("key", lease.Key()), zap.Error(err))
			}
		}()
	}

	baseline, err := s.ledger.LastSync(ctx)
	if err != nil {
		zap.L().Warn("failed to read ledger sync marker", zap.Error(err))
	}

	expired, err := s.store.ListExpiredLotteries(ctx, s.now())
	if err != nil {
		metrics.RecordSweep("error", time.Since(started))
		return SweepResult{}, fmt.Errorf("s.store.ListExpiredLotteries -> %w", err)
	}

	result := SweepResult{Completed: []uint{}, Failed: []uint{}}
	synced := false
	for _, lottery := range expired {
		completed, err := s.closeLottery(ctx, lottery, baseline, &synced)
		if err != nil {
			zap.L().Error("failed to close lottery, operator attention required",
				zap.Uint("lottery_id", lottery.ID),
				zap.String("reference", lottery.Reference),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, lottery.ID)
			continue
		}
		if completed {
			result.Completed = append(result.Completed, lottery.ID)
		}
	}

	outcome := "ok"
	if len(result.Failed) > 0 {
		outcome = "partial"
	}
	metrics.RecordSweep(outcome, time.Since(started))

	return result, nil
}

func (s *LifecycleService) closeLottery(ctx context.Context, lottery domain.Lottery, baseline time.Time, synced *bool) (bool, error) {
	if lottery.Status == domain.LotteryStatusActive {
		moved, err := s.store.TransitionLottery(ctx, lottery.ID, []domain.LotteryStatus{domain.LotteryStatusActive}, domain.LotteryStatusPending, s.now())
		if err != nil {
			return false, fmt.Errorf("s.store.TransitionLottery -> %w", err)
		}
		if moved {
			s.notifier.Notify(ctx, domain.Broadcast("Lottery closed",
				fmt.Sprintf("Sales for %s are closed. Winners will be drawn shortly.", lottery.Reference),
				domain.SeverityInfo))
		}

		lottery, err = s.store.GetLottery(ctx, lottery.ID)
		if err != nil {
			return false, fmt.Errorf("s.store.GetLottery -> %w", err)
		}
	}
	if lottery.Status != domain.LotteryStatusPending {
		return false, nil
	}

	if !*synced {
		s.waitForSync(ctx, baseline)
		*synced = true
	}

	watermark, found, err := s.store.LatestReconciledPaymentDate(ctx, lottery.ID)
	if err != nil {
		return false, fmt.Errorf("s.store.LatestReconciledPaymentDate -> %w", err)
	}
	if !found {
		watermark = lottery.EndDate
	}

	late, err := s.ledger.HasPendingEntries(ctx, lottery.Reference, watermark)
	if err != nil {
		zap.L().Warn("failed to check for late payments", zap.Uint("lottery_id", lottery.ID), zap.Error(err))
	}
	if late {
		s.reconcile(ctx, lottery)
	}

	outcome, err := s.finalizeWithRetry(ctx, lottery.ID)
	if err != nil {
		return false, err
	}
	if !outcome.completed {
		return false, nil
	}

	notifyAll(ctx, s.notifier, outcome.notifications())
	metrics.RecordLotteryCompleted()

	return true, nil
}

// waitForSync polls the ingestion marker until it moves past baseline. On
// timeout the sweep carries on with whatever has been ingested.
func (s *LifecycleService) waitForSync(ctx context.Context, baseline time.Time) {
	ctx, cancel := context.WithTimeout(ctx, s.conf.SyncTimeout)
	defer cancel()

	ticker := time.NewTicker(s.conf.SyncPollInterval)
	defer ticker.Stop()

	for {
		last, err := s.ledger.LastSync(ctx)
		if err == nil && last.After(baseline) {
			return
		}

		select {
		case <-ctx.Done():
			zap.L().Warn("ledger sync did not advance, proceeding with available data",
				zap.Time("baseline", baseline),
				zap.Duration("timeout", s.conf.SyncTimeout),
			)
			metrics.RecordDegraded("ledger_sync")
			return
		case <-ticker.C:
		}
	}
}

func (s *LifecycleService) reconcile(ctx context.Context, lottery domain.Lottery) {
	ctx, cancel := context.WithTimeout(ctx, s.conf.ScanTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := s.scanner.ScanPendingPayments(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			zap.L().Warn("late payment scan ended with an error", zap.Uint("lottery_id", lottery.ID), zap.Error(err))
		}
	case <-ctx.Done():
		zap.L().Warn("late payment scan timed out, finalizing with available data", zap.Uint("lottery_id", lottery.ID))
		metrics.RecordDegraded("scan_timeout")
	}
}

type finalizeOutcome struct {
	completed bool
	lottery   domain.Lottery
	winners   []domain.Winner
	tiers     map[uint][]domain.RewardTier
}

func (s *LifecycleService) finalizeWithRetry(ctx context.Context, lotteryID uint) (finalizeOutcome, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.conf.FinalizeBackoff
	policy.MaxElapsedTime = 0

	var outcome finalizeOutcome
	operation := func() error {
		var err error
		outcome, err = s.finalize(ctx, lotteryID)
		return err
	}
	notify := func(err error, wait time.Duration) {
		zap.L().Warn("finalize failed, retrying", zap.Uint("lottery_id", lotteryID), zap.Duration("wait", wait), zap.Error(err))
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(policy, s.conf.FinalizeRetries), ctx), notify)
	if err != nil {
		return finalizeOutcome{}, fmt.Errorf("finalize lottery %d -> %w", lotteryID, err)
	}

	return outcome, nil
}

// finalize recomputes the pot, draws winners and completes the lottery in one
// unit of work. It is a no-op unless the lottery is still pending.
func (s *LifecycleService) finalize(ctx context.Context, lotteryID uint) (finalizeOutcome, error) {
	var outcome finalizeOutcome

	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		outcome = finalizeOutcome{tiers: map[uint][]domain.RewardTier{}}
		now := s.now()

		lottery, err := tx.LockLottery(ctx, lotteryID)
		if err != nil {
			if errors.Is(err, repository.ErrLotteryNotFound) {
				return backoff.Permanent(err)
			}

			return fmt.Errorf("tx.LockLottery -> %w", err)
		}
		if lottery.Status != domain.LotteryStatusPending {
			return nil
		}

		pot, err := tx.SumTicketAmounts(ctx, lottery.ID)
		if err != nil {
			return fmt.Errorf("tx.SumTicketAmounts -> %w", err)
		}
		if err = tx.UpdateLotteryPot(ctx, lottery.ID, pot); err != nil {
			return fmt.Errorf("tx.UpdateLotteryPot -> %w", err)
		}
		lottery.TotalPot = pot

		existing, err := tx.CountWinners(ctx, lottery.ID)
		if err != nil {
			return fmt.Errorf("tx.CountWinners -> %w", err)
		}

		switch {
		case !pot.IsPositive():
			zap.L().Info("lottery closed with an empty pot, no winners drawn", zap.Uint("lottery_id", lottery.ID))
		case existing == 0:
			tickets, err := tx.ListTickets(ctx, lottery.ID)
			if err != nil {
				return fmt.Errorf("tx.ListTickets -> %w", err)
			}

			for _, winner := range s.drawer.Pick(tickets, lottery.WinnersDistribution, pot, now) {
				created, err := tx.CreateWinner(ctx, winner)
				if err != nil {
					return fmt.Errorf("tx.CreateWinner -> %w", err)
				}
				outcome.winners = append(outcome.winners, created)

				tiers, err := s.rewards.Award(ctx, tx, created.UserID, created.PrizeAmount, now)
				if err != nil {
					return fmt.Errorf("s.rewards.Award -> %w", err)
				}
				outcome.tiers[created.UserID] = append(outcome.tiers[created.UserID], tiers...)
			}
		}

		moved, err := tx.TransitionLottery(ctx, lottery.ID, []domain.LotteryStatus{domain.LotteryStatusPending}, domain.LotteryStatusCompleted, now)
		if err != nil {
			return fmt.Errorf("tx.TransitionLottery -> %w", err)
		}
		outcome.completed = moved
		outcome.lottery = lottery

		return nil
	})

	return outcome, err
}

func (o finalizeOutcome) notifications() []domain.Notification {
	lottery := o.lottery
	if len(o.winners) == 0 {
		return []domain.Notification{domain.Broadcast("Lottery completed",
			fmt.Sprintf("%s closed with a pot of %s ISK and no winners.", lottery.Reference, lottery.TotalPot),
			domain.SeverityInfo)}
	}

	names := make([]string, 0, len(o.winners))
	notifications := make([]domain.Notification, 0, len(o.winners)+1)
	for _, winner := range o.winners {
		names = append(names, fmt.Sprintf("#%d %s (%s ISK)", winner.Position, winner.CharacterName, winner.PrizeAmount))
		notifications = append(notifications, domain.Direct(winner.UserID, "You won!",
			fmt.Sprintf("Your ticket placed #%d in %s. Prize: %s ISK.", winner.Position, lottery.Reference, winner.PrizeAmount),
			domain.SeveritySuccess))
	}
	for userID, tiers := range o.tiers {
		for _, tier := range tiers {
			notifications = append(notifications, domain.Direct(userID, "Reward unlocked",
				fmt.Sprintf("You reached the %s tier.", tier.Name), domain.SeveritySuccess))
		}
	}

	return append([]domain.Notification{domain.Broadcast("Lottery completed",
		fmt.Sprintf("%s closed with a pot of %s ISK. Winners: %s.", lottery.Reference, lottery.TotalPot, strings.Join(names, ", ")),
		domain.SeveritySuccess)}, notifications...)
}
