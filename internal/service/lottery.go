package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

// LotteryService holds the operator-facing operations on lotteries and their
// tickets, winners and anomalies.
type LotteryService struct {
	store      repository.Store
	references *ReferenceGenerator
	notifier   Notifier
	attempts   int
	now        func() time.Time
}

func NewLotteryService(store repository.Store, references *ReferenceGenerator, notifier Notifier, attempts int) *LotteryService {
	if attempts < 1 {
		attempts = 1
	}

	return &LotteryService{
		store:      store,
		references: references,
		notifier:   notifier,
		attempts:   attempts,
		now:        time.Now,
	}
}

func (s *LotteryService) CreateLottery(ctx context.Context, lottery domain.Lottery) (domain.Lottery, error) {
	if lottery.StartDate.IsZero() {
		lottery.StartDate = s.now()
	}
	lottery.Status = domain.LotteryStatusActive
	lottery.TotalPot = decimal.Zero
	lottery.CompletedAt = nil

	if err := lottery.Validate(); err != nil {
		return domain.Lottery{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// The unique index on reference arbitrates races the existence check misses.
	for i := 0; i < s.attempts; i++ {
		reference, err := s.references.Generate(ctx)
		if err != nil {
			return domain.Lottery{}, fmt.Errorf("s.references.Generate -> %w", err)
		}
		lottery.Reference = reference

		created, err := s.store.CreateLottery(ctx, lottery)
		if errors.Is(err, repository.ErrLotteryReferenceExists) {
			continue
		}
		if err != nil {
			return domain.Lottery{}, fmt.Errorf("s.store.CreateLottery -> %w", err)
		}

		zap.L().Info("lottery created", zap.Uint("lottery_id", created.ID), zap.String("reference", created.Reference))
		s.notifier.Notify(ctx, domain.Broadcast("New lottery",
			fmt.Sprintf("%s is open until %s. Ticket price: %s ISK. Send ISK with the reference as reason to enter.",
				created.Reference, created.EndDate.Format(time.RFC1123), created.TicketPrice),
			domain.SeverityInfo))

		return created, nil
	}

	return domain.Lottery{}, ErrReferenceExhausted
}

func (s *LotteryService) GetLottery(ctx context.Context, id uint) (domain.Lottery, error) {
	lottery, err := s.store.GetLottery(ctx, id)
	if err != nil {
		return domain.Lottery{}, fmt.Errorf("s.store.GetLottery -> %w", err)
	}

	return lottery, nil
}

func (s *LotteryService) ListLotteries(ctx context.Context, statuses []domain.LotteryStatus) ([]domain.Lottery, error) {
	lotteries, err := s.store.ListLotteries(ctx, repository.LotteryFilter{Statuses: statuses})
	if err != nil {
		return nil, fmt.Errorf("s.store.ListLotteries -> %w", err)
	}

	return lotteries, nil
}

// CancelLottery is the operator's terminal transition. It is refused once the
// lottery has completed or was already cancelled.
func (s *LotteryService) CancelLottery(ctx context.Context, id uint) (domain.Lottery, error) {
	var cancelled domain.Lottery

	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		lottery, err := tx.LockLottery(ctx, id)
		if err != nil {
			return fmt.Errorf("tx.LockLottery -> %w", err)
		}

		if !lottery.Status.CanTransitionTo(domain.LotteryStatusCancelled) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, lottery.Status, domain.LotteryStatusCancelled)
		}

		if _, err = tx.TransitionLottery(ctx, id, []domain.LotteryStatus{lottery.Status}, domain.LotteryStatusCancelled, s.now()); err != nil {
			return fmt.Errorf("tx.TransitionLottery -> %w", err)
		}

		cancelled, err = tx.GetLottery(ctx, id)
		if err != nil {
			return fmt.Errorf("tx.GetLottery -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Lottery{}, fmt.Errorf("s.store.Atomic -> %w", err)
	}

	s.notifier.Notify(ctx, domain.Broadcast("Lottery cancelled",
		fmt.Sprintf("%s has been cancelled by an operator.", cancelled.Reference), domain.SeverityDanger))

	return cancelled, nil
}

// DeleteLottery removes the lottery together with its tickets, winners and
// linked anomalies.
func (s *LotteryService) DeleteLottery(ctx context.Context, id uint) error {
	if err := s.store.DeleteLottery(ctx, id); err != nil {
		return fmt.Errorf("s.store.DeleteLottery -> %w", err)
	}

	return nil
}

func (s *LotteryService) ListTickets(ctx context.Context, lotteryID uint) ([]domain.Ticket, error) {
	if _, err := s.store.GetLottery(ctx, lotteryID); err != nil {
		return nil, fmt.Errorf("s.store.GetLottery -> %w", err)
	}

	tickets, err := s.store.ListTickets(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListTickets -> %w", err)
	}

	return tickets, nil
}

func (s *LotteryService) ListWinners(ctx context.Context, lotteryID uint) ([]domain.Winner, error) {
	if _, err := s.store.GetLottery(ctx, lotteryID); err != nil {
		return nil, fmt.Errorf("s.store.GetLottery -> %w", err)
	}

	winners, err := s.store.ListWinners(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListWinners -> %w", err)
	}

	return winners, nil
}

// SetWinnerDistributed records that the prize was (or was not) paid out.
func (s *LotteryService) SetWinnerDistributed(ctx context.Context, winnerID uint, distributed bool) (domain.Winner, error) {
	winner, err := s.store.SetWinnerDistributed(ctx, winnerID, distributed, s.now())
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.store.SetWinnerDistributed -> %w", err)
	}

	if distributed {
		s.notifier.Notify(ctx, domain.Direct(winner.UserID, "Prize paid",
			fmt.Sprintf("Your prize of %s ISK has been sent to %s.", winner.PrizeAmount, winner.CharacterName),
			domain.SeveritySuccess))
	}

	return winner, nil
}

func (s *LotteryService) ListAnomalies(ctx context.Context, filter repository.AnomalyFilter) ([]domain.Anomaly, error) {
	anomalies, err := s.store.ListAnomalies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListAnomalies -> %w", err)
	}

	return anomalies, nil
}

// AcknowledgeAnomaly resolves an anomaly by deleting it.
func (s *LotteryService) AcknowledgeAnomaly(ctx context.Context, id uint) error {
	if err := s.store.DeleteAnomaly(ctx, id); err != nil {
		return fmt.Errorf("s.store.DeleteAnomaly -> %w", err)
	}

	return nil
}
