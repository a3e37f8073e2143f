package service

import (
	"context"
	"errors"
	"time"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/lock"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

var (
	ErrLotteryNotFound    = repository.ErrLotteryNotFound
	ErrAnomalyNotFound    = repository.ErrAnomalyNotFound
	ErrWinnerNotFound     = repository.ErrWinnerNotFound
	ErrTemplateNotFound   = repository.ErrTemplateNotFound
	ErrTemplateNameExists = repository.ErrTemplateNameExists
	ErrInvalidTransition  = domain.ErrInvalidTransition
	ErrReferenceExhausted = errors.New("could not generate a unique lottery reference")
	ErrInvalidInput       = errors.New("invalid input")
)

// LedgerSource is the wallet journal fed by the upstream ingestion job.
type LedgerSource interface {
	PendingEntries(ctx context.Context) ([]domain.LedgerEntry, error)
	HasPendingEntries(ctx context.Context, reference string, after time.Time) (bool, error)
	LastSync(ctx context.Context) (time.Time, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, payerID int64) (domain.Identity, error)
}

type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (lock.Lease, bool, error)
}

type CadenceScheduler interface {
	Register(templateID uint, cadence domain.Cadence, job func(ctx context.Context)) error
	Unregister(templateID uint)
}

type LotteryCreator interface {
	CreateLottery(ctx context.Context, lottery domain.Lottery) (domain.Lottery, error)
}

type PaymentScanner interface {
	ScanPendingPayments(ctx context.Context) (ScanResult, error)
}

func notifyAll(ctx context.Context, notifier Notifier, notifications []domain.Notification) {
	for _, n := range notifications {
		notifier.Notify(ctx, n)
	}
}
