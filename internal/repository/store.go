package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

var (
	ErrLotteryNotFound        = dao.ErrLotteryNotFound
	ErrLotteryReferenceExists = dao.ErrLotteryReferenceExists
	ErrTicketNotFound         = dao.ErrTicketNotFound
	ErrAnomalyNotFound        = dao.ErrAnomalyNotFound
	ErrAlreadyProcessed       = dao.ErrAlreadyProcessed
	ErrWinnerNotFound         = dao.ErrWinnerNotFound
	ErrTicketAlreadyWon       = dao.ErrTicketAlreadyWon
	ErrTemplateNotFound       = dao.ErrTemplateNotFound
	ErrTemplateNameExists     = dao.ErrTemplateNameExists
)

type LotteryFilter struct {
	Statuses []domain.LotteryStatus
}

type AnomalyFilter struct {
	LotteryID *uint
	Kind      domain.AnomalyKind
}

type LotteryStore interface {
	CreateLottery(ctx context.Context, lottery domain.Lottery) (domain.Lottery, error)
	GetLottery(ctx context.Context, id uint) (domain.Lottery, error)
	// LockLottery and LockOpenLotteryByReference hold a row lock until the
	// enclosing Atomic call returns.
	LockLottery(ctx context.Context, id uint) (domain.Lottery, error)
	LockOpenLotteryByReference(ctx context.Context, reference string) (domain.Lottery, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	ListLotteries(ctx context.Context, filter LotteryFilter) ([]domain.Lottery, error)
	ListExpiredLotteries(ctx context.Context, now time.Time) ([]domain.Lottery, error)
	TransitionLottery(ctx context.Context, id uint, from []domain.LotteryStatus, to domain.LotteryStatus, at time.Time) (bool, error)
	UpdateLotteryPot(ctx context.Context, id uint, pot decimal.Decimal) error
	DeleteLottery(ctx context.Context, id uint) error
}

type TicketStore interface {
	LockTicket(ctx context.Context, lotteryID, userID uint, characterID int64) (domain.Ticket, error)
	SaveTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	CountUserTickets(ctx context.Context, lotteryID, userID uint) (int, error)
	ListTickets(ctx context.Context, lotteryID uint) ([]domain.Ticket, error)
	SumTicketAmounts(ctx context.Context, lotteryID uint) (decimal.Decimal, error)
	// LatestReconciledPaymentDate is the newest payment date already turned
	// into a ticket or anomaly for the lottery.
	LatestReconciledPaymentDate(ctx context.Context, lotteryID uint) (time.Time, bool, error)
}

type AnomalyStore interface {
	CreateAnomaly(ctx context.Context, anomaly domain.Anomaly) (domain.Anomaly, error)
	ListAnomalies(ctx context.Context, filter AnomalyFilter) ([]domain.Anomaly, error)
	DeleteAnomaly(ctx context.Context, id uint) error
}

type PaymentStore interface {
	IsProcessed(ctx context.Context, transactionID string) (bool, error)
	MarkProcessed(ctx context.Context, payment domain.ProcessedPayment) error
}

type WinnerStore interface {
	CreateWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error)
	ListWinners(ctx context.Context, lotteryID uint) ([]domain.Winner, error)
	CountWinners(ctx context.Context, lotteryID uint) (int, error)
	SetWinnerDistributed(ctx context.Context, id uint, distributed bool, at time.Time) (domain.Winner, error)
}

type TemplateStore interface {
	CreateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error)
	GetTemplate(ctx context.Context, id uint) (domain.RecurringTemplate, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]domain.RecurringTemplate, error)
	UpdateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error)
	DeleteTemplate(ctx context.Context, id uint) error
	MarkTemplateRun(ctx context.Context, id uint, at time.Time) error
}

type RewardStore interface {
	AddUserPoints(ctx context.Context, userID uint, delta int64) (int64, error)
	ListRewardTiers(ctx context.Context) ([]domain.RewardTier, error)
	CreateRewardTier(ctx context.Context, tier domain.RewardTier) (domain.RewardTier, error)
	GrantReward(ctx context.Context, reward domain.UserReward) (bool, error)
}

// Store is the full persistence surface of the lottery engine. Atomic runs fn
// in one unit of work: any error returned by fn discards every write made
// through tx.
type Store interface {
	LotteryStore
	TicketStore
	AnomalyStore
	PaymentStore
	WinnerStore
	TemplateStore
	RewardStore

	Atomic(ctx context.Context, fn func(tx Store) error) error
}

// OpenStatuses lists the statuses a payment can still be matched against.
func OpenStatuses() []domain.LotteryStatus {
	return []domain.LotteryStatus{domain.LotteryStatusActive, domain.LotteryStatusPending}
}
