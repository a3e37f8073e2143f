package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/memstore"
)

var base = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return base }

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, n)
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	titles := make([]string, len(r.notifications))
	for i, n := range r.notifications {
		titles[i] = n.Title
	}

	return titles
}

func (r *recordingNotifier) forUser(userID uint) []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Notification
	for _, n := range r.notifications {
		if n.Recipient != nil && *n.Recipient == userID {
			out = append(out, n)
		}
	}

	return out
}

type fixture struct {
	store     *memstore.Store
	ledger    *memstore.Ledger
	directory *memstore.Directory
	notifier  *recordingNotifier
	issuance  *IssuanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New().WithClock(fixedClock)
	ledger := memstore.NewLedger(store)
	directory := memstore.NewDirectory()
	notifier := &recordingNotifier{}

	issuance := NewIssuanceService(store, ledger, directory, notifier, 4)
	issuance.now = fixedClock

	return &fixture{
		store:     store,
		ledger:    ledger,
		directory: directory,
		notifier:  notifier,
		issuance:  issuance,
	}
}

type lotteryOption func(*domain.Lottery)

func withCap(n int) lotteryOption {
	return func(l *domain.Lottery) { l.MaxTicketsPerUser = &n }
}

func withWindow(start, end time.Time) lotteryOption {
	return func(l *domain.Lottery) {
		l.StartDate = start
		l.EndDate = end
	}
}

func withDistribution(pcts ...string) lotteryOption {
	return func(l *domain.Lottery) {
		l.WinnerCount = len(pcts)
		l.WinnersDistribution = dec(pcts...)
	}
}

func (f *fixture) lottery(t *testing.T, reference string, opts ...lotteryOption) domain.Lottery {
	t.Helper()

	lottery := domain.Lottery{
		Reference:           reference,
		TicketPrice:         decimal.NewFromInt(1000),
		StartDate:           base.Add(-time.Hour),
		EndDate:             base.Add(time.Hour),
		Status:              domain.LotteryStatusActive,
		WinnerCount:         1,
		WinnersDistribution: dec("100"),
		TotalPot:            decimal.Zero,
		PaymentReceiverID:   98000001,
	}
	for _, opt := range opts {
		opt(&lottery)
	}

	created, err := f.store.CreateLottery(context.Background(), lottery)
	require.NoError(t, err)

	return created
}

func payment(txID string, payer int64, memo string, amount int64, at time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		TransactionID: txID,
		PayerID:       payer,
		ReceiverID:    98000001,
		Memo:          memo,
		Amount:        decimal.NewFromInt(amount),
		Date:          at,
	}
}

func dec(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}

	return out
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
