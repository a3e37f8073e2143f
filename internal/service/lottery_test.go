package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

func newLotteryService(f *fixture) *LotteryService {
	svc := NewLotteryService(f.store, NewReferenceGenerator(f.store, 5), f.notifier, 3)
	svc.now = fixedClock

	return svc
}

func validLottery() domain.Lottery {
	return domain.Lottery{
		TicketPrice:         decimal.NewFromInt(5_000_000),
		EndDate:             base.Add(7 * 24 * time.Hour),
		WinnerCount:         3,
		WinnersDistribution: dec("50", "30", "20"),
		PaymentReceiverID:   98000001,
	}
}

func TestLotteryService_CreateLottery(t *testing.T) {
	f := newFixture(t)
	svc := newLotteryService(f)

	input := validLottery()
	input.Status = domain.LotteryStatusCompleted
	input.TotalPot = decimal.NewFromInt(42)

	created, err := svc.CreateLottery(context.Background(), input)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Regexp(t, `^LOTTERY-\d{10}$`, created.Reference)
	assert.Equal(t, domain.LotteryStatusActive, created.Status)
	assert.Equal(t, base, created.StartDate)
	assert.True(t, created.TotalPot.IsZero())
	assert.Equal(t, []string{"New lottery"}, f.notifier.titles())
}

func TestLotteryService_CreateLottery_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *domain.Lottery)
	}{
		{"distribution does not sum to 100", func(l *domain.Lottery) { l.WinnersDistribution = dec("50", "30", "10") }},
		{"distribution length mismatch", func(l *domain.Lottery) { l.WinnersDistribution = dec("60", "40") }},
		{"zero percentage", func(l *domain.Lottery) { l.WinnersDistribution = dec("100", "0", "0") }},
		{"end before start", func(l *domain.Lottery) { l.EndDate = base.Add(-time.Hour) }},
		{"free tickets", func(l *domain.Lottery) { l.TicketPrice = decimal.Zero }},
		{"zero cap", func(l *domain.Lottery) { zero := 0; l.MaxTicketsPerUser = &zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			input := validLottery()
			tt.mutate(&input)

			_, err := newLotteryService(f).CreateLottery(context.Background(), input)
			assert.ErrorIs(t, err, ErrInvalidInput)

			lotteries, err := f.store.ListLotteries(context.Background(), repository.LotteryFilter{})
			require.NoError(t, err)
			assert.Empty(t, lotteries)
		})
	}
}

func TestLotteryService_CancelLottery(t *testing.T) {
	f := newFixture(t)
	svc := newLotteryService(f)
	active := f.lottery(t, "LOTTERY-0000000001")
	pending := f.lottery(t, "LOTTERY-0000000002")
	completed := f.lottery(t, "LOTTERY-0000000003")
	ctx := context.Background()

	_, err := f.store.TransitionLottery(ctx, pending.ID, []domain.LotteryStatus{domain.LotteryStatusActive}, domain.LotteryStatusPending, base)
	require.NoError(t, err)
	_, err = f.store.TransitionLottery(ctx, completed.ID, []domain.LotteryStatus{domain.LotteryStatusActive}, domain.LotteryStatusCompleted, base)
	require.NoError(t, err)

	for _, id := range []uint{active.ID, pending.ID} {
		cancelled, err := svc.CancelLottery(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.LotteryStatusCancelled, cancelled.Status)
	}

	_, err = svc.CancelLottery(ctx, completed.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.CancelLottery(ctx, active.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.CancelLottery(ctx, 999)
	assert.ErrorIs(t, err, ErrLotteryNotFound)

	assert.Equal(t, []string{"Lottery cancelled", "Lottery cancelled"}, f.notifier.titles())
}

func TestLotteryService_DeleteLottery(t *testing.T) {
	f := newFixture(t)
	svc := newLotteryService(f)
	lottery := f.lottery(t, ref)
	f.directory.Register(7, 9001, "Pilot One")
	_, err := f.issuance.ProcessPayment(context.Background(), payment("tx-1", 9001, ref, 1500, base))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLottery(context.Background(), lottery.ID))

	_, err = svc.GetLottery(context.Background(), lottery.ID)
	assert.ErrorIs(t, err, ErrLotteryNotFound)
	_, err = svc.ListTickets(context.Background(), lottery.ID)
	assert.ErrorIs(t, err, ErrLotteryNotFound)

	anomalies, err := svc.ListAnomalies(context.Background(), repository.AnomalyFilter{})
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestLotteryService_WinnersAndAnomalies(t *testing.T) {
	f := newFixture(t)
	svc := newLotteryService(f)
	ctx := context.Background()
	lottery := f.lottery(t, ref)
	f.directory.Register(7, 9001, "Pilot One")
	_, err := f.issuance.ProcessPayment(ctx, payment("tx-1", 9001, ref, 1500, base))
	require.NoError(t, err)

	tickets, err := svc.ListTickets(ctx, lottery.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	winner, err := f.store.CreateWinner(ctx, domain.Winner{
		LotteryID:     lottery.ID,
		TicketID:      tickets[0].ID,
		UserID:        7,
		CharacterName: "Pilot One",
		Position:      1,
		PrizeAmount:   decimal.NewFromInt(1000),
		WonAt:         base,
	})
	require.NoError(t, err)

	updated, err := svc.SetWinnerDistributed(ctx, winner.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Distributed)
	require.NotNil(t, updated.DistributedAt)

	winners, err := svc.ListWinners(ctx, lottery.ID)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.True(t, winners[0].Distributed)

	_, err = svc.SetWinnerDistributed(ctx, 999, true)
	assert.ErrorIs(t, err, ErrWinnerNotFound)

	anomalies, err := svc.ListAnomalies(ctx, repository.AnomalyFilter{Kind: domain.AnomalyOverpayment})
	require.NoError(t, err)
	require.Len(t, anomalies, 1)

	require.NoError(t, svc.AcknowledgeAnomaly(ctx, anomalies[0].ID))
	assert.ErrorIs(t, svc.AcknowledgeAnomaly(ctx, anomalies[0].ID), ErrAnomalyNotFound)
}
