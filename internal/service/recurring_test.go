package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

type fakeScheduler struct {
	mu   sync.Mutex
	jobs map[uint]func(ctx context.Context)
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{jobs: map[uint]func(ctx context.Context){}}
}

func (s *fakeScheduler) Register(templateID uint, cadence domain.Cadence, job func(ctx context.Context)) error {
	if err := cadence.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[templateID] = job

	return nil
}

func (s *fakeScheduler) Unregister(templateID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, templateID)
}

func (s *fakeScheduler) job(templateID uint) (func(ctx context.Context), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[templateID]

	return job, ok
}

func newRecurringService(f *fixture) (*RecurringService, *fakeScheduler) {
	scheduler := newFakeScheduler()
	svc := NewRecurringService(f.store, newLotteryService(f), scheduler)
	svc.now = fixedClock

	return svc, scheduler
}

func weeklyTemplate(active bool) domain.RecurringTemplate {
	limit := 10
	return domain.RecurringTemplate{
		Name:                "Weekly jackpot",
		Active:              active,
		Frequency:           domain.Cadence{Value: 1, Unit: domain.CadenceWeeks},
		Duration:            domain.Cadence{Value: 6, Unit: domain.CadenceDays},
		TicketPrice:         decimal.NewFromInt(10_000_000),
		WinnerCount:         2,
		WinnersDistribution: dec("75", "25"),
		MaxTicketsPerUser:   &limit,
		PaymentReceiverID:   98000001,
	}
}

func (f *fixture) lotteries(t *testing.T) []domain.Lottery {
	t.Helper()

	lotteries, err := f.store.ListLotteries(context.Background(), repository.LotteryFilter{})
	require.NoError(t, err)

	return lotteries
}

func TestRecurringService_CreateActiveTemplateSpawnsLottery(t *testing.T) {
	f := newFixture(t)
	svc, scheduler := newRecurringService(f)

	template, err := svc.CreateTemplate(context.Background(), weeklyTemplate(true))
	require.NoError(t, err)
	require.NotNil(t, template.LastRunAt)
	assert.Equal(t, base, *template.LastRunAt)

	lotteries := f.lotteries(t)
	require.Len(t, lotteries, 1)
	lottery := lotteries[0]
	assert.Equal(t, template.ID, *lottery.TemplateID)
	assert.Equal(t, base, lottery.StartDate)
	assert.Equal(t, base.AddDate(0, 0, 6), lottery.EndDate)
	assert.Equal(t, domain.LotteryStatusActive, lottery.Status)
	assert.Equal(t, 10, *lottery.MaxTicketsPerUser)
	assert.Regexp(t, `^LOTTERY-\d{10}$`, lottery.Reference)

	_, scheduled := scheduler.job(template.ID)
	assert.True(t, scheduled)
}

func TestRecurringService_CreateInactiveTemplate(t *testing.T) {
	f := newFixture(t)
	svc, scheduler := newRecurringService(f)

	template, err := svc.CreateTemplate(context.Background(), weeklyTemplate(false))
	require.NoError(t, err)

	assert.Empty(t, f.lotteries(t))
	_, scheduled := scheduler.job(template.ID)
	assert.False(t, scheduled)
}

func TestRecurringService_CreateTemplate_Invalid(t *testing.T) {
	f := newFixture(t)
	svc, _ := newRecurringService(f)

	input := weeklyTemplate(true)
	input.WinnersDistribution = dec("75", "20")
	_, err := svc.CreateTemplate(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidDistribution)
	assert.ErrorIs(t, err, ErrInvalidInput)

	input = weeklyTemplate(true)
	input.Frequency = domain.Cadence{Value: 1, Unit: "fortnights"}
	_, err = svc.CreateTemplate(context.Background(), input)
	assert.Error(t, err)

	assert.Empty(t, f.lotteries(t))
}

func TestRecurringService_ToggleKeepsExistingLotteries(t *testing.T) {
	f := newFixture(t)
	svc, scheduler := newRecurringService(f)
	ctx := context.Background()

	template, err := svc.CreateTemplate(ctx, weeklyTemplate(true))
	require.NoError(t, err)

	deactivated, err := svc.SetTemplateActive(ctx, template.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
	_, scheduled := scheduler.job(template.ID)
	assert.False(t, scheduled)
	assert.Len(t, f.lotteries(t), 1)

	_, spawned, err := svc.RunTemplate(ctx, template.ID)
	require.NoError(t, err)
	assert.False(t, spawned)

	_, err = svc.SetTemplateActive(ctx, template.ID, true)
	require.NoError(t, err)
	job, scheduled := scheduler.job(template.ID)
	require.True(t, scheduled)
	assert.Len(t, f.lotteries(t), 1)

	job(ctx)
	assert.Len(t, f.lotteries(t), 2)
}

func TestRecurringService_UpdateTemplate(t *testing.T) {
	f := newFixture(t)
	svc, scheduler := newRecurringService(f)
	ctx := context.Background()

	template, err := svc.CreateTemplate(ctx, weeklyTemplate(true))
	require.NoError(t, err)

	template.Active = false
	template.TicketPrice = decimal.NewFromInt(20_000_000)
	updated, err := svc.UpdateTemplate(ctx, template)
	require.NoError(t, err)
	requireDecimal(t, "20000000", updated.TicketPrice)
	require.NotNil(t, updated.LastRunAt)

	_, scheduled := scheduler.job(template.ID)
	assert.False(t, scheduled)

	template.ID = 999
	_, err = svc.UpdateTemplate(ctx, template)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRecurringService_DeleteTemplate(t *testing.T) {
	f := newFixture(t)
	svc, scheduler := newRecurringService(f)
	ctx := context.Background()

	template, err := svc.CreateTemplate(ctx, weeklyTemplate(true))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTemplate(ctx, template.ID))

	_, scheduled := scheduler.job(template.ID)
	assert.False(t, scheduled)
	_, err = svc.GetTemplate(ctx, template.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Len(t, f.lotteries(t), 1)

	assert.ErrorIs(t, svc.DeleteTemplate(ctx, template.ID), ErrTemplateNotFound)
}

func TestRecurringService_RestoreSchedules(t *testing.T) {
	f := newFixture(t)
	svc, _ := newRecurringService(f)
	ctx := context.Background()

	active, err := svc.CreateTemplate(ctx, weeklyTemplate(true))
	require.NoError(t, err)
	inactiveInput := weeklyTemplate(false)
	inactiveInput.Name = "Paused raffle"
	inactive, err := svc.CreateTemplate(ctx, inactiveInput)
	require.NoError(t, err)

	restarted, scheduler := newRecurringService(f)
	require.NoError(t, restarted.RestoreSchedules(ctx))

	_, scheduled := scheduler.job(active.ID)
	assert.True(t, scheduled)
	_, scheduled = scheduler.job(inactive.ID)
	assert.False(t, scheduled)
}

func TestRecurringService_DuplicateName(t *testing.T) {
	f := newFixture(t)
	svc, _ := newRecurringService(f)

	_, err := svc.CreateTemplate(context.Background(), weeklyTemplate(false))
	require.NoError(t, err)

	_, err = svc.CreateTemplate(context.Background(), weeklyTemplate(false))
	assert.ErrorIs(t, err, ErrTemplateNameExists)
}

func TestRecurringService_SpawnedLotteriesAreSweepable(t *testing.T) {
	f := newFixture(t)
	svc, _ := newRecurringService(f)

	input := weeklyTemplate(true)
	input.Duration = domain.Cadence{Value: 30, Unit: domain.CadenceMinutes}
	_, err := svc.CreateTemplate(context.Background(), input)
	require.NoError(t, err)

	lottery := f.lotteries(t)[0]
	assert.True(t, lottery.IsExpired(base.Add(time.Hour)))
	assert.False(t, lottery.IsExpired(base))
}
