package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

// RecurringService manages lottery templates and keeps the scheduler in step
// with their active flag.
type RecurringService struct {
	store     repository.TemplateStore
	lotteries LotteryCreator
	scheduler CadenceScheduler
	now       func() time.Time
}

func NewRecurringService(store repository.TemplateStore, lotteries LotteryCreator, scheduler CadenceScheduler) *RecurringService {
	return &RecurringService{
		store:     store,
		lotteries: lotteries,
		scheduler: scheduler,
		now:       time.Now,
	}
}

// CreateTemplate stores the template and, when it is active, schedules it and
// spawns its first lottery straight away.
func (s *RecurringService) CreateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error) {
	if err := template.Validate(); err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	template.LastRunAt = nil

	created, err := s.store.CreateTemplate(ctx, template)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.store.CreateTemplate -> %w", err)
	}

	if !created.Active {
		return created, nil
	}

	if err = s.schedule(created); err != nil {
		return domain.RecurringTemplate{}, err
	}

	if _, _, err = s.RunTemplate(ctx, created.ID); err != nil {
		return domain.RecurringTemplate{}, err
	}

	return s.GetTemplate(ctx, created.ID)
}

func (s *RecurringService) GetTemplate(ctx context.Context, id uint) (domain.RecurringTemplate, error) {
	template, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.store.GetTemplate -> %w", err)
	}

	return template, nil
}

func (s *RecurringService) ListTemplates(ctx context.Context, activeOnly bool) ([]domain.RecurringTemplate, error) {
	templates, err := s.store.ListTemplates(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListTemplates -> %w", err)
	}

	return templates, nil
}

func (s *RecurringService) UpdateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error) {
	if err := template.Validate(); err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	existing, err := s.store.GetTemplate(ctx, template.ID)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.store.GetTemplate -> %w", err)
	}
	template.LastRunAt = existing.LastRunAt

	updated, err := s.store.UpdateTemplate(ctx, template)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.store.UpdateTemplate -> %w", err)
	}

	if err = s.sync(updated); err != nil {
		return domain.RecurringTemplate{}, err
	}

	return updated, nil
}

// SetTemplateActive toggles generation. Lotteries already spawned are kept.
func (s *RecurringService) SetTemplateActive(ctx context.Context, id uint, active bool) (domain.RecurringTemplate, error) {
	template, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.store.GetTemplate -> %w", err)
	}

	template.Active = active
	updated, err := s.store.UpdateTemplate(ctx, template)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.store.UpdateTemplate -> %w", err)
	}

	if err = s.sync(updated); err != nil {
		return domain.RecurringTemplate{}, err
	}

	return updated, nil
}

func (s *RecurringService) DeleteTemplate(ctx context.Context, id uint) error {
	if _, err := s.store.GetTemplate(ctx, id); err != nil {
		return fmt.Errorf("s.store.GetTemplate -> %w", err)
	}

	s.scheduler.Unregister(id)

	if err := s.store.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("s.store.DeleteTemplate -> %w", err)
	}

	return nil
}

// RunTemplate spawns one lottery from the template. It reports false without
// error when the template is inactive.
func (s *RecurringService) RunTemplate(ctx context.Context, id uint) (domain.Lottery, bool, error) {
	template, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return domain.Lottery{}, false, fmt.Errorf("s.store.GetTemplate -> %w", err)
	}
	if !template.Active {
		return domain.Lottery{}, false, nil
	}

	now := s.now()
	lottery, err := s.lotteries.CreateLottery(ctx, template.NewLottery(now))
	if err != nil {
		return domain.Lottery{}, false, fmt.Errorf("s.lotteries.CreateLottery -> %w", err)
	}

	if err = s.store.MarkTemplateRun(ctx, id, now); err != nil {
		return domain.Lottery{}, false, fmt.Errorf("s.store.MarkTemplateRun -> %w", err)
	}

	zap.L().Info("recurring lottery spawned",
		zap.Uint("template_id", id),
		zap.Uint("lottery_id", lottery.ID),
		zap.String("reference", lottery.Reference),
	)

	return lottery, true, nil
}

// RestoreSchedules registers every active template; called once at startup.
func (s *RecurringService) RestoreSchedules(ctx context.Context) error {
	templates, err := s.store.ListTemplates(ctx, true)
	if err != nil {
		return fmt.Errorf("s.store.ListTemplates -> %w", err)
	}

	for _, template := range templates {
		if err = s.schedule(template); err != nil {
			return err
		}
	}

	return nil
}

func (s *RecurringService) sync(template domain.RecurringTemplate) error {
	if !template.Active {
		s.scheduler.Unregister(template.ID)
		return nil
	}

	return s.schedule(template)
}

func (s *RecurringService) schedule(template domain.RecurringTemplate) error {
	id := template.ID
	err := s.scheduler.Register(id, template.Frequency, func(ctx context.Context) {
		if _, _, err := s.RunTemplate(ctx, id); err != nil {
			zap.L().Error("failed to run recurring template", zap.Uint("template_id", id), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("s.scheduler.Register -> %w", err)
	}

	return nil
}
