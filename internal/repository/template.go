package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func (s *GormStore) CreateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error) {
	row, err := templateDomainToDao(template)
	if err != nil {
		return domain.RecurringTemplate{}, err
	}

	created, err := s.templates.Insert(ctx, row)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.templates.Insert -> %w", err)
	}

	return templateDaoToDomain(created)
}

func (s *GormStore) GetTemplate(ctx context.Context, id uint) (domain.RecurringTemplate, error) {
	row, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.templates.FindByID -> %w", err)
	}

	return templateDaoToDomain(row)
}

func (s *GormStore) ListTemplates(ctx context.Context, activeOnly bool) ([]domain.RecurringTemplate, error) {
	rows, err := s.templates.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.templates.FindAll -> %w", err)
	}

	templates := make([]domain.RecurringTemplate, 0, len(rows))
	for _, row := range rows {
		t, err := templateDaoToDomain(row)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, nil
}

func (s *GormStore) UpdateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error) {
	row, err := templateDomainToDao(template)
	if err != nil {
		return domain.RecurringTemplate{}, err
	}

	updated, err := s.templates.Update(ctx, row)
	if err != nil {
		return domain.RecurringTemplate{}, fmt.Errorf("s.templates.Update -> %w", err)
	}

	return templateDaoToDomain(updated)
}

func (s *GormStore) DeleteTemplate(ctx context.Context, id uint) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.templates.Delete -> %w", err)
	}

	return nil
}

func (s *GormStore) MarkTemplateRun(ctx context.Context, id uint, at time.Time) error {
	if err := s.templates.UpdateLastRun(ctx, id, at); err != nil {
		return fmt.Errorf("s.templates.UpdateLastRun -> %w", err)
	}

	return nil
}

func templateDomainToDao(t domain.RecurringTemplate) (dao.RecurringTemplate, error) {
	distribution, err := encodeDistribution(t.WinnersDistribution)
	if err != nil {
		return dao.RecurringTemplate{}, err
	}

	return dao.RecurringTemplate{
		ID:                  t.ID,
		Name:                t.Name,
		Active:              t.Active,
		FrequencyValue:      t.Frequency.Value,
		FrequencyUnit:       string(t.Frequency.Unit),
		TicketPrice:         t.TicketPrice,
		DurationValue:       t.Duration.Value,
		DurationUnit:        string(t.Duration.Unit),
		WinnerCount:         t.WinnerCount,
		WinnersDistribution: distribution,
		MaxTicketsPerUser:   t.MaxTicketsPerUser,
		PaymentReceiverID:   t.PaymentReceiverID,
		LastRunAt:           t.LastRunAt,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}, nil
}

func templateDaoToDomain(t dao.RecurringTemplate) (domain.RecurringTemplate, error) {
	distribution, err := decodeDistribution(t.WinnersDistribution)
	if err != nil {
		return domain.RecurringTemplate{}, err
	}

	return domain.RecurringTemplate{
		ID:                  t.ID,
		Name:                t.Name,
		Active:              t.Active,
		Frequency:           domain.Cadence{Value: t.FrequencyValue, Unit: domain.CadenceUnit(t.FrequencyUnit)},
		TicketPrice:         t.TicketPrice,
		Duration:            domain.Cadence{Value: t.DurationValue, Unit: domain.CadenceUnit(t.DurationUnit)},
		WinnerCount:         t.WinnerCount,
		WinnersDistribution: distribution,
		MaxTicketsPerUser:   t.MaxTicketsPerUser,
		PaymentReceiverID:   t.PaymentReceiverID,
		LastRunAt:           t.LastRunAt,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}, nil
}
