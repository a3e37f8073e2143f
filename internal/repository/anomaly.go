package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func (s *GormStore) CreateAnomaly(ctx context.Context, anomaly domain.Anomaly) (domain.Anomaly, error) {
	created, err := s.anomalies.Insert(ctx, anomalyDomainToDao(anomaly))
	if err != nil {
		return domain.Anomaly{}, fmt.Errorf("s.anomalies.Insert -> %w", err)
	}

	return anomalyDaoToDomain(created), nil
}

func (s *GormStore) ListAnomalies(ctx context.Context, filter AnomalyFilter) ([]domain.Anomaly, error) {
	rows, err := s.anomalies.Find(ctx, filter.LotteryID, string(filter.Kind))
	if err != nil {
		return nil, fmt.Errorf("s.anomalies.Find -> %w", err)
	}

	anomalies := make([]domain.Anomaly, len(rows))
	for i, row := range rows {
		anomalies[i] = anomalyDaoToDomain(row)
	}

	return anomalies, nil
}

func (s *GormStore) DeleteAnomaly(ctx context.Context, id uint) error {
	if err := s.anomalies.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.anomalies.Delete -> %w", err)
	}

	return nil
}

func anomalyDomainToDao(a domain.Anomaly) dao.Anomaly {
	return dao.Anomaly{
		ID:            a.ID,
		LotteryID:     a.LotteryID,
		UserID:        a.UserID,
		CharacterID:   a.CharacterID,
		Kind:          string(a.Kind),
		Reason:        a.Reason,
		TransactionID: a.TransactionID,
		PaymentDate:   a.PaymentDate,
		Amount:        a.Amount,
		RecordedAt:    a.RecordedAt,
	}
}

func anomalyDaoToDomain(a dao.Anomaly) domain.Anomaly {
	return domain.Anomaly{
		ID:            a.ID,
		LotteryID:     a.LotteryID,
		UserID:        a.UserID,
		CharacterID:   a.CharacterID,
		Kind:          domain.AnomalyKind(a.Kind),
		Reason:        a.Reason,
		TransactionID: a.TransactionID,
		PaymentDate:   a.PaymentDate,
		Amount:        a.Amount,
		RecordedAt:    a.RecordedAt,
	}
}
