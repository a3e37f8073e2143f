package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func (s *GormStore) IsProcessed(ctx context.Context, transactionID string) (bool, error) {
	exists, err := s.payments.Exists(ctx, transactionID)
	if err != nil {
		return false, fmt.Errorf("s.payments.Exists -> %w", err)
	}

	return exists, nil
}

func (s *GormStore) MarkProcessed(ctx context.Context, payment domain.ProcessedPayment) error {
	err := s.payments.Insert(ctx, dao.ProcessedPayment{
		TransactionID: payment.TransactionID,
		Outcome:       string(payment.Outcome),
		ProcessedAt:   payment.ProcessedAt,
	})
	if err != nil {
		return fmt.Errorf("s.payments.Insert -> %w", err)
	}

	return nil
}
