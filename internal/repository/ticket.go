package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func (s *GormStore) LockTicket(ctx context.Context, lotteryID, userID uint, characterID int64) (domain.Ticket, error) {
	row, err := s.tickets.FindParticipantForUpdate(ctx, lotteryID, userID, characterID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.FindParticipantForUpdate -> %w", err)
	}

	return ticketDaoToDomain(row), nil
}

func (s *GormStore) SaveTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	saved, err := s.tickets.Save(ctx, ticketDomainToDao(ticket))
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.Save -> %w", err)
	}

	return ticketDaoToDomain(saved), nil
}

func (s *GormStore) CountUserTickets(ctx context.Context, lotteryID, userID uint) (int, error) {
	count, err := s.tickets.SumUserQuantity(ctx, lotteryID, userID)
	if err != nil {
		return 0, fmt.Errorf("s.tickets.SumUserQuantity -> %w", err)
	}

	return count, nil
}

func (s *GormStore) ListTickets(ctx context.Context, lotteryID uint) ([]domain.Ticket, error) {
	rows, err := s.tickets.FindByLottery(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindByLottery -> %w", err)
	}

	tickets := make([]domain.Ticket, len(rows))
	for i, row := range rows {
		tickets[i] = ticketDaoToDomain(row)
	}

	return tickets, nil
}

func (s *GormStore) SumTicketAmounts(ctx context.Context, lotteryID uint) (decimal.Decimal, error) {
	total, err := s.tickets.SumPaid(ctx, lotteryID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.tickets.SumPaid -> %w", err)
	}

	return total, nil
}

func (s *GormStore) LatestReconciledPaymentDate(ctx context.Context, lotteryID uint) (time.Time, bool, error) {
	fromTickets, err := s.tickets.LatestPaymentDate(ctx, lotteryID)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("s.tickets.LatestPaymentDate -> %w", err)
	}

	fromAnomalies, err := s.anomalies.LatestPaymentDate(ctx, lotteryID)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("s.anomalies.LatestPaymentDate -> %w", err)
	}

	switch {
	case fromTickets.Valid && fromAnomalies.Valid:
		if fromAnomalies.Time.After(fromTickets.Time) {
			return fromAnomalies.Time, true, nil
		}
		return fromTickets.Time, true, nil
	case fromTickets.Valid:
		return fromTickets.Time, true, nil
	case fromAnomalies.Valid:
		return fromAnomalies.Time, true, nil
	default:
		return time.Time{}, false, nil
	}
}

func ticketDomainToDao(t domain.Ticket) dao.Ticket {
	return dao.Ticket{
		ID:              t.ID,
		LotteryID:       t.LotteryID,
		UserID:          t.UserID,
		CharacterID:     t.CharacterID,
		CharacterName:   t.CharacterName,
		Quantity:        t.Quantity,
		TotalPaid:       t.TotalPaid,
		TransactionID:   t.TransactionID,
		LastPaymentDate: t.LastPaymentDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ticketDaoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:              t.ID,
		LotteryID:       t.LotteryID,
		UserID:          t.UserID,
		CharacterID:     t.CharacterID,
		CharacterName:   t.CharacterName,
		Quantity:        t.Quantity,
		TotalPaid:       t.TotalPaid,
		TransactionID:   t.TransactionID,
		LastPaymentDate: t.LastPaymentDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
