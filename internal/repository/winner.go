package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func (s *GormStore) CreateWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error) {
	created, err := s.winners.Insert(ctx, winnerDomainToDao(winner))
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.winners.Insert -> %w", err)
	}

	return winnerDaoToDomain(created), nil
}

func (s *GormStore) ListWinners(ctx context.Context, lotteryID uint) ([]domain.Winner, error) {
	rows, err := s.winners.FindByLottery(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("s.winners.FindByLottery -> %w", err)
	}

	winners := make([]domain.Winner, len(rows))
	for i, row := range rows {
		winners[i] = winnerDaoToDomain(row)
	}

	return winners, nil
}

func (s *GormStore) CountWinners(ctx context.Context, lotteryID uint) (int, error) {
	count, err := s.winners.CountByLottery(ctx, lotteryID)
	if err != nil {
		return 0, fmt.Errorf("s.winners.CountByLottery -> %w", err)
	}

	return count, nil
}

func (s *GormStore) SetWinnerDistributed(ctx context.Context, id uint, distributed bool, at time.Time) (domain.Winner, error) {
	var distributedAt *time.Time
	if distributed {
		distributedAt = &at
	}

	updated, err := s.winners.UpdateDistributed(ctx, id, distributed, distributedAt)
	if err != nil {
		return domain.Winner{}, fmt.Errorf("s.winners.UpdateDistributed -> %w", err)
	}

	return winnerDaoToDomain(updated), nil
}

func winnerDomainToDao(w domain.Winner) dao.Winner {
	return dao.Winner{
		ID:            w.ID,
		LotteryID:     w.LotteryID,
		TicketID:      w.TicketID,
		UserID:        w.UserID,
		CharacterID:   w.CharacterID,
		CharacterName: w.CharacterName,
		Position:      w.Position,
		PrizeAmount:   w.PrizeAmount,
		Distributed:   w.Distributed,
		WonAt:         w.WonAt,
		DistributedAt: w.DistributedAt,
	}
}

func winnerDaoToDomain(w dao.Winner) domain.Winner {
	return domain.Winner{
		ID:            w.ID,
		LotteryID:     w.LotteryID,
		TicketID:      w.TicketID,
		UserID:        w.UserID,
		CharacterID:   w.CharacterID,
		CharacterName: w.CharacterName,
		Position:      w.Position,
		PrizeAmount:   w.PrizeAmount,
		Distributed:   w.Distributed,
		WonAt:         w.WonAt,
		DistributedAt: w.DistributedAt,
	}
}
