package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

func (s *GormStore) AddUserPoints(ctx context.Context, userID uint, delta int64) (int64, error) {
	total, err := s.rewards.AddPoints(ctx, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("s.rewards.AddPoints -> %w", err)
	}

	return total, nil
}

func (s *GormStore) ListRewardTiers(ctx context.Context) ([]domain.RewardTier, error) {
	rows, err := s.rewards.FindTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.rewards.FindTiers -> %w", err)
	}

	tiers := make([]domain.RewardTier, len(rows))
	for i, row := range rows {
		tiers[i] = domain.RewardTier{ID: row.ID, Name: row.Name, PointsRequired: row.PointsRequired}
	}

	return tiers, nil
}

func (s *GormStore) CreateRewardTier(ctx context.Context, tier domain.RewardTier) (domain.RewardTier, error) {
	created, err := s.rewards.InsertTier(ctx, dao.RewardTier{Name: tier.Name, PointsRequired: tier.PointsRequired})
	if err != nil {
		return domain.RewardTier{}, fmt.Errorf("s.rewards.InsertTier -> %w", err)
	}

	return domain.RewardTier{ID: created.ID, Name: created.Name, PointsRequired: created.PointsRequired}, nil
}

func (s *GormStore) GrantReward(ctx context.Context, reward domain.UserReward) (bool, error) {
	granted, err := s.rewards.Grant(ctx, dao.UserReward{
		UserID:    reward.UserID,
		TierID:    reward.TierID,
		AwardedAt: reward.AwardedAt,
	})
	if err != nil {
		return false, fmt.Errorf("s.rewards.Grant -> %w", err)
	}

	return granted, nil
}
