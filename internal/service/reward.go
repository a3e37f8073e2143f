package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository"
)

type RewardService struct {
	store repository.RewardStore
}

func NewRewardService(store repository.RewardStore) *RewardService {
	return &RewardService{
		store: store,
	}
}

func (s *RewardService) ListTiers(ctx context.Context) ([]domain.RewardTier, error) {
	tiers, err := s.store.ListRewardTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListRewardTiers -> %w", err)
	}

	return tiers, nil
}

func (s *RewardService) CreateTier(ctx context.Context, tier domain.RewardTier) (domain.RewardTier, error) {
	if err := tier.Validate(); err != nil {
		return domain.RewardTier{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.store.CreateRewardTier(ctx, tier)
	if err != nil {
		return domain.RewardTier{}, fmt.Errorf("s.store.CreateRewardTier -> %w", err)
	}

	return created, nil
}

// Award credits loyalty points for a prize and grants every tier the user has
// newly reached. It runs inside the caller's unit of work.
func (s *RewardService) Award(ctx context.Context, tx repository.RewardStore, userID uint, prize decimal.Decimal, now time.Time) ([]domain.RewardTier, error) {
	points := domain.PointsForPrize(prize)
	if points == 0 {
		return nil, nil
	}

	total, err := tx.AddUserPoints(ctx, userID, points)
	if err != nil {
		return nil, fmt.Errorf("tx.AddUserPoints -> %w", err)
	}

	tiers, err := tx.ListRewardTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("tx.ListRewardTiers -> %w", err)
	}

	var granted []domain.RewardTier
	for _, tier := range tiers {
		if tier.PointsRequired > total {
			continue
		}

		isNew, err := tx.GrantReward(ctx, domain.UserReward{UserID: userID, TierID: tier.ID, AwardedAt: now})
		if err != nil {
			return nil, fmt.Errorf("tx.GrantReward -> %w", err)
		}
		if isNew {
			granted = append(granted, tier)
		}
	}

	return granted, nil
}
