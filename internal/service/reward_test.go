package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/memstore"
)

func TestRewardService_Award(t *testing.T) {
	store := memstore.New()
	svc := NewRewardService(store)
	ctx := context.Background()

	bronze, err := svc.CreateTier(ctx, domain.RewardTier{Name: "Bronze", PointsRequired: 10})
	require.NoError(t, err)
	silver, err := svc.CreateTier(ctx, domain.RewardTier{Name: "Silver", PointsRequired: 100})
	require.NoError(t, err)

	granted, err := svc.Award(ctx, store, 7, decimal.RequireFromString("15999.99"), base)
	require.NoError(t, err)
	assert.Equal(t, []domain.RewardTier{bronze}, granted)
	assert.Equal(t, int64(15), store.UserPoints(7))

	granted, err = svc.Award(ctx, store, 7, decimal.NewFromInt(90000), base)
	require.NoError(t, err)
	assert.Equal(t, []domain.RewardTier{silver}, granted)
	assert.Equal(t, int64(105), store.UserPoints(7))

	granted, err = svc.Award(ctx, store, 7, decimal.NewFromInt(999), base)
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.Equal(t, int64(105), store.UserPoints(7))
}

func TestRewardService_CreateTier_Validation(t *testing.T) {
	svc := NewRewardService(memstore.New())

	_, err := svc.CreateTier(context.Background(), domain.RewardTier{Name: "", PointsRequired: 10})
	assert.Error(t, err)

	_, err = svc.CreateTier(context.Background(), domain.RewardTier{Name: "Gold", PointsRequired: 0})
	assert.Error(t, err)

	tiers, err := svc.ListTiers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tiers)
}
