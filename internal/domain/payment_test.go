package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLooksLikeReference(t *testing.T) {
	tests := []struct {
		memo string
		want bool
	}{
		{"LOTTERY-0123456789", true},
		{"lottery-42", true},
		{"  Lottery-0000000001 ", true},
		{"for the lottery", true},
		{"lotteryman", false},
		{"mylottery-1", false},
		{"rent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.memo, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeReference(tt.memo))
		})
	}
}

func TestNormalizeReference(t *testing.T) {
	assert.Equal(t, "LOTTERY-0123456789", NormalizeReference("  lottery-0123456789\n"))
}

func TestPointsForPrize(t *testing.T) {
	assert.Equal(t, int64(0), PointsForPrize(decimal.Zero))
	assert.Equal(t, int64(0), PointsForPrize(decimal.NewFromInt(999)))
	assert.Equal(t, int64(1), PointsForPrize(decimal.NewFromInt(1999)))
	assert.Equal(t, int64(105), PointsForPrize(decimal.RequireFromString("105000.99")))
	assert.Equal(t, int64(0), PointsForPrize(decimal.NewFromInt(-5000)))
}

func TestRewardTier_Validate(t *testing.T) {
	assert.NoError(t, RewardTier{Name: "Gold", PointsRequired: 500}.Validate())
	assert.Error(t, RewardTier{Name: "", PointsRequired: 500}.Validate())
	assert.Error(t, RewardTier{Name: "Gold"}.Validate())
}

func TestDirect(t *testing.T) {
	n := Direct(7, "Hi", "there", SeverityInfo)
	if assert.NotNil(t, n.Recipient) {
		assert.Equal(t, uint(7), *n.Recipient)
	}
	assert.Nil(t, Broadcast("Hi", "all", SeverityInfo).Recipient)
}
