package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// PointsPerISK is the prize amount that earns one loyalty point.
var PointsPerISK = decimal.NewFromInt(1000)

type RewardTier struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	PointsRequired int64  `json:"points_required"`
}

func (t RewardTier) Validate() error {
	return validation.ValidateStruct(
		&t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&t.PointsRequired, validation.Required, validation.Min(int64(1))),
	)
}

type UserReward struct {
	UserID    uint      `json:"user_id"`
	TierID    uint      `json:"tier_id"`
	AwardedAt time.Time `json:"awarded_at"`
}

// PointsForPrize is floor(prize / 1000).
func PointsForPrize(prize decimal.Decimal) int64 {
	if !prize.IsPositive() {
		return 0
	}

	return prize.Div(PointsPerISK).Floor().IntPart()
}
