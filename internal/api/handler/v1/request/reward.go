package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

type CreateRewardTierRequest struct {
	Name           string `json:"name" example:"Gold"`
	PointsRequired int64  `json:"points_required" example:"500"`
}

func (req *CreateRewardTierRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.PointsRequired, validation.Required, validation.Min(int64(1))),
	)
}

func (req *CreateRewardTierRequest) ToDomain() domain.RewardTier {
	return domain.RewardTier{Name: req.Name, PointsRequired: req.PointsRequired}
}
