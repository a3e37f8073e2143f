package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/isk-lottery/internal/api/handler/v1/request"
	"github.com/vietanh2810/isk-lottery/internal/api/handler/v1/response"
	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

type RewardService interface {
	ListTiers(ctx context.Context) ([]domain.RewardTier, error)
	CreateTier(ctx context.Context, tier domain.RewardTier) (domain.RewardTier, error)
}

type RewardHandler struct {
	svc RewardService
}

func NewRewardHandler(svc RewardService) *RewardHandler {
	return &RewardHandler{svc: svc}
}

// HandleListRewardTiers godoc
// @Summary      List loyalty reward tiers
// @Tags         rewards
// @Produce      json
// @Success      200  {array}   domain.RewardTier
// @Failure      500  {object}  response.Err
// @Router       /rewards/tiers [get]
// @Security BearerAuth
func (h *RewardHandler) HandleListRewardTiers(ctx *gin.Context) {
	tiers, err := h.svc.ListTiers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRewardTiers -> h.svc.ListTiers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tiers)
}

// HandleCreateRewardTier godoc
// @Summary      Create a loyalty reward tier
// @Description  Winners earn one point per 1000 ISK of prize and unlock every tier whose threshold they reach.
// @Tags         rewards
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateRewardTierRequest  true  "tier"
// @Success      201      {object}  domain.RewardTier
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /rewards/tiers [post]
// @Security BearerAuth
func (h *RewardHandler) HandleCreateRewardTier(ctx *gin.Context) {
	var req request.CreateRewardTierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tier, err := h.svc.CreateTier(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateRewardTier -> h.svc.CreateTier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, tier)
}
