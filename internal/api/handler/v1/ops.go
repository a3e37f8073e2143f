package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/isk-lottery/internal/api/handler/v1/response"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

type Sweeper interface {
	SweepExpiredLotteries(ctx context.Context) (service.SweepResult, error)
}

// OpsHandler exposes the two scheduled jobs for manual runs.
type OpsHandler struct {
	scanner service.PaymentScanner
	sweeper Sweeper
}

func NewOpsHandler(scanner service.PaymentScanner, sweeper Sweeper) *OpsHandler {
	return &OpsHandler{
		scanner: scanner,
		sweeper: sweeper,
	}
}

// HandleScan godoc
// @Summary      Reconcile pending wallet payments now
// @Tags         ops
// @Produce      json
// @Success      200  {object}  service.ScanResult
// @Failure      500  {object}  response.Err
// @Router       /ops/scan [post]
// @Security BearerAuth
func (h *OpsHandler) HandleScan(ctx *gin.Context) {
	result, err := h.scanner.ScanPendingPayments(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleScan -> h.scanner.ScanPendingPayments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleSweep godoc
// @Summary      Close and draw expired lotteries now
// @Description  Reports skipped=true when another sweep holds the lease.
// @Tags         ops
// @Produce      json
// @Success      200  {object}  service.SweepResult
// @Failure      500  {object}  response.Err
// @Router       /ops/sweep [post]
// @Security BearerAuth
func (h *OpsHandler) HandleSweep(ctx *gin.Context) {
	result, err := h.sweeper.SweepExpiredLotteries(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSweep -> h.sweeper.SweepExpiredLotteries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
