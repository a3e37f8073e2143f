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
	"github.com/vietanh2810/isk-lottery/internal/repository"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

type LotteryService interface {
	CreateLottery(ctx context.Context, lottery domain.Lottery) (domain.Lottery, error)
	GetLottery(ctx context.Context, id uint) (domain.Lottery, error)
	ListLotteries(ctx context.Context, statuses []domain.LotteryStatus) ([]domain.Lottery, error)
	CancelLottery(ctx context.Context, id uint) (domain.Lottery, error)
	DeleteLottery(ctx context.Context, id uint) error
	ListTickets(ctx context.Context, lotteryID uint) ([]domain.Ticket, error)
	ListWinners(ctx context.Context, lotteryID uint) ([]domain.Winner, error)
	SetWinnerDistributed(ctx context.Context, winnerID uint, distributed bool) (domain.Winner, error)
	ListAnomalies(ctx context.Context, filter repository.AnomalyFilter) ([]domain.Anomaly, error)
	AcknowledgeAnomaly(ctx context.Context, id uint) error
}

type LotteryHandler struct {
	svc LotteryService
}

func NewLotteryHandler(svc LotteryService) *LotteryHandler {
	return &LotteryHandler{svc: svc}
}

// HandleCreateLottery godoc
// @Summary      Create a lottery
// @Description  Opens a lottery with a freshly generated reference. Players enter by sending ISK with the reference as reason.
// @Tags         lotteries
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateLotteryRequest  true  "lottery settings"
// @Success      201      {object}  domain.Lottery
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /lotteries [post]
// @Security BearerAuth
func (h *LotteryHandler) HandleCreateLottery(ctx *gin.Context) {
	var req request.CreateLotteryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lottery, err := h.svc.CreateLottery(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateLottery -> h.svc.CreateLottery -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, lottery)
}

// HandleListLotteries godoc
// @Summary      List lotteries
// @Tags         lotteries
// @Produce      json
// @Param        status  query     []string  false  "filter by status (repeatable)"  collectionFormat(multi)
// @Success      200     {array}   domain.Lottery
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /lotteries [get]
// @Security BearerAuth
func (h *LotteryHandler) HandleListLotteries(ctx *gin.Context) {
	var query request.ListLotteriesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lotteries, err := h.svc.ListLotteries(ctx.Request.Context(), query.Statuses())
	if err != nil {
		err = fmt.Errorf("v1.HandleListLotteries -> h.svc.ListLotteries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, lotteries)
}

// HandleGetLottery godoc
// @Summary      Get a lottery
// @Tags         lotteries
// @Produce      json
// @Param        lotteryID  path      int  true  "Lottery ID"
// @Success      200        {object}  domain.Lottery
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /lotteries/{lotteryID} [get]
// @Security BearerAuth
func (h *LotteryHandler) HandleGetLottery(ctx *gin.Context) {
	lotteryID, err := parseID(ctx, "lotteryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lottery, err := h.svc.GetLottery(ctx.Request.Context(), lotteryID)
	if err != nil {
		if errors.Is(err, service.ErrLotteryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lottery", "ID", lotteryID))
			return
		}

		err = fmt.Errorf("v1.HandleGetLottery -> h.svc.GetLottery -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, lottery)
}

// HandleCancelLottery godoc
// @Summary      Cancel a lottery
// @Description  Only active or pending lotteries can be cancelled. No winners are drawn.
// @Tags         lotteries
// @Produce      json
// @Param        lotteryID  path      int  true  "Lottery ID"
// @Success      200        {object}  domain.Lottery
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /lotteries/{lotteryID}/cancel [post]
// @Security BearerAuth
func (h *LotteryHandler) HandleCancelLottery(ctx *gin.Context) {
	lotteryID, err := parseID(ctx, "lotteryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lottery, err := h.svc.CancelLottery(ctx.Request.Context(), lotteryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLotteryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("lottery", "ID", lotteryID))
		case errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCancelLottery -> h.svc.CancelLottery -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, lottery)
}

// HandleDeleteLottery godoc
// @Summary      Delete a lottery
// @Description  Removes the lottery with its tickets, winners and linked anomalies.
// @Tags         lotteries
// @Param        lotteryID  path  int  true  "Lottery ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /lotteries/{lotteryID} [delete]
// @Security BearerAuth
func (h *LotteryHandler) HandleDeleteLottery(ctx *gin.Context) {
	lotteryID, err := parseID(ctx, "lotteryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteLottery(ctx.Request.Context(), lotteryID); err != nil {
		if errors.Is(err, service.ErrLotteryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lottery", "ID", lotteryID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteLottery -> h.svc.DeleteLottery -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListTickets godoc
// @Summary      List the tickets of a lottery
// @Tags         lotteries
// @Produce      json
// @Param        lotteryID  path      int  true  "Lottery ID"
// @Success      200        {array}   domain.Ticket
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /lotteries/{lotteryID}/tickets [get]
// @Security BearerAuth
func (h *LotteryHandler) HandleListTickets(ctx *gin.Context) {
	lotteryID, err := parseID(ctx, "lotteryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tickets, err := h.svc.ListTickets(ctx.Request.Context(), lotteryID)
	if err != nil {
		if errors.Is(err, service.ErrLotteryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lottery", "ID", lotteryID))
			return
		}

		err = fmt.Errorf("v1.HandleListTickets -> h.svc.ListTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleListWinners godoc
// @Summary      List the winners of a lottery
// @Tags         lotteries
// @Produce      json
// @Param        lotteryID  path      int  true  "Lottery ID"
// @Success      200        {array}   domain.Winner
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /lotteries/{lotteryID}/winners [get]
// @Security BearerAuth
func (h *LotteryHandler) HandleListWinners(ctx *gin.Context) {
	lotteryID, err := parseID(ctx, "lotteryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	winners, err := h.svc.ListWinners(ctx.Request.Context(), lotteryID)
	if err != nil {
		if errors.Is(err, service.ErrLotteryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lottery", "ID", lotteryID))
			return
		}

		err = fmt.Errorf("v1.HandleListWinners -> h.svc.ListWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, winners)
}

// HandleSetWinnerDistributed godoc
// @Summary      Mark a prize as paid out
// @Description  An empty body marks the prize as distributed; {"distributed": false} reverts it.
// @Tags         winners
// @Accept       json
// @Produce      json
// @Param        winnerID  path      int                            true   "Winner ID"
// @Param        request   body      request.SetDistributedRequest  false  "distribution flag"
// @Success      200       {object}  domain.Winner
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /winners/{winnerID}/distributed [post]
// @Security BearerAuth
func (h *LotteryHandler) HandleSetWinnerDistributed(ctx *gin.Context) {
	winnerID, err := parseID(ctx, "winnerID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SetDistributedRequest
	if ctx.Request.ContentLength > 0 {
		if err = ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	winner, err := h.svc.SetWinnerDistributed(ctx.Request.Context(), winnerID, req.Value())
	if err != nil {
		if errors.Is(err, service.ErrWinnerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("winner", "ID", winnerID))
			return
		}

		err = fmt.Errorf("v1.HandleSetWinnerDistributed -> h.svc.SetWinnerDistributed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, winner)
}

// HandleListAnomalies godoc
// @Summary      List payment anomalies
// @Tags         anomalies
// @Produce      json
// @Param        lottery_id  query     int     false  "only anomalies linked to this lottery"
// @Param        kind        query     string  false  "anomaly kind"
// @Success      200         {array}   domain.Anomaly
// @Failure      400         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /anomalies [get]
// @Security BearerAuth
func (h *LotteryHandler) HandleListAnomalies(ctx *gin.Context) {
	var query request.ListAnomaliesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	anomalies, err := h.svc.ListAnomalies(ctx.Request.Context(), repository.AnomalyFilter{
		LotteryID: query.LotteryID,
		Kind:      domain.AnomalyKind(query.Kind),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleListAnomalies -> h.svc.ListAnomalies -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, anomalies)
}

// HandleAcknowledgeAnomaly godoc
// @Summary      Acknowledge an anomaly
// @Description  Resolving an anomaly deletes it.
// @Tags         anomalies
// @Param        anomalyID  path  int  true  "Anomaly ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /anomalies/{anomalyID} [delete]
// @Security BearerAuth
func (h *LotteryHandler) HandleAcknowledgeAnomaly(ctx *gin.Context) {
	anomalyID, err := parseID(ctx, "anomalyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.AcknowledgeAnomaly(ctx.Request.Context(), anomalyID); err != nil {
		if errors.Is(err, service.ErrAnomalyNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("anomaly", "ID", anomalyID))
			return
		}

		err = fmt.Errorf("v1.HandleAcknowledgeAnomaly -> h.svc.AcknowledgeAnomaly -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
