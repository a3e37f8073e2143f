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

type TemplateService interface {
	CreateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error)
	GetTemplate(ctx context.Context, id uint) (domain.RecurringTemplate, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]domain.RecurringTemplate, error)
	UpdateTemplate(ctx context.Context, template domain.RecurringTemplate) (domain.RecurringTemplate, error)
	SetTemplateActive(ctx context.Context, id uint, active bool) (domain.RecurringTemplate, error)
	DeleteTemplate(ctx context.Context, id uint) error
	RunTemplate(ctx context.Context, id uint) (domain.Lottery, bool, error)
}

type TemplateHandler struct {
	svc TemplateService
}

func NewTemplateHandler(svc TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// templateErr maps the errors every template endpoint can return.
func templateErr(ctx *gin.Context, op string, templateID uint, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrTemplateNotFound):
		response.RenderErr(ctx, response.ErrNotFound("template", "ID", templateID))
	case errors.Is(err, service.ErrTemplateNameExists):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.%s -> %w", op, err)))
	}
}

// HandleCreateTemplate godoc
// @Summary      Create a recurring lottery template
// @Description  An active template is scheduled and spawns its first lottery immediately.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request  body      request.TemplateRequest  true  "template settings"
// @Success      201      {object}  domain.RecurringTemplate
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /templates [post]
// @Security BearerAuth
func (h *TemplateHandler) HandleCreateTemplate(ctx *gin.Context) {
	var req request.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	template, err := h.svc.CreateTemplate(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		templateErr(ctx, "HandleCreateTemplate -> h.svc.CreateTemplate", 0, err)
		return
	}

	ctx.JSON(http.StatusCreated, template)
}

// HandleListTemplates godoc
// @Summary      List recurring templates
// @Tags         templates
// @Produce      json
// @Param        active  query     bool  false  "only active templates"
// @Success      200     {array}   domain.RecurringTemplate
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /templates [get]
// @Security BearerAuth
func (h *TemplateHandler) HandleListTemplates(ctx *gin.Context) {
	var query request.ListTemplatesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	templates, err := h.svc.ListTemplates(ctx.Request.Context(), query.ActiveOnly)
	if err != nil {
		templateErr(ctx, "HandleListTemplates -> h.svc.ListTemplates", 0, err)
		return
	}

	ctx.JSON(http.StatusOK, templates)
}

// HandleGetTemplate godoc
// @Summary      Get a recurring template
// @Tags         templates
// @Produce      json
// @Param        templateID  path      int  true  "Template ID"
// @Success      200         {object}  domain.RecurringTemplate
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /templates/{templateID} [get]
// @Security BearerAuth
func (h *TemplateHandler) HandleGetTemplate(ctx *gin.Context) {
	templateID, err := parseID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	template, err := h.svc.GetTemplate(ctx.Request.Context(), templateID)
	if err != nil {
		templateErr(ctx, "HandleGetTemplate -> h.svc.GetTemplate", templateID, err)
		return
	}

	ctx.JSON(http.StatusOK, template)
}

// HandleUpdateTemplate godoc
// @Summary      Replace a recurring template
// @Description  Lotteries already spawned keep their settings.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        templateID  path      int                      true  "Template ID"
// @Param        request     body      request.TemplateRequest  true  "template settings"
// @Success      200         {object}  domain.RecurringTemplate
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /templates/{templateID} [put]
// @Security BearerAuth
func (h *TemplateHandler) HandleUpdateTemplate(ctx *gin.Context) {
	templateID, err := parseID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.TemplateRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	template, err := h.svc.UpdateTemplate(ctx.Request.Context(), req.ToDomain(templateID))
	if err != nil {
		templateErr(ctx, "HandleUpdateTemplate -> h.svc.UpdateTemplate", templateID, err)
		return
	}

	ctx.JSON(http.StatusOK, template)
}

// HandleActivateTemplate godoc
// @Summary      Activate a recurring template
// @Tags         templates
// @Produce      json
// @Param        templateID  path      int  true  "Template ID"
// @Success      200         {object}  domain.RecurringTemplate
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /templates/{templateID}/activate [post]
// @Security BearerAuth
func (h *TemplateHandler) HandleActivateTemplate(ctx *gin.Context) {
	h.setActive(ctx, true)
}

// HandleDeactivateTemplate godoc
// @Summary      Deactivate a recurring template
// @Description  Stops generation; lotteries already spawned run to completion.
// @Tags         templates
// @Produce      json
// @Param        templateID  path      int  true  "Template ID"
// @Success      200         {object}  domain.RecurringTemplate
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /templates/{templateID}/deactivate [post]
// @Security BearerAuth
func (h *TemplateHandler) HandleDeactivateTemplate(ctx *gin.Context) {
	h.setActive(ctx, false)
}

func (h *TemplateHandler) setActive(ctx *gin.Context, active bool) {
	templateID, err := parseID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	template, err := h.svc.SetTemplateActive(ctx.Request.Context(), templateID, active)
	if err != nil {
		templateErr(ctx, "setActive -> h.svc.SetTemplateActive", templateID, err)
		return
	}

	ctx.JSON(http.StatusOK, template)
}

// HandleRunTemplate godoc
// @Summary      Spawn a lottery from a template now
// @Description  Inactive templates spawn nothing.
// @Tags         templates
// @Produce      json
// @Param        templateID  path      int  true  "Template ID"
// @Success      200         {object}  response.TemplateRunResponse
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /templates/{templateID}/run [post]
// @Security BearerAuth
func (h *TemplateHandler) HandleRunTemplate(ctx *gin.Context) {
	templateID, err := parseID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lottery, created, err := h.svc.RunTemplate(ctx.Request.Context(), templateID)
	if err != nil {
		templateErr(ctx, "HandleRunTemplate -> h.svc.RunTemplate", templateID, err)
		return
	}

	resp := response.TemplateRunResponse{Created: created}
	if created {
		resp.Lottery = &lottery
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleDeleteTemplate godoc
// @Summary      Delete a recurring template
// @Tags         templates
// @Param        templateID  path  int  true  "Template ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /templates/{templateID} [delete]
// @Security BearerAuth
func (h *TemplateHandler) HandleDeleteTemplate(ctx *gin.Context) {
	templateID, err := parseID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteTemplate(ctx.Request.Context(), templateID); err != nil {
		templateErr(ctx, "HandleDeleteTemplate -> h.svc.DeleteTemplate", templateID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
