package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/isk-lottery/internal/api/handler/v1/request"
	"github.com/vietanh2810/isk-lottery/internal/api/handler/v1/response"
	"github.com/vietanh2810/isk-lottery/internal/config"
	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/pkg/jwthelper"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Operator, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login as the operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "credentials"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	operator, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrOperatorNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), operator.Username, ctx.Request.UserAgent(), h.conf.JWTTTL)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.conf.JWTTTL.Seconds()),
		Operator:  operator,
	})
}
