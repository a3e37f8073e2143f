package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/isk-lottery/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.HealthResponse
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
