package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, ctx.Param(name))
	}

	return uint(id), nil
}
