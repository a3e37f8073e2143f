package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON body of every failed request. The wrapped error is only
// exposed for client errors; server errors are logged and replaced by the
// status text.
type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.StatusText
	}

	return e.Err.Error()
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error, expose bool) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
	}
	if expose && err != nil {
		e.ErrorText = err.Error()
	}

	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, true)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, true)
}

// ErrWrongCredentials hides which of username or password was wrong.
func ErrWrongCredentials(err error) *Err {
	e := newErr(http.StatusUnauthorized, err, false)
	e.ErrorText = "wrong username or password"

	return e
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, true)
}

func ErrNotFound(resource, field string, value any) *Err {
	return newErr(http.StatusNotFound, fmt.Errorf("%s with %s %v not found", resource, field, value), true)
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, true)
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, false)
}
