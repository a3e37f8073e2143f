package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/isk-lottery/internal/api/handler/v1/response"
	"github.com/vietanh2810/isk-lottery/internal/pkg/jwthelper"
)

// OperatorKey is the gin context key holding the authenticated operator name.
const OperatorKey = "operator"

const bearerPrefix = "Bearer "

var (
	errMissingToken = errors.New("missing bearer token")
	errAgentChanged = errors.New("token was issued to a different client")
)

type Authenticator struct {
	key []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{key: []byte(signingKey)}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		if claims.UserAgent != "" && claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errAgentChanged))
			return
		}

		ctx.Set(OperatorKey, claims.Subject)
		ctx.Next()
	}
}
