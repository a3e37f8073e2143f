package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/isk-lottery/internal/pkg/jwthelper"
)

const signingKey = "middleware-test-key"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/private", NewAuthenticator(signingKey).VerifyJWT(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString(OperatorKey))
	})

	return r
}

func TestVerifyJWT(t *testing.T) {
	token, err := jwthelper.GenerateToken([]byte(signingKey), "admin", "lottery-cli", time.Hour)
	require.NoError(t, err)

	other, err := jwthelper.GenerateToken([]byte("another-key"), "admin", "lottery-cli", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		userAgent  string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, "lottery-cli", http.StatusOK},
		{"missing header", "", "lottery-cli", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, "lottery-cli", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + other, "lottery-cli", http.StatusUnauthorized},
		{"different client", "Bearer " + token, "browser", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			req.Header.Set("User-Agent", tt.userAgent)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "admin", rec.Body.String())
			}
		})
	}
}

func TestConfigCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ConfigCORS([]string{"https://ops.example.com"}))
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "https://ops.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
