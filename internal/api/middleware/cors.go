package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(allowedDomains) == 0 {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
	} else {
		conf.AllowOrigins = allowedDomains
	}

	return cors.New(conf)
}
