package middlewares

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campuskit/course-file-service/config"
)

func CORSMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if cfg.CORS.AllowDomains != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowDomains, ",")
	}
	if cfg.CORS.GlobalDomain != "" {
		globalDomain := cfg.CORS.GlobalDomain
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return strings.HasSuffix(origin, globalDomain)
		}
	}
	if corsConfig.AllowOrigins == nil && corsConfig.AllowOriginFunc == nil {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}

	return cors.New(corsConfig)
}
