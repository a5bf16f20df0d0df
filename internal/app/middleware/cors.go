package middleware

import (
	"time"

	"imagehost/internal/app/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS настраивает политику кросс-доменных запросов из конфигурации.
// "*" в списке разрешает любые источники
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
			corsCfg.AllowOrigins = nil
			break
		}
		corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, origin)
	}

	return cors.New(corsCfg)
}
