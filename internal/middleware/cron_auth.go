package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-series-engine/internal/config"
)

// CronAuthMiddleware protege os triggers do motor com o segredo
// compartilhado do scheduler externo. Segredo ausente na configuração é
// erro de configuração: rejeita sempre, antes de qualquer trabalho.
//
// allowQuery habilita ?secret= além do header Bearer (o serviço de
// backfill administrativo só consegue mandar query string).
func CronAuthMiddleware(cfg *config.Config, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.CronSecret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cron_secret_not_configured"})
			return
		}

		provided := bearerToken(c)
		if provided == "" && allowQuery {
			provided = c.Query("secret")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.CronSecret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_cron_secret"})
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
