package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/pkg/redis"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// RateLimit limitation de débit par fenêtre fixe Redis
// limit : nombre maximal de requêtes dans la fenêtre
// rdb nil ou en erreur : laisse passer (même stratégie de dégradation
// que la liste noire de tokens)
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "trop de requêtes, veuillez réessayer plus tard")
			c.Abort()
			return
		}

		c.Next()
	}
}
