package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen longueur maximale acceptée pour un Request-ID externe,
// protège les logs contre l'injection
const requestIDMaxLen = 64

// RequestID middleware d'identifiant de corrélation
// Lit X-Request-ID entrant, en génère un UUID sinon ;
// injecté dans le contexte et renvoyé en en-tête de réponse
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
