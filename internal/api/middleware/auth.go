package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/pkg/jwt"
	"github.com/aumugisha-umu/seido-sub006/pkg/redis"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// JWTAuth middleware d'authentification JWT
// Extrait et vérifie l'access token depuis Authorization: Bearer <token>.
// rdb nil : la liste noire est ignorée (mode dégradé sans révocation).
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "en-tête d'authentification manquant")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "format d'en-tête d'authentification invalide")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalide ou expiré")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "type de token invalide")
			c.Abort()
			return
		}

		if rdb != nil {
			if blacklisted, berr := rdb.IsBlacklisted(c.Request.Context(), claims.ID); berr == nil && blacklisted {
				response.Unauthorized(c, 10002, "token révoqué")
				c.Abort()
				return
			}
		}

		// injection de l'identité dans le contexte
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("team_id", claims.TeamID)

		c.Next()
	}
}

// RoleAuth middleware d'autorisation par rôle
// Vérifie que l'utilisateur courant porte l'un des rôles autorisés
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "non authentifié")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "accès non autorisé pour ce rôle")
		c.Abort()
	}
}
