package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// MustGetActor extrait l'identité complète injectée par le middleware JWT.
// Si l'injection a échoué, écrit une réponse 401 et retourne false ;
// l'appelant doit alors return immédiatement.
func MustGetActor(c *gin.Context) (*service.Actor, bool) {
	userID, ok := contextString(c, "user_id")
	if !ok || userID == "" {
		response.Unauthorized(c, 10002, "non authentifié")
		return nil, false
	}
	role, ok := contextString(c, "role")
	if !ok || role == "" {
		response.Unauthorized(c, 10002, "non authentifié")
		return nil, false
	}
	teamID, _ := contextString(c, "team_id")

	return &service.Actor{UserID: userID, Role: role, TeamID: teamID}, true
}

// MustGetUserID extrait uniquement le user_id du contexte
func MustGetUserID(c *gin.Context) (string, bool) {
	userID, ok := contextString(c, "user_id")
	if !ok || userID == "" {
		response.Unauthorized(c, 10002, "non authentifié")
		return "", false
	}
	return userID, true
}

func contextString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
