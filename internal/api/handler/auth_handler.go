package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// AuthHandler handlers HTTP du module authentification
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler crée un AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login connexion
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "email ou mot de passe incorrect")
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11002, "compte désactivé")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Refresh rafraîchissement de la paire de tokens
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			response.Unauthorized(c, 11003, "refresh token invalide ou révoqué")
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11002, "compte désactivé")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout déconnexion : révoque le refresh token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me profil de l'utilisateur connecté
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, user)
}

// ChangePassword changement de mot de passe
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.UnprocessableEntity(c, 11004, "mot de passe actuel incorrect")
			return
		}
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
