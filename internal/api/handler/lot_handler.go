package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// LotHandler handlers HTTP du module lots
type LotHandler struct {
	lotSvc service.LotService
}

// NewLotHandler crée un LotHandler
func NewLotHandler(lotSvc service.LotService) *LotHandler {
	return &LotHandler{lotSvc: lotSvc}
}

// Create création d'un lot
// POST /api/v1/lots
func (h *LotHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	lot, err := h.lotSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, lot)
}

// Get détail d'un lot
// GET /api/v1/lots/:id
func (h *LotHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	lot, err := h.lotSvc.GetByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, lot)
}

// ListMine lots occupés par le locataire connecté
// GET /api/v1/lots/mine
func (h *LotHandler) ListMine(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	lots, err := h.lotSvc.ListMine(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, lots)
}

// Update mise à jour d'un lot
// PUT /api/v1/lots/:id
func (h *LotHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	lot, err := h.lotSvc.Update(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, lot)
}

// Delete suppression d'un lot
// DELETE /api/v1/lots/:id
func (h *LotHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.lotSvc.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
