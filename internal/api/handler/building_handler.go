package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// BuildingHandler handlers HTTP du module immeubles
type BuildingHandler struct {
	buildingSvc service.BuildingService
	lotSvc      service.LotService
}

// NewBuildingHandler crée un BuildingHandler
func NewBuildingHandler(buildingSvc service.BuildingService, lotSvc service.LotService) *BuildingHandler {
	return &BuildingHandler{buildingSvc: buildingSvc, lotSvc: lotSvc}
}

// Create création d'un immeuble
// POST /api/v1/buildings
func (h *BuildingHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	building, err := h.buildingSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, building)
}

// Get détail d'un immeuble
// GET /api/v1/buildings/:id
func (h *BuildingHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	building, err := h.buildingSvc.GetByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, building)
}

// List immeubles visibles par l'acteur
// GET /api/v1/buildings
func (h *BuildingHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	buildings, err := h.buildingSvc.List(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, buildings)
}

// Update mise à jour d'un immeuble
// PUT /api/v1/buildings/:id
func (h *BuildingHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	building, err := h.buildingSvc.Update(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, building)
}

// Delete suppression d'un immeuble
// DELETE /api/v1/buildings/:id
func (h *BuildingHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.buildingSvc.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListLots lots d'un immeuble
// GET /api/v1/buildings/:id/lots
func (h *BuildingHandler) ListLots(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	lots, err := h.lotSvc.ListByBuilding(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, lots)
}
