package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// InterventionHandler handlers HTTP du module interventions
type InterventionHandler struct {
	itvSvc service.InterventionService
}

// NewInterventionHandler crée un InterventionHandler
func NewInterventionHandler(itvSvc service.InterventionService) *InterventionHandler {
	return &InterventionHandler{itvSvc: itvSvc}
}

// ────────────────────────── CRUD ──────────────────────────

// Create création d'une demande d'intervention
// POST /api/v1/interventions
func (h *InterventionHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, itv)
}

// Get détail d'une intervention
// GET /api/v1/interventions/:id
func (h *InterventionHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	itv, err := h.itvSvc.GetByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// List liste paginée, scopée selon le rôle de l'acteur
// GET /api/v1/interventions
func (h *InterventionHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.InterventionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	items, total, err := h.itvSvc.List(c.Request.Context(), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// ────────────────────────── Cycle de vie ──────────────────────────

// Approve approbation de la demande par un gestionnaire
// POST /api/v1/interventions/:id/approve
func (h *InterventionHandler) Approve(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	itv, err := h.itvSvc.Approve(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// Reject rejet motivé de la demande
// POST /api/v1/interventions/:id/reject
func (h *InterventionHandler) Reject(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.RejectInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.Reject(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// RequestQuote demande de devis auprès de prestataires
// POST /api/v1/interventions/:id/quote-requests
func (h *InterventionHandler) RequestQuote(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.RequestQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.RequestQuote(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// StartPlanning ouverture de la phase de planification
// POST /api/v1/interventions/:id/start-planning
func (h *InterventionHandler) StartPlanning(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	itv, err := h.itvSvc.StartPlanning(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// Program programmation : choix du mode et dépôt des créneaux
// POST /api/v1/interventions/:id/program
func (h *InterventionHandler) Program(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ProgramInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.Program(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// Start démarrage des travaux par le prestataire
// POST /api/v1/interventions/:id/start
func (h *InterventionHandler) Start(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	itv, err := h.itvSvc.Start(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// Complete clôture des travaux côté prestataire
// POST /api/v1/interventions/:id/complete
func (h *InterventionHandler) Complete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CompleteInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.CompleteByProvider(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// Validate validation des travaux par le locataire
// POST /api/v1/interventions/:id/validate
func (h *InterventionHandler) Validate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.ValidateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.ValidateByTenant(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// Finalize clôture administrative par le gestionnaire
// POST /api/v1/interventions/:id/finalize
func (h *InterventionHandler) Finalize(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.FinalizeInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.FinalizeByManager(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// Cancel annulation motivée depuis tout statut non terminal
// POST /api/v1/interventions/:id/cancel
func (h *InterventionHandler) Cancel(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CancelInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	itv, err := h.itvSvc.Cancel(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, itv)
}

// ────────────────────────── Affectations et historique ──────────────────────────

// AssignUser affectation d'un participant
// POST /api/v1/interventions/:id/assignments
func (h *InterventionHandler) AssignUser(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	if err := h.itvSvc.AssignUser(c.Request.Context(), c.Param("id"), &req, actor); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// UnassignUser retrait d'un participant
// DELETE /api/v1/interventions/:id/assignments/:userID
func (h *InterventionHandler) UnassignUser(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.itvSvc.UnassignUser(c.Request.Context(), c.Param("id"), c.Param("userID"), actor); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListAssignments participants affectés
// GET /api/v1/interventions/:id/assignments
func (h *InterventionHandler) ListAssignments(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	assignments, err := h.itvSvc.ListAssignments(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, assignments)
}

// ListActivity journal d'activité de l'intervention
// GET /api/v1/interventions/:id/activity
func (h *InterventionHandler) ListActivity(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	logs, err := h.itvSvc.ListActivity(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, logs)
}
