package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// QuoteHandler handlers HTTP du module devis
type QuoteHandler struct {
	quoteSvc service.QuoteService
}

// NewQuoteHandler crée un QuoteHandler
func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// ListByIntervention devis d'une intervention
// GET /api/v1/interventions/:id/quotes
func (h *QuoteHandler) ListByIntervention(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	quotes, err := h.quoteSvc.ListByIntervention(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, quotes)
}

// Submit soumission du montant par le prestataire titulaire
// POST /api/v1/quotes/:id/submit
func (h *QuoteHandler) Submit(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	quote, err := h.quoteSvc.Submit(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, quote)
}

// Accept acceptation d'un devis soumis par un gestionnaire
// POST /api/v1/quotes/:id/accept
func (h *QuoteHandler) Accept(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	quote, err := h.quoteSvc.Accept(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, quote)
}

// Reject rejet d'un devis soumis
// POST /api/v1/quotes/:id/reject
func (h *QuoteHandler) Reject(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	quote, err := h.quoteSvc.Reject(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, quote)
}
