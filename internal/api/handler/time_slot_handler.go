package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// TimeSlotHandler handlers HTTP de la planification des créneaux
type TimeSlotHandler struct {
	schedSvc service.SchedulingService
}

// NewTimeSlotHandler crée un TimeSlotHandler
func NewTimeSlotHandler(schedSvc service.SchedulingService) *TimeSlotHandler {
	return &TimeSlotHandler{schedSvc: schedSvc}
}

// ListByIntervention créneaux proposés pour une intervention
// GET /api/v1/interventions/:id/time-slots
func (h *TimeSlotHandler) ListByIntervention(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	slots, err := h.schedSvc.ListSlots(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, slots)
}

// Accept acceptation d'un créneau par une partie prenante.
// Si toutes les parties requises ont accepté, la confirmation
// automatique programme l'intervention dans la foulée.
// POST /api/v1/time-slots/:id/accept
func (h *TimeSlotHandler) Accept(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	slot, err := h.schedSvc.Accept(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, slot)
}

// Reject refus motivé d'un créneau
// POST /api/v1/time-slots/:id/reject
func (h *TimeSlotHandler) Reject(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.RejectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres de requête invalides")
		return
	}

	slot, err := h.schedSvc.Reject(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, slot)
}

// Withdraw retour en attente d'une réponse déjà exprimée
// POST /api/v1/time-slots/:id/withdraw
func (h *TimeSlotHandler) Withdraw(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	slot, err := h.schedSvc.Withdraw(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, slot)
}

// Cancel annulation d'un créneau par son proposeur ou un gestionnaire
// DELETE /api/v1/time-slots/:id
func (h *TimeSlotHandler) Cancel(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.schedSvc.CancelSlot(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// Choose sélection directe par un gestionnaire, sans attendre le consensus
// POST /api/v1/time-slots/:id/choose
func (h *TimeSlotHandler) Choose(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	slot, err := h.schedSvc.ChooseAsManager(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, slot)
}
