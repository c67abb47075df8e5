package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/internal/workflow"
	pkgerrors "github.com/aumugisha-umu/seido-sub006/pkg/errors"
	"github.com/aumugisha-umu/seido-sub006/pkg/response"
)

// handleServiceError mappe les erreurs métier vers les statuts HTTP.
// Ordre : introuvable (404), droits (403), conflits d'état (409),
// validations métier (422), puis erreur interne.
func handleServiceError(c *gin.Context, err error) {
	switch {
	// ── 404 ──
	case errors.Is(err, service.ErrInterventionNotFound),
		errors.Is(err, service.ErrTimeSlotNotFound),
		errors.Is(err, service.ErrResponseNotFound),
		errors.Is(err, service.ErrQuoteNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrBuildingNotFound),
		errors.Is(err, service.ErrLotNotFound):
		response.NotFound(c, 10006, err.Error())

	// ── 403 ──
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, err.Error())

	// ── 409 : conflits d'état ──
	case errors.Is(err, pkgerrors.ErrOptimisticLock),
		errors.Is(err, service.ErrTimeSlotCancelled),
		errors.Is(err, service.ErrTimeSlotResolved),
		errors.Is(err, service.ErrPlanningClosed),
		errors.Is(err, service.ErrQuoteResolved),
		errors.Is(err, service.ErrQuoteNotSubmitted),
		errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 14002, err.Error())

	// ── 422 : validations métier ──
	case errors.Is(err, service.ErrReasonTooShort),
		errors.Is(err, service.ErrSlotCountMismatch),
		errors.Is(err, service.ErrInvalidSlot),
		errors.Is(err, service.ErrGuidanceTooLong),
		errors.Is(err, service.ErrLotRequired),
		errors.Is(err, service.ErrProvidersRequired),
		errors.Is(err, service.ErrOwnSlotResponse),
		errors.Is(err, service.ErrNotScheduled):
		response.UnprocessableEntity(c, 14003, err.Error())

	default:
		// transition illégale du cycle de vie
		var terr *workflow.TransitionError
		if errors.As(err, &terr) {
			response.Conflict(c, 14001, terr.Error())
			return
		}
		response.InternalError(c)
	}
}
