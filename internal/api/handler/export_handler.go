package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aumugisha-umu/seido-sub006/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler handlers HTTP des exports (tableur, calendrier)
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler crée un ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// InterventionsXLSX export tableur des interventions de l'équipe
// GET /api/v1/export/interventions.xlsx
func (h *ExportHandler) InterventionsXLSX(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.InterventionsXLSX(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

// InterventionICS invitation calendrier du rendez-vous programmé
// GET /api/v1/interventions/:id/calendar.ics
func (h *ExportHandler) InterventionICS(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.InterventionICS(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeICS, data)
}
