package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
	"github.com/aumugisha-umu/seido-sub006/internal/workflow"
)

// ErrNotScheduled l'intervention n'a pas de rendez-vous à exporter
var ErrNotScheduled = fmt.Errorf("aucun rendez-vous planifié pour cette intervention")

// ExportService exports bureautiques : rapport Excel des interventions
// de l'équipe et invitation calendrier (.ics) d'un rendez-vous confirmé
type ExportService interface {
	InterventionsXLSX(ctx context.Context, actor *Actor) ([]byte, string, error)
	InterventionICS(ctx context.Context, interventionID string, actor *Actor) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService crée le service d'export
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const exportSheetName = "Interventions"

var exportHeaders = []string{
	"Référence", "Titre", "Type", "Urgence", "Statut",
	"Demandée le", "Rendez-vous", "Coût estimé", "Coût final",
}

// InterventionsXLSX rapport Excel des interventions de l'équipe de l'acteur
func (s *exportService) InterventionsXLSX(ctx context.Context, actor *Actor) ([]byte, string, error) {
	if !actor.IsManager() || actor.TeamID == "" {
		return nil, "", ErrPermissionDenied
	}

	interventions, _, err := s.repo.Intervention.List(ctx, &repository.InterventionFilter{
		TeamID: actor.TeamID,
	}, 0, 1000)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, "", err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, "", err
		}
	}

	for row, itv := range interventions {
		values := []interface{}{
			itv.InterventionID,
			itv.Title,
			itv.Type,
			itv.Urgency,
			itv.Status,
			itv.CreatedAt.Format("02/01/2006"),
			"",
			floatOrEmpty(itv.EstimatedCost),
			floatOrEmpty(itv.FinalCost),
		}
		if itv.ScheduledDate != nil {
			values[6] = itv.ScheduledDate.Format("02/01/2006 15:04")
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("interventions_%s.xlsx", time.Now().Format("2006-01-02"))
	s.logger.Info("export Excel généré",
		zap.String("team_id", actor.TeamID),
		zap.Int("rows", len(interventions)))

	return buf.Bytes(), filename, nil
}

// InterventionICS invitation calendrier du rendez-vous confirmé.
// L'heure de fin provient du créneau retenu ; à défaut, une heure par défaut.
func (s *exportService) InterventionICS(ctx context.Context, interventionID string, actor *Actor) ([]byte, string, error) {
	itv, err := s.repo.Intervention.GetByID(ctx, interventionID)
	if err != nil {
		return nil, "", ErrInterventionNotFound
	}

	ok, err := isParty(ctx, s.repo, actor, itv)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrPermissionDenied
	}
	if itv.ScheduledDate == nil {
		return nil, "", ErrNotScheduled
	}

	start := *itv.ScheduledDate
	end := start.Add(time.Hour)
	if selected := s.selectedSlot(ctx, interventionID); selected != nil {
		if slotEnd, serr := workflow.ScheduledDate(selected.SlotDate, selected.EndTime); serr == nil {
			end = slotEnd
		}
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//SEIDO//Interventions//FR")

	event := cal.AddEvent(fmt.Sprintf("intervention-%s@seido", itv.InterventionID))
	event.SetCreatedTime(time.Now())
	event.SetDtStampTime(time.Now())
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(itv.Title)
	event.SetDescription(itv.Description)
	if itv.Building != nil {
		event.SetLocation(itv.Building.Address)
	}

	filename := fmt.Sprintf("intervention_%s.ics", start.Format("2006-01-02"))
	return []byte(cal.Serialize()), filename, nil
}

// selectedSlot créneau retenu de l'intervention, nil si aucun
func (s *exportService) selectedSlot(ctx context.Context, interventionID string) *model.TimeSlot {
	slots, err := s.repo.TimeSlot.ListByIntervention(ctx, interventionID)
	if err != nil {
		return nil
	}
	for i := range slots {
		if slots[i].Status == workflow.SlotStatusSelected {
			return &slots[i]
		}
	}
	return nil
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
