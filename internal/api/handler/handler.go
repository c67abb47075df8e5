package handler

import "github.com/aumugisha-umu/seido-sub006/internal/service"

// Handler agrégat de tous les handlers HTTP
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Team         *TeamHandler
	Building     *BuildingHandler
	Lot          *LotHandler
	Intervention *InterventionHandler
	TimeSlot     *TimeSlotHandler
	Quote        *QuoteHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler crée l'agrégat Handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Team:         NewTeamHandler(svc.Team),
		Building:     NewBuildingHandler(svc.Building, svc.Lot),
		Lot:          NewLotHandler(svc.Lot),
		Intervention: NewInterventionHandler(svc.Intervention),
		TimeSlot:     NewTimeSlotHandler(svc.Scheduling),
		Quote:        NewQuoteHandler(svc.Quote),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
