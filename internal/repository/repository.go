package repository

import "gorm.io/gorm"

// Repository point d'entrée agrégé de tous les Repository
type Repository struct {
	User             UserRepository
	Team             TeamRepository
	Building         BuildingRepository
	Lot              LotRepository
	Intervention     InterventionRepository
	TimeSlot         TimeSlotRepository
	TimeSlotResponse TimeSlotResponseRepository
	Assignment       AssignmentRepository
	Quote            QuoteRepository
	ActivityLog      ActivityLogRepository
	Notification     NotificationRepository
}

// NewRepository crée l'agrégat Repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Team:             NewTeamRepo(db),
		Building:         NewBuildingRepo(db),
		Lot:              NewLotRepo(db),
		Intervention:     NewInterventionRepo(db),
		TimeSlot:         NewTimeSlotRepo(db),
		TimeSlotResponse: NewTimeSlotResponseRepo(db),
		Assignment:       NewAssignmentRepo(db),
		Quote:            NewQuoteRepo(db),
		ActivityLog:      NewActivityLogRepo(db),
		Notification:     NewNotificationRepo(db),
	}
}
