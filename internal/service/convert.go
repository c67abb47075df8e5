package service

import (
	"time"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
)

// ════════════════════════════════════════════════════════════
// Conversion modèle → DTO
// ════════════════════════════════════════════════════════════

func toUserResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:       u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Phone:    u.Phone,
		IsActive: u.IsActive,
	}
	if u.Team != nil {
		resp.Team = &dto.TeamBrief{ID: u.Team.TeamID, Name: u.Team.Name}
	}
	return resp
}

func toTeamResponse(t *model.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:        t.TeamID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func toBuildingResponse(b *model.Building) *dto.BuildingResponse {
	resp := &dto.BuildingResponse{
		ID:         b.BuildingID,
		TeamID:     b.TeamID,
		Name:       b.Name,
		Address:    b.Address,
		PostalCode: b.PostalCode,
		City:       b.City,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	for i := range b.Lots {
		resp.Lots = append(resp.Lots, *toLotResponse(&b.Lots[i]))
	}
	return resp
}

func toLotResponse(l *model.Lot) *dto.LotResponse {
	resp := &dto.LotResponse{
		ID:         l.LotID,
		BuildingID: l.BuildingID,
		Reference:  l.Reference,
		Floor:      l.Floor,
		Category:   l.Category,
		TenantID:   l.TenantID,
	}
	if l.Tenant != nil {
		resp.Tenant = toUserResponse(l.Tenant)
	}
	if l.Building != nil {
		resp.Building = &dto.BuildingBrief{
			ID:      l.Building.BuildingID,
			Name:    l.Building.Name,
			Address: l.Building.Address,
		}
	}
	return resp
}

func toInterventionResponse(itv *model.Intervention) *dto.InterventionResponse {
	resp := &dto.InterventionResponse{
		ID:                 itv.InterventionID,
		TeamID:             itv.TeamID,
		LotID:              itv.LotID,
		BuildingID:         itv.BuildingID,
		Title:              itv.Title,
		Description:        itv.Description,
		Type:               itv.Type,
		Urgency:            itv.Urgency,
		Status:             itv.Status,
		SchedulingMethod:   itv.SchedulingMethod,
		RequestedBy:        itv.RequestedBy,
		EstimatedCost:      itv.EstimatedCost,
		FinalCost:          itv.FinalCost,
		ProviderGuidance:   itv.ProviderGuidance,
		ProviderReport:     itv.ProviderReport,
		TenantSatisfaction: itv.TenantSatisfaction,
		RejectionReason:    itv.RejectionReason,
		CancellationReason: itv.CancellationReason,
		CreatedAt:          itv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          itv.UpdatedAt.Format(time.RFC3339),
	}
	if itv.ScheduledDate != nil {
		s := itv.ScheduledDate.Format(time.RFC3339)
		resp.ScheduledDate = &s
	}
	if itv.Lot != nil {
		resp.Lot = toLotResponse(itv.Lot)
	}
	return resp
}

func toTimeSlotDTO(slot *model.TimeSlot) *dto.TimeSlotDTO {
	resp := &dto.TimeSlotDTO{
		ID:                 slot.TimeSlotID,
		InterventionID:     slot.InterventionID,
		SlotDate:           slot.SlotDate.Format("2006-01-02"),
		StartTime:          slot.StartTime,
		EndTime:            slot.EndTime,
		Status:             slot.Status,
		ProposedBy:         slot.ProposedBy,
		SelectedByManager:  slot.SelectedByManager,
		SelectedByProvider: slot.SelectedByProvider,
		SelectedByTenant:   slot.SelectedByTenant,
	}
	for _, r := range slot.Responses {
		resp.Responses = append(resp.Responses, dto.SlotResponseDTO{
			UserID:    r.UserID,
			UserRole:  r.UserRole,
			Response:  r.Response,
			Notes:     r.Notes,
			UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func toQuoteResponse(q *model.Quote) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:             q.QuoteID,
		InterventionID: q.InterventionID,
		ProviderID:     q.ProviderID,
		Status:         q.Status,
		Amount:         q.Amount,
		Description:    q.Description,
		CreatedAt:      q.CreatedAt.Format(time.RFC3339),
	}
	if q.Provider != nil {
		resp.Provider = toUserResponse(q.Provider)
	}
	return resp
}

func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:          n.NotificationID,
		Type:        n.Type,
		Title:       n.Title,
		Content:     n.Content,
		IsRead:      n.IsRead,
		RelatedType: n.RelatedType,
		RelatedID:   n.RelatedID,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
}

func toActivityLogResponse(entry *model.ActivityLog) *dto.ActivityLogResponse {
	return &dto.ActivityLogResponse{
		ID:        entry.ActivityLogID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}
