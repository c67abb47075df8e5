package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
	pkgerrors "github.com/aumugisha-umu/seido-sub006/pkg/errors"
)

// ════════════════════════════════════════════════════════════
// Doubles en mémoire des Repository pour les tests de service
// ════════════════════════════════════════════════════════════

// ── Utilisateurs ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*model.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role string, _, _ int) ([]model.User, int64, error) {
	var out []model.User
	for _, user := range m.users {
		if role == "" || user.Role == role {
			out = append(out, *user)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) ListByTeam(_ context.Context, teamID string) ([]model.User, error) {
	var out []model.User
	for _, user := range m.users {
		if user.TeamID != nil && *user.TeamID == teamID {
			out = append(out, *user)
		}
	}
	return out, nil
}

// ── Équipes ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: map[string]*model.Team{}}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		team.TeamID = uuid.NewString()
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	team, ok := m.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return team, nil
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	var out []model.Team
	for _, team := range m.teams {
		out = append(out, *team)
	}
	return out, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.TeamID] = team
	return nil
}

// ── Immeubles ──

type mockBuildingRepo struct {
	buildings map[string]*model.Building
}

func newMockBuildingRepo() *mockBuildingRepo {
	return &mockBuildingRepo{buildings: map[string]*model.Building{}}
}

func (m *mockBuildingRepo) Create(_ context.Context, building *model.Building) error {
	if building.BuildingID == "" {
		building.BuildingID = uuid.NewString()
	}
	m.buildings[building.BuildingID] = building
	return nil
}

func (m *mockBuildingRepo) GetByID(_ context.Context, id string) (*model.Building, error) {
	building, ok := m.buildings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return building, nil
}

func (m *mockBuildingRepo) ListByTeam(_ context.Context, teamID string) ([]model.Building, error) {
	var out []model.Building
	for _, building := range m.buildings {
		if building.TeamID == teamID {
			out = append(out, *building)
		}
	}
	return out, nil
}

func (m *mockBuildingRepo) Update(_ context.Context, building *model.Building) error {
	m.buildings[building.BuildingID] = building
	return nil
}

func (m *mockBuildingRepo) Delete(_ context.Context, id string) error {
	delete(m.buildings, id)
	return nil
}

// ── Lots ──

type mockLotRepo struct {
	lots      map[string]*model.Lot
	buildings *mockBuildingRepo
}

func newMockLotRepo(buildings *mockBuildingRepo) *mockLotRepo {
	return &mockLotRepo{lots: map[string]*model.Lot{}, buildings: buildings}
}

func (m *mockLotRepo) Create(_ context.Context, lot *model.Lot) error {
	if lot.LotID == "" {
		lot.LotID = uuid.NewString()
	}
	m.lots[lot.LotID] = lot
	return nil
}

func (m *mockLotRepo) GetByID(_ context.Context, id string) (*model.Lot, error) {
	lot, ok := m.lots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// précharge l'immeuble parent comme le ferait GORM
	if lot.Building == nil {
		if building, ok := m.buildings.buildings[lot.BuildingID]; ok {
			lot.Building = building
		}
	}
	return lot, nil
}

func (m *mockLotRepo) ListByBuilding(_ context.Context, buildingID string) ([]model.Lot, error) {
	var out []model.Lot
	for _, lot := range m.lots {
		if lot.BuildingID == buildingID {
			out = append(out, *lot)
		}
	}
	return out, nil
}

func (m *mockLotRepo) ListByTenant(_ context.Context, tenantID string) ([]model.Lot, error) {
	var out []model.Lot
	for _, lot := range m.lots {
		if lot.TenantID != nil && *lot.TenantID == tenantID {
			out = append(out, *lot)
		}
	}
	return out, nil
}

func (m *mockLotRepo) Update(_ context.Context, lot *model.Lot) error {
	m.lots[lot.LotID] = lot
	return nil
}

func (m *mockLotRepo) Delete(_ context.Context, id string) error {
	delete(m.lots, id)
	return nil
}

// ── Interventions ──

type mockInterventionRepo struct {
	interventions map[string]*model.Intervention
}

func newMockInterventionRepo() *mockInterventionRepo {
	return &mockInterventionRepo{interventions: map[string]*model.Intervention{}}
}

func (m *mockInterventionRepo) Create(_ context.Context, itv *model.Intervention) error {
	if itv.InterventionID == "" {
		itv.InterventionID = uuid.NewString()
	}
	clone := *itv
	m.interventions[itv.InterventionID] = &clone
	return nil
}

func (m *mockInterventionRepo) GetByID(_ context.Context, id string) (*model.Intervention, error) {
	itv, ok := m.interventions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *itv
	return &clone, nil
}

func (m *mockInterventionRepo) Update(_ context.Context, itv *model.Intervention) error {
	clone := *itv
	m.interventions[itv.InterventionID] = &clone
	return nil
}

func (m *mockInterventionRepo) UpdateWithStatusGuard(_ context.Context, itv *model.Intervention, expectedStatus string) error {
	stored, ok := m.interventions[itv.InterventionID]
	if !ok || stored.Status != expectedStatus {
		return pkgerrors.ErrOptimisticLock
	}
	clone := *itv
	m.interventions[itv.InterventionID] = &clone
	return nil
}

func (m *mockInterventionRepo) List(_ context.Context, filter *repository.InterventionFilter, _, _ int) ([]model.Intervention, int64, error) {
	var out []model.Intervention
	for _, itv := range m.interventions {
		if filter != nil {
			if filter.TeamID != "" && itv.TeamID != filter.TeamID {
				continue
			}
			if filter.Status != "" && itv.Status != filter.Status {
				continue
			}
			if filter.RequestedBy != "" && itv.RequestedBy != filter.RequestedBy {
				continue
			}
		}
		out = append(out, *itv)
	}
	return out, int64(len(out)), nil
}

// ── Créneaux ──

type mockTimeSlotRepo struct {
	slots     map[string]*model.TimeSlot
	responses *mockTimeSlotResponseRepo
}

func newMockTimeSlotRepo(responses *mockTimeSlotResponseRepo) *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: map[string]*model.TimeSlot{}, responses: responses}
}

func (m *mockTimeSlotRepo) CreateBatch(_ context.Context, slots []model.TimeSlot) error {
	for i := range slots {
		if slots[i].TimeSlotID == "" {
			slots[i].TimeSlotID = uuid.NewString()
		}
		clone := slots[i]
		m.slots[slots[i].TimeSlotID] = &clone
	}
	return nil
}

func (m *mockTimeSlotRepo) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *slot
	clone.Responses, _ = m.responses.ListBySlot(ctx, id)
	return &clone, nil
}

func (m *mockTimeSlotRepo) ListByIntervention(ctx context.Context, interventionID string) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for id, slot := range m.slots {
		if slot.InterventionID == interventionID {
			clone := *slot
			clone.Responses, _ = m.responses.ListBySlot(ctx, id)
			out = append(out, clone)
		}
	}
	return out, nil
}

func (m *mockTimeSlotRepo) Update(_ context.Context, slot *model.TimeSlot) error {
	clone := *slot
	m.slots[slot.TimeSlotID] = &clone
	return nil
}

func (m *mockTimeSlotRepo) MarkSelected(_ context.Context, slotID string, flags model.TimeSlot) error {
	slot, ok := m.slots[slotID]
	if !ok || slot.Status == "selected" || slot.Status == "cancelled" {
		return pkgerrors.ErrOptimisticLock
	}
	slot.Status = "selected"
	slot.SelectedByManager = flags.SelectedByManager
	slot.SelectedByProvider = flags.SelectedByProvider
	slot.SelectedByTenant = flags.SelectedByTenant
	return nil
}

func (m *mockTimeSlotRepo) RejectOthers(_ context.Context, interventionID, winnerID string) error {
	for id, slot := range m.slots {
		if slot.InterventionID != interventionID || id == winnerID {
			continue
		}
		if slot.Status == "pending" || slot.Status == "requested" {
			slot.Status = "rejected"
		}
	}
	return nil
}

func (m *mockTimeSlotRepo) Cancel(_ context.Context, slotID, cancelledBy string) error {
	slot, ok := m.slots[slotID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	slot.Status = "cancelled"
	slot.CancelledBy = &cancelledBy
	return nil
}

func (m *mockTimeSlotRepo) DeleteByIntervention(_ context.Context, interventionID string) error {
	for id, slot := range m.slots {
		if slot.InterventionID != interventionID {
			continue
		}
		switch slot.Status {
		case "pending", "requested", "rejected":
			delete(m.slots, id)
			m.responses.deleteBySlot(id)
		}
	}
	return nil
}

func (m *mockTimeSlotRepo) UpdateSelectionFlags(_ context.Context, slotID string, manager, provider, tenant bool) error {
	slot, ok := m.slots[slotID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	slot.SelectedByManager = manager
	slot.SelectedByProvider = provider
	slot.SelectedByTenant = tenant
	return nil
}

// ── Réponses de créneaux ──

type mockTimeSlotResponseRepo struct {
	responses map[string]*model.TimeSlotResponse // clé "slotID|userID"
}

func newMockTimeSlotResponseRepo() *mockTimeSlotResponseRepo {
	return &mockTimeSlotResponseRepo{responses: map[string]*model.TimeSlotResponse{}}
}

func respKey(slotID, userID string) string { return slotID + "|" + userID }

func (m *mockTimeSlotResponseRepo) Upsert(_ context.Context, resp *model.TimeSlotResponse) error {
	clone := *resp
	m.responses[respKey(resp.TimeSlotID, resp.UserID)] = &clone
	return nil
}

func (m *mockTimeSlotResponseRepo) Get(_ context.Context, slotID, userID string) (*model.TimeSlotResponse, error) {
	resp, ok := m.responses[respKey(slotID, userID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *resp
	return &clone, nil
}

func (m *mockTimeSlotResponseRepo) ListBySlot(_ context.Context, slotID string) ([]model.TimeSlotResponse, error) {
	var out []model.TimeSlotResponse
	for key, resp := range m.responses {
		if strings.HasPrefix(key, slotID+"|") {
			out = append(out, *resp)
		}
	}
	return out, nil
}

func (m *mockTimeSlotResponseRepo) deleteBySlot(slotID string) {
	for key := range m.responses {
		if strings.HasPrefix(key, slotID+"|") {
			delete(m.responses, key)
		}
	}
}

// ── Rattachements ──

type mockAssignmentRepo struct {
	assignments map[string]*model.InterventionAssignment // clé "itvID|userID"
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: map[string]*model.InterventionAssignment{}}
}

func (m *mockAssignmentRepo) Upsert(_ context.Context, a *model.InterventionAssignment) error {
	clone := *a
	m.assignments[respKey(a.InterventionID, a.UserID)] = &clone
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, interventionID, userID string) error {
	delete(m.assignments, respKey(interventionID, userID))
	return nil
}

func (m *mockAssignmentRepo) Get(_ context.Context, interventionID, userID string) (*model.InterventionAssignment, error) {
	a, ok := m.assignments[respKey(interventionID, userID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *a
	return &clone, nil
}

func (m *mockAssignmentRepo) ListByIntervention(_ context.Context, interventionID string) ([]model.InterventionAssignment, error) {
	var out []model.InterventionAssignment
	for key, a := range m.assignments {
		if strings.HasPrefix(key, interventionID+"|") {
			out = append(out, *a)
		}
	}
	return out, nil
}

// ── Devis ──

type mockQuoteRepo struct {
	quotes map[string]*model.Quote
}

func newMockQuoteRepo() *mockQuoteRepo {
	return &mockQuoteRepo{quotes: map[string]*model.Quote{}}
}

func (m *mockQuoteRepo) Create(_ context.Context, quote *model.Quote) error {
	if quote.QuoteID == "" {
		quote.QuoteID = uuid.NewString()
	}
	clone := *quote
	m.quotes[quote.QuoteID] = &clone
	return nil
}

func (m *mockQuoteRepo) GetByID(_ context.Context, id string) (*model.Quote, error) {
	quote, ok := m.quotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *quote
	return &clone, nil
}

func (m *mockQuoteRepo) ListByIntervention(_ context.Context, interventionID string) ([]model.Quote, error) {
	var out []model.Quote
	for _, quote := range m.quotes {
		if quote.InterventionID == interventionID {
			out = append(out, *quote)
		}
	}
	return out, nil
}

func (m *mockQuoteRepo) Update(_ context.Context, quote *model.Quote) error {
	clone := *quote
	m.quotes[quote.QuoteID] = &clone
	return nil
}

func (m *mockQuoteRepo) HasActive(_ context.Context, interventionID string) (bool, error) {
	for _, quote := range m.quotes {
		if quote.InterventionID == interventionID && model.IsActiveQuoteStatus(quote.Status) {
			return true, nil
		}
	}
	return false, nil
}

// ── Journal d'activité ──

type mockActivityLogRepo struct {
	entries []model.ActivityLog
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Append(_ context.Context, entry *model.ActivityLog) error {
	if entry.ActivityLogID == "" {
		entry.ActivityLogID = uuid.NewString()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityLogRepo) ListByIntervention(_ context.Context, interventionID string) ([]model.ActivityLog, error) {
	var out []model.ActivityLog
	for _, entry := range m.entries {
		if entry.InterventionID == interventionID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// hasAction vrai si le journal contient l'action pour l'intervention
func (m *mockActivityLogRepo) hasAction(interventionID, action string) bool {
	for _, entry := range m.entries {
		if entry.InterventionID == interventionID && entry.Action == action {
			return true
		}
	}
	return false
}

// ── Notifications ──

type mockNotificationRepo struct {
	notifications []model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) CreateBatch(_ context.Context, ns []model.Notification) error {
	m.notifications = append(m.notifications, ns...)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].NotificationID == notificationID && m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}

// ── Assemblage ──

type testRepos struct {
	repo          *repository.Repository
	users         *mockUserRepo
	teams         *mockTeamRepo
	buildings     *mockBuildingRepo
	lots          *mockLotRepo
	interventions *mockInterventionRepo
	slots         *mockTimeSlotRepo
	responses     *mockTimeSlotResponseRepo
	assignments   *mockAssignmentRepo
	quotes        *mockQuoteRepo
	activity      *mockActivityLogRepo
	notifications *mockNotificationRepo
}

func newTestRepos() *testRepos {
	users := newMockUserRepo()
	teams := newMockTeamRepo()
	buildings := newMockBuildingRepo()
	lots := newMockLotRepo(buildings)
	interventions := newMockInterventionRepo()
	responses := newMockTimeSlotResponseRepo()
	slots := newMockTimeSlotRepo(responses)
	assignments := newMockAssignmentRepo()
	quotes := newMockQuoteRepo()
	activity := newMockActivityLogRepo()
	notifications := newMockNotificationRepo()

	return &testRepos{
		repo: &repository.Repository{
			User:             users,
			Team:             teams,
			Building:         buildings,
			Lot:              lots,
			Intervention:     interventions,
			TimeSlot:         slots,
			TimeSlotResponse: responses,
			Assignment:       assignments,
			Quote:            quotes,
			ActivityLog:      activity,
			Notification:     notifications,
		},
		users:         users,
		teams:         teams,
		buildings:     buildings,
		lots:          lots,
		interventions: interventions,
		slots:         slots,
		responses:     responses,
		assignments:   assignments,
		quotes:        quotes,
		activity:      activity,
		notifications: notifications,
	}
}
