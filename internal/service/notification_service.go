package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
	"github.com/aumugisha-umu/seido-sub006/pkg/push"
)

// NotificationService notifications in-app et push
type NotificationService interface {
	// Notify persiste une notification par destinataire puis pousse
	// vers la passerelle webhook (best-effort pour le push)
	Notify(ctx context.Context, userIDs []string, typ, title, content, relatedType, relatedID string) error
	List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}

type notificationService struct {
	repo     *repository.Repository
	notifier *push.Notifier // nil si aucune passerelle configurée
	logger   *zap.Logger
}

// NewNotificationService crée le service notifications
func NewNotificationService(repo *repository.Repository, notifier *push.Notifier, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, notifier: notifier, logger: logger}
}

func (s *notificationService) Notify(ctx context.Context, userIDs []string, typ, title, content, relatedType, relatedID string) error {
	if len(userIDs) == 0 {
		return nil
	}

	var relType, relID *string
	if relatedType != "" {
		relType = &relatedType
	}
	if relatedID != "" {
		relID = &relatedID
	}

	notifications := make([]model.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, model.Notification{
			UserID:      userID,
			Type:        typ,
			Title:       title,
			Content:     content,
			RelatedType: relType,
			RelatedID:   relID,
		})
	}

	if err := s.repo.Notification.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	if s.notifier != nil {
		for _, userID := range userIDs {
			msg := &push.Message{
				UserID:      userID,
				Type:        typ,
				Title:       title,
				Content:     content,
				RelatedType: relatedType,
				RelatedID:   relatedID,
			}
			if err := s.notifier.Send(ctx, msg); err != nil {
				s.logger.Warn("échec d'envoi push",
					zap.String("user_id", userID),
					zap.Error(err))
			}
		}
	}

	return nil
}

func (s *notificationService) List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByUser(ctx, userID, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, *toNotificationResponse(&notifications[i]))
	}
	return items, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	return s.repo.Notification.MarkRead(ctx, notificationID, userID)
}
