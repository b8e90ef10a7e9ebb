package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/dto"
	"github.com/grschool/sms_backend/internal/middleware"
)

// notificationService stores notifications and fires best-effort pushes. The
// stored row is the durable record; push delivery may silently fail.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	pushSender       portssvc.PushSender
}

// NewNotificationService creates a new notification service. pushSender may be
// nil when push delivery is not configured.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, pushSender portssvc.PushSender) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		pushSender:       pushSender,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) Send(ctx context.Context, actor domain.Actor, req dto.SendNotificationRequest) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanSendNotifications() {
		return 0, apperrors.ErrForbidden
	}

	priority := domain.NotificationPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}

	now := time.Now()
	sent := 0
	for _, recipientID := range req.RecipientIDs {
		notification := domain.Notification{
			NotificationID: uuid.NewString(),
			RecipientID:    recipientID,
			Title:          req.Title,
			Body:           req.Body,
			Category:       domain.NotificationCategory(req.Category),
			Priority:       priority,
			Link:           req.Link,
			ExpiresAt:      req.ExpiresAt,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if err := s.Notify(ctx, notification); err != nil {
			logger.Warn("failed to deliver notification",
				slog.String("recipient_id", recipientID), slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	logger.Info("notifications sent",
		slog.Int("requested", len(req.RecipientIDs)), slog.Int("delivered", sent))
	return sent, nil
}

// Notify stores a single notification and fires a best-effort push. Used by
// other services for system-generated messages; no role check applies.
func (s *notificationService) Notify(ctx context.Context, notification domain.Notification) error {
	if notification.RecipientID == "" {
		return fmt.Errorf("%w: notification recipient is required", apperrors.ErrValidation)
	}
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.NewString()
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.pushSender != nil {
		if err := s.pushSender.SendPush(ctx, notification); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("push delivery failed",
				slog.String("notification_id", notification.NotificationID), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (s *notificationService) ListMine(ctx context.Context, actor domain.Actor, params dto.ListNotificationsParams) ([]domain.Notification, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.notificationRepo.FindNotificationsByRecipient(ctx, actor.UserID, time.Now(), limit, params.Offset)
}

func (s *notificationService) CountUnread(ctx context.Context, actor domain.Actor) (int, error) {
	return s.notificationRepo.CountUnread(ctx, actor.UserID, time.Now())
}

func (s *notificationService) MarkRead(ctx context.Context, actor domain.Actor, notificationID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, actor.UserID, time.Now())
}
