package services

import (
	"context"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/dto"
)

// PushSender delivers a best-effort push for a stored notification. Delivery
// failures are logged, never surfaced to the caller.
type PushSender interface {
	SendPush(ctx context.Context, notification domain.Notification) error
}

// NotificationSvcFacade manages the per-user notification feed.
type NotificationSvcFacade interface {
	// Send stores a notification per recipient and fires a best-effort push.
	// Staff only.
	Send(ctx context.Context, actor domain.Actor, req dto.SendNotificationRequest) (int, error)

	// Notify stores a single system-generated notification for a user. Used by
	// other services (payment approved, fees overdue); bypasses role checks.
	Notify(ctx context.Context, notification domain.Notification) error

	// ListMine lists the actor's unexpired notifications, newest first.
	ListMine(ctx context.Context, actor domain.Actor, params dto.ListNotificationsParams) ([]domain.Notification, error)

	// CountUnread returns the actor's unread notification count.
	CountUnread(ctx context.Context, actor domain.Actor) (int, error)

	// MarkRead flags one of the actor's notifications as read.
	MarkRead(ctx context.Context, actor domain.Actor, notificationID string) error
}
