package repositories

import (
	"context"
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// NotificationReader defines read operations for notifications.
type NotificationReader interface {
	// FindNotificationsByRecipient lists a user's unexpired notifications,
	// newest first.
	FindNotificationsByRecipient(ctx context.Context, recipientID string, asOf time.Time, limit int, offset int) ([]domain.Notification, error)

	// CountUnread returns the recipient's unread, unexpired notification count.
	CountUnread(ctx context.Context, recipientID string, asOf time.Time) (int, error)
}

// NotificationWriter defines write operations for notifications.
type NotificationWriter interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkNotificationRead flags the notification read, scoped to the recipient
	// so users cannot touch each other's rows.
	MarkNotificationRead(ctx context.Context, notificationID string, recipientID string, now time.Time) error
}

// NotificationRepositoryFacade combines the notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
