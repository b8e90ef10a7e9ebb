// Package push holds the outbound push delivery used by the notification
// service. Delivery over FCM/APNs happens in a separate gateway; this process
// only logs what it would hand off.
package push

import (
	"context"
	"log/slog"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/middleware"

	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
)

type logSender struct{}

// NewLogSender returns a PushSender that records deliveries in the log stream.
func NewLogSender() portssvc.PushSender {
	return &logSender{}
}

var _ portssvc.PushSender = (*logSender)(nil)

func (s *logSender) SendPush(ctx context.Context, notification domain.Notification) error {
	middleware.GetLoggerFromCtx(ctx).Info("Push notification dispatched",
		slog.String("notification_id", notification.NotificationID),
		slog.String("recipient_id", notification.RecipientID),
		slog.String("category", string(notification.Category)),
		slog.String("priority", string(notification.Priority)),
	)
	return nil
}
