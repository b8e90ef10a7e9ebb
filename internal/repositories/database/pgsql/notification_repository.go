package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	"github.com/grschool/sms_backend/internal/models"
	"github.com/grschool/sms_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	db *pgxpool.Pool
}

func newPgxNotificationRepository(db *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{db: db}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) FindNotificationsByRecipient(ctx context.Context, recipientID string, asOf time.Time, limit int, offset int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, recipient_id, title, body, category, priority, link, expires_at, is_read,
			created_at, created_by, last_updated_at, last_updated_by
		FROM notifications
		WHERE recipient_id = $1 AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;`

	rows, err := r.db.Query(ctx, query, recipientID, asOf, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.RecipientID,
			&m.Title,
			&m.Body,
			&m.Category,
			&m.Priority,
			&m.Link,
			&m.ExpiresAt,
			&m.IsRead,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, mapping.ToDomainNotification(m))
	}
	return notifications, rows.Err()
}

func (r *PgxNotificationRepository) CountUnread(ctx context.Context, recipientID string, asOf time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND is_read = FALSE AND (expires_at IS NULL OR expires_at > $2);`

	var count int
	if err := r.db.QueryRow(ctx, query, recipientID, asOf).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	query := `
		INSERT INTO notifications (notification_id, recipient_id, title, body, category, priority, link, expires_at, is_read,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.NotificationID,
		m.RecipientID,
		m.Title,
		m.Body,
		m.Category,
		m.Priority,
		m.Link,
		m.ExpiresAt,
		m.IsRead,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// MarkNotificationRead flags the notification read, scoped to the recipient so
// users cannot touch each other's rows.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, recipientID string, now time.Time) error {
	query := `
		UPDATE notifications SET is_read = TRUE, last_updated_at = $3, last_updated_by = $2
		WHERE notification_id = $1 AND recipient_id = $2;
	`
	tag, err := r.db.Exec(ctx, query, notificationID, recipientID, now)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
