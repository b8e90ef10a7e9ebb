package domain

import "time"

// NotificationCategory groups notifications for filtering on the client.
type NotificationCategory string

const (
	CategoryFees       NotificationCategory = "FEES"
	CategoryAssignment NotificationCategory = "ASSIGNMENT"
	CategoryActivity   NotificationCategory = "ACTIVITY"
	CategoryGeneral    NotificationCategory = "GENERAL"
)

// NotificationPriority orders delivery urgency.
type NotificationPriority string

const (
	PriorityHigh   NotificationPriority = "HIGH"
	PriorityNormal NotificationPriority = "NORMAL"
	PriorityLow    NotificationPriority = "LOW"
)

// Notification is a message delivered to a single user. Push delivery is
// fire-and-forget; the row is the durable record.
type Notification struct {
	NotificationID string               `json:"notificationID"` // Primary key (UUID)
	RecipientID    string               `json:"recipientID"`    // FK -> users.user_id
	Title          string               `json:"title"`
	Body           string               `json:"body"`
	Category       NotificationCategory `json:"category"`
	Priority       NotificationPriority `json:"priority"`
	Link           string               `json:"link,omitempty"`
	ExpiresAt      *time.Time           `json:"expiresAt,omitempty"`
	IsRead         bool                 `json:"isRead"`
	AuditFields
}
