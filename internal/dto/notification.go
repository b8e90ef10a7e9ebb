package dto

import (
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// SendNotificationRequest delivers a message to one or more users.
type SendNotificationRequest struct {
	RecipientIDs []string   `json:"recipientIDs" binding:"required,min=1"`
	Title        string     `json:"title" binding:"required"`
	Body         string     `json:"body" binding:"required"`
	Category     string     `json:"category" binding:"required,oneof=FEES ASSIGNMENT ACTIVITY GENERAL"`
	Priority     string     `json:"priority" binding:"omitempty,oneof=HIGH NORMAL LOW"`
	Link         string     `json:"link"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

// ListNotificationsParams defines query parameters for a user's inbox.
type ListNotificationsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// NotificationResponse is the public shape of a notification.
type NotificationResponse struct {
	NotificationID string     `json:"notificationID"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	Category       string     `json:"category"`
	Priority       string     `json:"priority"`
	Link           string     `json:"link,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	IsRead         bool       `json:"isRead"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// UnreadCountResponse reports the recipient's unread notification count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// ToNotificationResponse converts a domain.Notification to its response shape.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Body:           n.Body,
		Category:       string(n.Category),
		Priority:       string(n.Priority),
		Link:           n.Link,
		ExpiresAt:      n.ExpiresAt,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of domain.Notification to responses.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = ToNotificationResponse(&n)
	}
	return out
}
