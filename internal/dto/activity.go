package dto

import (
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// CreateActivityRequest schedules a school event.
type CreateActivityRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Form        string    `json:"form"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
}

// UpdateActivityRequest defines the data allowed for updating an activity.
type UpdateActivityRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

// ListActivitiesParams defines query parameters for listing activities.
type ListActivitiesParams struct {
	Form     string `form:"form"`
	Upcoming bool   `form:"upcoming"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

// ActivityResponse is the public shape of an activity.
type ActivityResponse struct {
	ActivityID  string    `json:"activityID"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Form        string    `json:"form,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	IsApproved  bool      `json:"isApproved"`
}

// ToActivityResponse converts a domain.Activity to its response shape.
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ActivityID:  a.ActivityID,
		Title:       a.Title,
		Description: a.Description,
		Venue:       a.Venue,
		Form:        a.Form,
		StartsAt:    a.StartsAt,
		EndsAt:      a.EndsAt,
		IsApproved:  a.IsApproved,
	}
}

// ToActivityResponses converts a slice of domain.Activity to responses.
func ToActivityResponses(activities []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		out[i] = ToActivityResponse(&a)
	}
	return out
}
