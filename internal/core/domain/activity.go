package domain

import "time"

// Activity is a school event (sports day, trip, club meeting) visible to
// students once approved.
type Activity struct {
	ActivityID  string    `json:"activityID"` // Primary key (UUID)
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Form        string    `json:"form,omitempty"` // Empty means all forms
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	IsApproved  bool      `json:"isApproved"`
	ApprovedBy  string    `json:"approvedBy,omitempty"`
	AuditFields
}
