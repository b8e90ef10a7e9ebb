package services

import (
	"context"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/dto"
)

// ActivitySvcFacade manages school events.
type ActivitySvcFacade interface {
	// CreateActivity schedules an event. Teacher-created activities start
	// unapproved; admin-created ones are approved immediately.
	CreateActivity(ctx context.Context, actor domain.Actor, req dto.CreateActivityRequest) (*domain.Activity, error)

	// UpdateActivity updates an event. Staff only.
	UpdateActivity(ctx context.Context, actor domain.Actor, activityID string, req dto.UpdateActivityRequest) (*domain.Activity, error)

	// DeleteActivity soft deletes an event. Staff only.
	DeleteActivity(ctx context.Context, actor domain.Actor, activityID string) error

	// ApproveActivity makes a pending event visible to students. Admin only.
	ApproveActivity(ctx context.Context, actor domain.Actor, activityID string) (*domain.Activity, error)

	// GetActivity retrieves an event by ID. Students only see approved events.
	GetActivity(ctx context.Context, actor domain.Actor, activityID string) (*domain.Activity, error)

	// ListActivities lists events. Students only see approved events.
	ListActivities(ctx context.Context, actor domain.Actor, params dto.ListActivitiesParams) ([]domain.Activity, error)
}
