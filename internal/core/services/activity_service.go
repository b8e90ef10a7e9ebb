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

// activityService manages school events. Teacher-created events wait for admin
// approval before students can see them.
type activityService struct {
	activityRepo portsrepo.ActivityRepositoryFacade
}

// NewActivityService creates a new activity service.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade) portssvc.ActivitySvcFacade {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

func (s *activityService) CreateActivity(ctx context.Context, actor domain.Actor, req dto.CreateActivityRequest) (*domain.Activity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanManageActivities() {
		return nil, apperrors.ErrForbidden
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("%w: activity must end after it starts", apperrors.ErrValidation)
	}

	now := time.Now()
	activity := domain.Activity{
		ActivityID:  uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		Form:        req.Form,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if actor.Role == domain.RoleAdmin {
		activity.IsApproved = true
		activity.ApprovedBy = actor.UserID
	}

	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		return nil, err
	}

	logger.Info("activity created",
		slog.String("activity_id", activity.ActivityID), slog.Bool("approved", activity.IsApproved))

	return &activity, nil
}

func (s *activityService) UpdateActivity(ctx context.Context, actor domain.Actor, activityID string, req dto.UpdateActivityRequest) (*domain.Activity, error) {
	if !actor.Role.CanManageActivities() {
		return nil, apperrors.ErrForbidden
	}

	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Venue != nil {
		activity.Venue = *req.Venue
	}
	if req.StartsAt != nil {
		activity.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		activity.EndsAt = *req.EndsAt
	}
	if !activity.EndsAt.After(activity.StartsAt) {
		return nil, fmt.Errorf("%w: activity must end after it starts", apperrors.ErrValidation)
	}
	activity.LastUpdatedAt = time.Now()
	activity.LastUpdatedBy = actor.UserID

	if err := s.activityRepo.UpdateActivity(ctx, *activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) DeleteActivity(ctx context.Context, actor domain.Actor, activityID string) error {
	if !actor.Role.CanManageActivities() {
		return apperrors.ErrForbidden
	}
	if _, err := s.activityRepo.FindActivityByID(ctx, activityID); err != nil {
		return err
	}
	return s.activityRepo.MarkActivityDeleted(ctx, activityID, time.Now(), actor.UserID)
}

func (s *activityService) ApproveActivity(ctx context.Context, actor domain.Actor, activityID string) (*domain.Activity, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.IsApproved {
		return activity, nil
	}

	now := time.Now()
	if err := s.activityRepo.ApproveActivity(ctx, activityID, actor.UserID, now); err != nil {
		return nil, err
	}
	activity.IsApproved = true
	activity.ApprovedBy = actor.UserID
	activity.LastUpdatedAt = now
	activity.LastUpdatedBy = actor.UserID
	return activity, nil
}

func (s *activityService) GetActivity(ctx context.Context, actor domain.Actor, activityID string) (*domain.Activity, error) {
	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleStudent && !activity.IsApproved {
		return nil, apperrors.ErrNotFound
	}
	return activity, nil
}

func (s *activityService) ListActivities(ctx context.Context, actor domain.Actor, params dto.ListActivitiesParams) ([]domain.Activity, error) {
	filter := portsrepo.ActivityFilter{
		Form:         params.Form,
		ApprovedOnly: actor.Role == domain.RoleStudent,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.Upcoming {
		now := time.Now()
		filter.From = &now
	}
	return s.activityRepo.FindActivities(ctx, filter)
}
