package services

import (
	"context"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/dto"
)

// AssignmentSvcFacade manages assignments and student submissions.
type AssignmentSvcFacade interface {
	// CreateAssignment publishes an assignment. Teacher/admin only.
	CreateAssignment(ctx context.Context, actor domain.Actor, req dto.CreateAssignmentRequest) (*domain.Assignment, error)

	// UpdateAssignment updates an assignment. Only the publishing teacher or an
	// admin may update it.
	UpdateAssignment(ctx context.Context, actor domain.Actor, assignmentID string, req dto.UpdateAssignmentRequest) (*domain.Assignment, error)

	// DeleteAssignment soft deletes an assignment.
	DeleteAssignment(ctx context.Context, actor domain.Actor, assignmentID string) error

	// GetAssignment retrieves an assignment by ID.
	GetAssignment(ctx context.Context, actor domain.Actor, assignmentID string) (*domain.Assignment, error)

	// ListAssignments lists assignments matching the filter.
	ListAssignments(ctx context.Context, actor domain.Actor, params dto.ListAssignmentsParams) ([]domain.Assignment, error)

	// SubmitAssignment records a student's submission, replacing any earlier
	// one for the same assignment.
	SubmitAssignment(ctx context.Context, actor domain.Actor, assignmentID string, req dto.SubmitAssignmentRequest) (*domain.AssignmentSubmission, error)

	// ListSubmissions lists the submissions for an assignment. Only the
	// publishing teacher or an admin may read them.
	ListSubmissions(ctx context.Context, actor domain.Actor, assignmentID string) ([]domain.AssignmentSubmission, error)
}
