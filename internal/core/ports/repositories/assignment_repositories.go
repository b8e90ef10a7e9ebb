package repositories

import (
	"context"
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	Form    string
	Class   string
	Subject string
	Limit   int
	Offset  int
}

// AssignmentReader defines read operations for assignments.
type AssignmentReader interface {
	// FindAssignmentByID retrieves an assignment with the teacher name resolved.
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)

	// FindAssignments lists assignments matching the filter, newest due date first,
	// with teacher names resolved.
	FindAssignments(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error)

	// FindSubmissionsByAssignment lists submissions for an assignment.
	FindSubmissionsByAssignment(ctx context.Context, assignmentID string) ([]domain.AssignmentSubmission, error)
}

// AssignmentWriter defines write operations for assignments.
type AssignmentWriter interface {
	// SaveAssignment persists a new assignment.
	SaveAssignment(ctx context.Context, assignment domain.Assignment) error

	// UpdateAssignment updates title, description and due date.
	UpdateAssignment(ctx context.Context, assignment domain.Assignment) error

	// UpsertSubmission inserts a student's submission, replacing any earlier one
	// for the same assignment.
	UpsertSubmission(ctx context.Context, submission domain.AssignmentSubmission) error

	// MarkAssignmentDeleted soft deletes an assignment.
	MarkAssignmentDeleted(ctx context.Context, assignmentID string, deletedAt time.Time, deletedBy string) error
}

// AssignmentRepositoryFacade combines all assignment repository interfaces.
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
