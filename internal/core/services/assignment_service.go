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

// assignmentService manages assignments and submissions. Publishing is limited
// to teachers and admins; submissions to the student's own account.
type assignmentService struct {
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	schoolRepo     portsrepo.SchoolRepositoryFacade
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(assignmentRepo portsrepo.AssignmentRepositoryFacade, schoolRepo portsrepo.SchoolRepositoryFacade) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		schoolRepo:     schoolRepo,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) CreateAssignment(ctx context.Context, actor domain.Actor, req dto.CreateAssignmentRequest) (*domain.Assignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanPublishAssignments() {
		return nil, apperrors.ErrForbidden
	}
	if req.DueDate.Before(time.Now()) {
		return nil, fmt.Errorf("%w: due date must be in the future", apperrors.ErrValidation)
	}

	// Resolve the teacher profile so the assignment is attributed to it rather
	// than the raw user. Admins publish under their user ID.
	teacherID := actor.UserID
	if actor.Role == domain.RoleTeacher {
		teacher, err := s.schoolRepo.FindTeacherByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		teacherID = teacher.TeacherID
	}

	now := time.Now()
	assignment := domain.Assignment{
		AssignmentID: uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Subject:      req.Subject,
		Form:         req.Form,
		Class:        req.Class,
		TeacherID:    teacherID,
		DueDate:      req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.assignmentRepo.SaveAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	logger.Info("assignment published",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("form", assignment.Form), slog.String("subject", assignment.Subject))

	return &assignment, nil
}

// canEdit reports whether the actor may modify the assignment: its publishing
// teacher or an admin.
func (s *assignmentService) canEdit(ctx context.Context, actor domain.Actor, assignment *domain.Assignment) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if actor.Role != domain.RoleTeacher {
		return false
	}
	teacher, err := s.schoolRepo.FindTeacherByUserID(ctx, actor.UserID)
	if err != nil {
		return false
	}
	return teacher.TeacherID == assignment.TeacherID
}

func (s *assignmentService) UpdateAssignment(ctx context.Context, actor domain.Actor, assignmentID string, req dto.UpdateAssignmentRequest) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(ctx, actor, assignment) {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.Subject != nil {
		assignment.Subject = *req.Subject
	}
	if req.DueDate != nil {
		assignment.DueDate = *req.DueDate
	}
	assignment.LastUpdatedAt = time.Now()
	assignment.LastUpdatedBy = actor.UserID

	if err := s.assignmentRepo.UpdateAssignment(ctx, *assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, actor domain.Actor, assignmentID string) error {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if !s.canEdit(ctx, actor, assignment) {
		return apperrors.ErrForbidden
	}
	return s.assignmentRepo.MarkAssignmentDeleted(ctx, assignmentID, time.Now(), actor.UserID)
}

func (s *assignmentService) GetAssignment(ctx context.Context, actor domain.Actor, assignmentID string) (*domain.Assignment, error) {
	return s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
}

func (s *assignmentService) ListAssignments(ctx context.Context, actor domain.Actor, params dto.ListAssignmentsParams) ([]domain.Assignment, error) {
	filter := portsrepo.AssignmentFilter{
		Form:    params.Form,
		Class:   params.Class,
		Subject: params.Subject,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	// Students see their own form's assignments only.
	if actor.Role == domain.RoleStudent {
		student, err := s.schoolRepo.FindStudentByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		filter.Form = student.Form
	}

	return s.assignmentRepo.FindAssignments(ctx, filter)
}

func (s *assignmentService) SubmitAssignment(ctx context.Context, actor domain.Actor, assignmentID string, req dto.SubmitAssignmentRequest) (*domain.AssignmentSubmission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleStudent {
		return nil, apperrors.ErrForbidden
	}
	if req.Content == "" && req.AttachmentURL == "" {
		return nil, fmt.Errorf("%w: submission needs content or an attachment", apperrors.ErrValidation)
	}

	if _, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	student, err := s.schoolRepo.FindStudentByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission := domain.AssignmentSubmission{
		SubmissionID:  uuid.NewString(),
		AssignmentID:  assignmentID,
		StudentID:     student.StudentID,
		Content:       req.Content,
		AttachmentURL: req.AttachmentURL,
		SubmittedAt:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.assignmentRepo.UpsertSubmission(ctx, submission); err != nil {
		return nil, err
	}

	logger.Info("assignment submitted",
		slog.String("assignment_id", assignmentID), slog.String("student_id", student.StudentID))

	return &submission, nil
}

func (s *assignmentService) ListSubmissions(ctx context.Context, actor domain.Actor, assignmentID string) ([]domain.AssignmentSubmission, error) {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(ctx, actor, assignment) {
		return nil, apperrors.ErrForbidden
	}
	return s.assignmentRepo.FindSubmissionsByAssignment(ctx, assignmentID)
}
