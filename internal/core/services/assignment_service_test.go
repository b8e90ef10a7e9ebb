package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/core/services"
	"github.com/grschool/sms_backend/internal/dto"
)

// --- Mock AssignmentRepository (based on AssignmentService usage) ---
type MockAssignmentRepository struct {
	mock.Mock
	FindAssignmentByIDFn          func(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	FindAssignmentsFn             func(ctx context.Context, filter portsrepo.AssignmentFilter) ([]domain.Assignment, error)
	FindSubmissionsByAssignmentFn func(ctx context.Context, assignmentID string) ([]domain.AssignmentSubmission, error)
	SaveAssignmentFn              func(ctx context.Context, assignment domain.Assignment) error
	UpdateAssignmentFn            func(ctx context.Context, assignment domain.Assignment) error
	UpsertSubmissionFn            func(ctx context.Context, submission domain.AssignmentSubmission) error
	MarkAssignmentDeletedFn       func(ctx context.Context, assignmentID string, deletedAt time.Time, deletedBy string) error
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	if m.FindAssignmentByIDFn != nil {
		return m.FindAssignmentByIDFn(ctx, assignmentID)
	}
	args := m.Called(ctx, assignmentID)
	var assignment *domain.Assignment
	if args.Get(0) != nil {
		assignment = args.Get(0).(*domain.Assignment)
	}
	return assignment, args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignments(ctx context.Context, filter portsrepo.AssignmentFilter) ([]domain.Assignment, error) {
	if m.FindAssignmentsFn != nil {
		return m.FindAssignmentsFn(ctx, filter)
	}
	args := m.Called(ctx, filter)
	var assignments []domain.Assignment
	if args.Get(0) != nil {
		assignments = args.Get(0).([]domain.Assignment)
	}
	return assignments, args.Error(1)
}

func (m *MockAssignmentRepository) FindSubmissionsByAssignment(ctx context.Context, assignmentID string) ([]domain.AssignmentSubmission, error) {
	if m.FindSubmissionsByAssignmentFn != nil {
		return m.FindSubmissionsByAssignmentFn(ctx, assignmentID)
	}
	args := m.Called(ctx, assignmentID)
	var submissions []domain.AssignmentSubmission
	if args.Get(0) != nil {
		submissions = args.Get(0).([]domain.AssignmentSubmission)
	}
	return submissions, args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.Assignment) error {
	if m.SaveAssignmentFn != nil {
		return m.SaveAssignmentFn(ctx, assignment)
	}
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateAssignment(ctx context.Context, assignment domain.Assignment) error {
	if m.UpdateAssignmentFn != nil {
		return m.UpdateAssignmentFn(ctx, assignment)
	}
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpsertSubmission(ctx context.Context, submission domain.AssignmentSubmission) error {
	if m.UpsertSubmissionFn != nil {
		return m.UpsertSubmissionFn(ctx, submission)
	}
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockAssignmentRepository) MarkAssignmentDeleted(ctx context.Context, assignmentID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkAssignmentDeletedFn != nil {
		return m.MarkAssignmentDeletedFn(ctx, assignmentID, deletedAt, deletedBy)
	}
	args := m.Called(ctx, assignmentID, deletedAt, deletedBy)
	return args.Error(0)
}

type AssignmentServiceTestSuite struct {
	suite.Suite
	ctx            context.Context
	assignmentRepo *MockAssignmentRepository
	schoolRepo     *MockSchoolRepository
	svc            portssvc.AssignmentSvcFacade

	admin        domain.Actor
	teacher      domain.Actor
	otherTeacher domain.Actor
	student      domain.Actor
	assignment   domain.Assignment
}

func (s *AssignmentServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.assignmentRepo = new(MockAssignmentRepository)
	s.schoolRepo = new(MockSchoolRepository)
	s.svc = services.NewAssignmentService(s.assignmentRepo, s.schoolRepo)

	s.admin = domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}
	s.teacher = domain.Actor{UserID: "u-teacher", Role: domain.RoleTeacher}
	s.otherTeacher = domain.Actor{UserID: "u-teacher-2", Role: domain.RoleTeacher}
	s.student = domain.Actor{UserID: "u-student", Role: domain.RoleStudent}
	s.assignment = domain.Assignment{
		AssignmentID: "asg-1",
		Title:        "Photosynthesis essay",
		Subject:      "Biology",
		Form:         "Form 2",
		TeacherID:    "tch-1",
		DueDate:      time.Now().AddDate(0, 0, 7),
	}

	s.schoolRepo.FindTeacherByUserIDFn = func(ctx context.Context, userID string) (*domain.Teacher, error) {
		switch userID {
		case "u-teacher":
			return &domain.Teacher{TeacherID: "tch-1", UserID: userID}, nil
		case "u-teacher-2":
			return &domain.Teacher{TeacherID: "tch-2", UserID: userID}, nil
		}
		return nil, apperrors.ErrNotFound
	}
	s.schoolRepo.FindStudentByUserIDFn = func(ctx context.Context, userID string) (*domain.Student, error) {
		if userID != "u-student" {
			return nil, apperrors.ErrNotFound
		}
		return &domain.Student{StudentID: "st-1", UserID: userID, Form: "Form 2"}, nil
	}
	s.assignmentRepo.FindAssignmentByIDFn = func(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
		if assignmentID != s.assignment.AssignmentID {
			return nil, apperrors.ErrNotFound
		}
		a := s.assignment
		return &a, nil
	}
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}

func (s *AssignmentServiceTestSuite) TestCreateAssignmentAttributesTeacher() {
	var saved domain.Assignment
	s.assignmentRepo.SaveAssignmentFn = func(ctx context.Context, assignment domain.Assignment) error {
		saved = assignment
		return nil
	}

	req := dto.CreateAssignmentRequest{
		Title:   "Photosynthesis essay",
		Subject: "Biology",
		Form:    "Form 2",
		DueDate: time.Now().AddDate(0, 0, 7),
	}
	_, err := s.svc.CreateAssignment(s.ctx, s.teacher, req)
	s.Require().NoError(err)
	s.Equal("tch-1", saved.TeacherID, "attributed to the teacher profile, not the user")

	_, err = s.svc.CreateAssignment(s.ctx, s.admin, req)
	s.Require().NoError(err)
	s.Equal("u-admin", saved.TeacherID)

	_, err = s.svc.CreateAssignment(s.ctx, s.student, req)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *AssignmentServiceTestSuite) TestCreateAssignmentRejectsPastDueDate() {
	req := dto.CreateAssignmentRequest{
		Title:   "Late",
		Subject: "Biology",
		Form:    "Form 2",
		DueDate: time.Now().Add(-time.Hour),
	}
	_, err := s.svc.CreateAssignment(s.ctx, s.teacher, req)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AssignmentServiceTestSuite) TestUpdateAssignmentOwnership() {
	s.assignmentRepo.UpdateAssignmentFn = func(ctx context.Context, assignment domain.Assignment) error { return nil }

	newTitle := "Photosynthesis essay (revised)"
	_, err := s.svc.UpdateAssignment(s.ctx, s.teacher, "asg-1", dto.UpdateAssignmentRequest{Title: &newTitle})
	s.NoError(err, "the publishing teacher may edit")

	_, err = s.svc.UpdateAssignment(s.ctx, s.otherTeacher, "asg-1", dto.UpdateAssignmentRequest{Title: &newTitle})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.UpdateAssignment(s.ctx, s.admin, "asg-1", dto.UpdateAssignmentRequest{Title: &newTitle})
	s.NoError(err, "admins may edit any assignment")
}

func (s *AssignmentServiceTestSuite) TestSubmitAssignment() {
	var upserted domain.AssignmentSubmission
	s.assignmentRepo.UpsertSubmissionFn = func(ctx context.Context, submission domain.AssignmentSubmission) error {
		upserted = submission
		return nil
	}

	submission, err := s.svc.SubmitAssignment(s.ctx, s.student, "asg-1", dto.SubmitAssignmentRequest{Content: "My essay"})
	s.Require().NoError(err)
	s.Equal("st-1", upserted.StudentID)
	s.Equal("asg-1", submission.AssignmentID)

	_, err = s.svc.SubmitAssignment(s.ctx, s.teacher, "asg-1", dto.SubmitAssignmentRequest{Content: "x"})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.SubmitAssignment(s.ctx, s.student, "asg-1", dto.SubmitAssignmentRequest{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.SubmitAssignment(s.ctx, s.student, "asg-404", dto.SubmitAssignmentRequest{Content: "x"})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AssignmentServiceTestSuite) TestListAssignmentsPinsStudentForm() {
	var gotFilter portsrepo.AssignmentFilter
	s.assignmentRepo.FindAssignmentsFn = func(ctx context.Context, filter portsrepo.AssignmentFilter) ([]domain.Assignment, error) {
		gotFilter = filter
		return nil, nil
	}

	// A student asking for another form still gets their own.
	_, err := s.svc.ListAssignments(s.ctx, s.student, dto.ListAssignmentsParams{Form: "Form 4"})
	s.Require().NoError(err)
	s.Equal("Form 2", gotFilter.Form)

	_, err = s.svc.ListAssignments(s.ctx, s.teacher, dto.ListAssignmentsParams{Form: "Form 4"})
	s.Require().NoError(err)
	s.Equal("Form 4", gotFilter.Form)
}

func (s *AssignmentServiceTestSuite) TestListSubmissionsOwnership() {
	s.assignmentRepo.FindSubmissionsByAssignmentFn = func(ctx context.Context, assignmentID string) ([]domain.AssignmentSubmission, error) {
		return []domain.AssignmentSubmission{{SubmissionID: "sub-1", AssignmentID: assignmentID}}, nil
	}

	submissions, err := s.svc.ListSubmissions(s.ctx, s.teacher, "asg-1")
	s.Require().NoError(err)
	s.Len(submissions, 1)

	_, err = s.svc.ListSubmissions(s.ctx, s.otherTeacher, "asg-1")
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.ListSubmissions(s.ctx, s.student, "asg-1")
	s.ErrorIs(err, apperrors.ErrForbidden)
}
