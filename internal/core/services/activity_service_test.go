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

// --- Mock ActivityRepository (based on ActivityService usage) ---
type MockActivityRepository struct {
	mock.Mock
	FindActivityByIDFn    func(ctx context.Context, activityID string) (*domain.Activity, error)
	FindActivitiesFn      func(ctx context.Context, filter portsrepo.ActivityFilter) ([]domain.Activity, error)
	SaveActivityFn        func(ctx context.Context, activity domain.Activity) error
	UpdateActivityFn      func(ctx context.Context, activity domain.Activity) error
	ApproveActivityFn     func(ctx context.Context, activityID string, approverID string, now time.Time) error
	MarkActivityDeletedFn func(ctx context.Context, activityID string, deletedAt time.Time, deletedBy string) error
}

func (m *MockActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	if m.FindActivityByIDFn != nil {
		return m.FindActivityByIDFn(ctx, activityID)
	}
	args := m.Called(ctx, activityID)
	var activity *domain.Activity
	if args.Get(0) != nil {
		activity = args.Get(0).(*domain.Activity)
	}
	return activity, args.Error(1)
}

func (m *MockActivityRepository) FindActivities(ctx context.Context, filter portsrepo.ActivityFilter) ([]domain.Activity, error) {
	if m.FindActivitiesFn != nil {
		return m.FindActivitiesFn(ctx, filter)
	}
	args := m.Called(ctx, filter)
	var activities []domain.Activity
	if args.Get(0) != nil {
		activities = args.Get(0).([]domain.Activity)
	}
	return activities, args.Error(1)
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	if m.SaveActivityFn != nil {
		return m.SaveActivityFn(ctx, activity)
	}
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) UpdateActivity(ctx context.Context, activity domain.Activity) error {
	if m.UpdateActivityFn != nil {
		return m.UpdateActivityFn(ctx, activity)
	}
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ApproveActivity(ctx context.Context, activityID string, approverID string, now time.Time) error {
	if m.ApproveActivityFn != nil {
		return m.ApproveActivityFn(ctx, activityID, approverID, now)
	}
	args := m.Called(ctx, activityID, approverID, now)
	return args.Error(0)
}

func (m *MockActivityRepository) MarkActivityDeleted(ctx context.Context, activityID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkActivityDeletedFn != nil {
		return m.MarkActivityDeletedFn(ctx, activityID, deletedAt, deletedBy)
	}
	args := m.Called(ctx, activityID, deletedAt, deletedBy)
	return args.Error(0)
}

type ActivityServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	activityRepo *MockActivityRepository
	svc          portssvc.ActivitySvcFacade

	admin   domain.Actor
	teacher domain.Actor
	student domain.Actor
}

func (s *ActivityServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.activityRepo = new(MockActivityRepository)
	s.svc = services.NewActivityService(s.activityRepo)

	s.admin = domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}
	s.teacher = domain.Actor{UserID: "u-teacher", Role: domain.RoleTeacher}
	s.student = domain.Actor{UserID: "u-student", Role: domain.RoleStudent}

	s.activityRepo.SaveActivityFn = func(ctx context.Context, activity domain.Activity) error { return nil }
}

func TestActivityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}

func (s *ActivityServiceTestSuite) createRequest() dto.CreateActivityRequest {
	starts := time.Now().AddDate(0, 0, 7)
	return dto.CreateActivityRequest{
		Title:    "Inter-house athletics",
		Venue:    "School field",
		StartsAt: starts,
		EndsAt:   starts.Add(4 * time.Hour),
	}
}

func (s *ActivityServiceTestSuite) TestCreateActivityApprovalByRole() {
	var saved domain.Activity
	s.activityRepo.SaveActivityFn = func(ctx context.Context, activity domain.Activity) error {
		saved = activity
		return nil
	}

	// Teacher-created events wait for an admin.
	activity, err := s.svc.CreateActivity(s.ctx, s.teacher, s.createRequest())
	s.Require().NoError(err)
	s.False(activity.IsApproved)
	s.Empty(saved.ApprovedBy)

	// Admin-created events go live immediately.
	activity, err = s.svc.CreateActivity(s.ctx, s.admin, s.createRequest())
	s.Require().NoError(err)
	s.True(activity.IsApproved)
	s.Equal("u-admin", saved.ApprovedBy)

	_, err = s.svc.CreateActivity(s.ctx, s.student, s.createRequest())
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ActivityServiceTestSuite) TestCreateActivityValidatesWindow() {
	req := s.createRequest()
	req.EndsAt = req.StartsAt
	_, err := s.svc.CreateActivity(s.ctx, s.teacher, req)
	s.ErrorIs(err, apperrors.ErrValidation)

	req.EndsAt = req.StartsAt.Add(-time.Hour)
	_, err = s.svc.CreateActivity(s.ctx, s.teacher, req)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ActivityServiceTestSuite) TestApproveActivity() {
	pending := domain.Activity{ActivityID: "act-1", Title: "Debate club"}
	s.activityRepo.FindActivityByIDFn = func(ctx context.Context, activityID string) (*domain.Activity, error) {
		a := pending
		return &a, nil
	}
	approveCalls := 0
	s.activityRepo.ApproveActivityFn = func(ctx context.Context, activityID string, approverID string, now time.Time) error {
		approveCalls++
		s.Equal("u-admin", approverID)
		return nil
	}

	activity, err := s.svc.ApproveActivity(s.ctx, s.admin, "act-1")
	s.Require().NoError(err)
	s.True(activity.IsApproved)
	s.Equal(1, approveCalls)

	// Approving an already-approved activity is a no-op.
	pending.IsApproved = true
	_, err = s.svc.ApproveActivity(s.ctx, s.admin, "act-1")
	s.Require().NoError(err)
	s.Equal(1, approveCalls)

	_, err = s.svc.ApproveActivity(s.ctx, s.teacher, "act-1")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ActivityServiceTestSuite) TestGetActivityHidesPendingFromStudents() {
	s.activityRepo.FindActivityByIDFn = func(ctx context.Context, activityID string) (*domain.Activity, error) {
		return &domain.Activity{ActivityID: activityID, IsApproved: false}, nil
	}

	_, err := s.svc.GetActivity(s.ctx, s.student, "act-1")
	s.ErrorIs(err, apperrors.ErrNotFound, "pending events are invisible, not forbidden")

	activity, err := s.svc.GetActivity(s.ctx, s.teacher, "act-1")
	s.Require().NoError(err)
	s.False(activity.IsApproved)
}

func (s *ActivityServiceTestSuite) TestListActivitiesFilter() {
	var gotFilter portsrepo.ActivityFilter
	s.activityRepo.FindActivitiesFn = func(ctx context.Context, filter portsrepo.ActivityFilter) ([]domain.Activity, error) {
		gotFilter = filter
		return nil, nil
	}

	_, err := s.svc.ListActivities(s.ctx, s.student, dto.ListActivitiesParams{Upcoming: true})
	s.Require().NoError(err)
	s.True(gotFilter.ApprovedOnly, "students only see approved events")
	s.NotNil(gotFilter.From)
	s.Equal(20, gotFilter.Limit)

	_, err = s.svc.ListActivities(s.ctx, s.teacher, dto.ListActivitiesParams{})
	s.Require().NoError(err)
	s.False(gotFilter.ApprovedOnly)
	s.Nil(gotFilter.From)
}

func (s *ActivityServiceTestSuite) TestUpdateActivityValidatesWindow() {
	starts := time.Now().AddDate(0, 0, 7)
	s.activityRepo.FindActivityByIDFn = func(ctx context.Context, activityID string) (*domain.Activity, error) {
		return &domain.Activity{ActivityID: activityID, StartsAt: starts, EndsAt: starts.Add(2 * time.Hour)}, nil
	}
	s.activityRepo.UpdateActivityFn = func(ctx context.Context, activity domain.Activity) error { return nil }

	bad := starts.Add(-time.Hour)
	_, err := s.svc.UpdateActivity(s.ctx, s.teacher, "act-1", dto.UpdateActivityRequest{EndsAt: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)

	good := starts.Add(3 * time.Hour)
	activity, err := s.svc.UpdateActivity(s.ctx, s.teacher, "act-1", dto.UpdateActivityRequest{EndsAt: &good})
	s.Require().NoError(err)
	s.True(activity.EndsAt.Equal(good))
}
