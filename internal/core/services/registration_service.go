package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/dto"
	"github.com/grschool/sms_backend/internal/middleware"
	"github.com/grschool/sms_backend/internal/utils"
)

// Display ID prefixes per member type.
const (
	studentIDPrefix = "GRS"
	teacherIDPrefix = "TCH"
	bursarIDPrefix  = "BUR"
	adminIDPrefix   = "ADM"
	staffIDPrefix   = "STF"
)

// registrationService creates members: login identity, role profile, display ID
// and, for students, the fee account for the current year.
type registrationService struct {
	schoolRepo      portsrepo.SchoolRepositoryFacade
	feesRepo        portsrepo.FeesRepositoryFacade
	defaultTermFees decimal.Decimal
	feeDueInDays    int
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(schoolRepo portsrepo.SchoolRepositoryFacade, feesRepo portsrepo.FeesRepositoryFacade, defaultTermFees decimal.Decimal, feeDueInDays int) portssvc.RegistrationSvcFacade {
	if feeDueInDays <= 0 {
		feeDueInDays = 60
	}
	return &registrationService{
		schoolRepo:      schoolRepo,
		feesRepo:        feesRepo,
		defaultTermFees: defaultTermFees,
		feeDueInDays:    feeDueInDays,
	}
}

var _ portssvc.RegistrationSvcFacade = (*registrationService)(nil)

// issueDisplayID reserves the next sequence number for the prefix and formats
// it. If the counter cannot be read a timestamp-based ID is issued instead, so
// registration never fails on the counter alone.
func (s *registrationService) issueDisplayID(ctx context.Context, prefix string, now time.Time) string {
	logger := middleware.GetLoggerFromCtx(ctx)
	year := now.Year()

	seq, err := s.schoolRepo.NextSequenceNumber(ctx, fmt.Sprintf("%s/%d", prefix, year))
	if err != nil {
		logger.Error("display ID sequence unavailable, issuing timestamp ID",
			slog.String("prefix", prefix), slog.String("error", err.Error()))
		return fmt.Sprintf("%s/%d/T%s", prefix, year, now.Format("060102150405"))
	}
	return utils.FormatDisplayID(prefix, year, seq)
}

func (s *registrationService) RegisterStudent(ctx context.Context, actor domain.Actor, req dto.RegisterStudentRequest) (*portssvc.RegistrationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanRegisterUsers() {
		return nil, apperrors.ErrForbidden
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	displayID := s.issueDisplayID(ctx, studentIDPrefix, now)
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		PhoneNumber:  req.PhoneNumber,
		Name:         req.FirstName + " " + req.LastName,
		PasswordHash: passwordHash,
		Role:         domain.RoleStudent,
		AuthProvider: domain.ProviderLocal,
		IsVerified:   true,
		AuditFields:  audit,
	}
	student := domain.Student{
		StudentID:    uuid.NewString(),
		UserID:       user.UserID,
		DisplayID:    displayID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Form:         req.Form,
		Class:        req.Class,
		GuardianName: req.GuardianName,
		DateOfBirth:  req.DateOfBirth,
		AuditFields:  audit,
	}

	if err := s.schoolRepo.CreateStudent(ctx, user, student); err != nil {
		return nil, err
	}

	account := domain.FeesAccount{
		AccountID:   uuid.NewString(),
		StudentID:   student.StudentID,
		Year:        now.Year(),
		Term:        currentTerm(now),
		TotalFees:   s.defaultTermFees,
		DueDate:     now.AddDate(0, 0, s.feeDueInDays),
		AuditFields: audit,
	}
	account.Recompute()
	if err := s.feesRepo.SaveAccount(ctx, account); err != nil {
		// The member exists; the account can be backfilled. Surface loudly but
		// do not roll back the registration.
		logger.Error("failed to open fee account for new student",
			slog.String("student_id", student.StudentID), slog.String("error", err.Error()))
	}

	logger.Info("student registered",
		slog.String("student_id", student.StudentID), slog.String("display_id", displayID))

	return &portssvc.RegistrationResult{
		UserID:    user.UserID,
		ProfileID: student.StudentID,
		DisplayID: displayID,
		Role:      domain.RoleStudent,
	}, nil
}

func (s *registrationService) RegisterTeacher(ctx context.Context, actor domain.Actor, req dto.RegisterTeacherRequest) (*portssvc.RegistrationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanRegisterUsers() {
		return nil, apperrors.ErrForbidden
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	displayID := s.issueDisplayID(ctx, teacherIDPrefix, now)
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		PhoneNumber:  req.PhoneNumber,
		Name:         req.FirstName + " " + req.LastName,
		PasswordHash: passwordHash,
		Role:         domain.RoleTeacher,
		AuthProvider: domain.ProviderLocal,
		IsVerified:   true,
		AuditFields:  audit,
	}
	teacher := domain.Teacher{
		TeacherID:   uuid.NewString(),
		UserID:      user.UserID,
		DisplayID:   displayID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Subject:     req.Subject,
		AuditFields: audit,
	}

	if err := s.schoolRepo.CreateTeacher(ctx, user, teacher); err != nil {
		return nil, err
	}

	logger.Info("teacher registered",
		slog.String("teacher_id", teacher.TeacherID), slog.String("display_id", displayID))

	return &portssvc.RegistrationResult{
		UserID:    user.UserID,
		ProfileID: teacher.TeacherID,
		DisplayID: displayID,
		Role:      domain.RoleTeacher,
	}, nil
}

func (s *registrationService) RegisterStaff(ctx context.Context, actor domain.Actor, req dto.RegisterStaffRequest) (*portssvc.RegistrationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanRegisterUsers() {
		return nil, apperrors.ErrForbidden
	}

	role := domain.Role(req.Role)
	var prefix string
	switch role {
	case domain.RoleBursar:
		prefix = bursarIDPrefix
	case domain.RoleAdmin:
		prefix = adminIDPrefix
	case domain.RoleStaff:
		prefix = staffIDPrefix
	default:
		return nil, fmt.Errorf("%w: invalid staff role %q", apperrors.ErrValidation, req.Role)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	displayID := s.issueDisplayID(ctx, prefix, now)
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		PhoneNumber:  req.PhoneNumber,
		Name:         req.FirstName + " " + req.LastName,
		PasswordHash: passwordHash,
		Role:         role,
		AuthProvider: domain.ProviderLocal,
		IsVerified:   true,
		AuditFields:  audit,
	}
	staff := domain.Staff{
		StaffID:     uuid.NewString(),
		UserID:      user.UserID,
		DisplayID:   displayID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Position:    req.Position,
		AuditFields: audit,
	}

	if err := s.schoolRepo.CreateStaff(ctx, user, staff); err != nil {
		return nil, err
	}

	logger.Info("staff registered",
		slog.String("staff_id", staff.StaffID), slog.String("display_id", displayID), slog.String("role", string(role)))

	return &portssvc.RegistrationResult{
		UserID:    user.UserID,
		ProfileID: staff.StaffID,
		DisplayID: displayID,
		Role:      role,
	}, nil
}

func (s *registrationService) GetStudent(ctx context.Context, actor domain.Actor, studentID string) (*domain.Student, error) {
	student, err := s.schoolRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	// Students may only read their own profile.
	if actor.Role == domain.RoleStudent && student.UserID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return student, nil
}

func (s *registrationService) ListStudents(ctx context.Context, actor domain.Actor, params dto.ListStudentsParams) ([]domain.Student, error) {
	if actor.Role == domain.RoleStudent {
		return nil, apperrors.ErrForbidden
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.schoolRepo.FindStudents(ctx, params.Form, params.Class, limit, params.Offset)
}

// currentTerm maps the month to the school term (Jan-Apr, May-Aug, Sep-Dec).
func currentTerm(now time.Time) int {
	switch {
	case now.Month() <= 4:
		return 1
	case now.Month() <= 8:
		return 2
	default:
		return 3
	}
}
