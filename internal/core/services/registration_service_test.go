package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/core/services"
	"github.com/grschool/sms_backend/internal/dto"
)

type RegistrationServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	schoolRepo *MockSchoolRepository
	feesRepo   *MockFeesRepository
	svc        portssvc.RegistrationSvcFacade

	admin  domain.Actor
	bursar domain.Actor
	year   int
}

func (s *RegistrationServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.schoolRepo = new(MockSchoolRepository)
	s.feesRepo = new(MockFeesRepository)
	s.svc = services.NewRegistrationService(s.schoolRepo, s.feesRepo, decimal.NewFromInt(80000), 60)

	s.admin = domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}
	s.bursar = domain.Actor{UserID: "u-bursar", Role: domain.RoleBursar}
	s.year = time.Now().Year()

	s.schoolRepo.NextSequenceNumberFn = func(ctx context.Context, prefix string) (int64, error) {
		return 1, nil
	}
	s.schoolRepo.CreateStudentFn = func(ctx context.Context, user domain.User, student domain.Student) error { return nil }
	s.schoolRepo.CreateTeacherFn = func(ctx context.Context, user domain.User, teacher domain.Teacher) error { return nil }
	s.schoolRepo.CreateStaffFn = func(ctx context.Context, user domain.User, staff domain.Staff) error { return nil }
	s.feesRepo.SaveAccountFn = func(ctx context.Context, account domain.FeesAccount) error { return nil }
}

func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceTestSuite))
}

func (s *RegistrationServiceTestSuite) registerStudentRequest() dto.RegisterStudentRequest {
	return dto.RegisterStudentRequest{
		FirstName:    "Kwame",
		LastName:     "Owusu",
		PhoneNumber:  "+233201112222",
		Password:     "hunter22",
		Form:         "Form 1",
		Class:        "1B",
		GuardianName: "Afia Owusu",
	}
}

func (s *RegistrationServiceTestSuite) TestRegisterStudent() {
	var createdUser domain.User
	var createdStudent domain.Student
	s.schoolRepo.CreateStudentFn = func(ctx context.Context, user domain.User, student domain.Student) error {
		createdUser = user
		createdStudent = student
		return nil
	}
	var createdAccount domain.FeesAccount
	s.feesRepo.SaveAccountFn = func(ctx context.Context, account domain.FeesAccount) error {
		createdAccount = account
		return nil
	}
	var seqPrefix string
	s.schoolRepo.NextSequenceNumberFn = func(ctx context.Context, prefix string) (int64, error) {
		seqPrefix = prefix
		return 1, nil
	}

	result, err := s.svc.RegisterStudent(s.ctx, s.admin, s.registerStudentRequest())
	s.Require().NoError(err)

	s.Equal(fmt.Sprintf("GRS/%d", s.year), seqPrefix)
	s.Equal(fmt.Sprintf("GRS/%d/001", s.year), result.DisplayID)
	s.Equal(domain.RoleStudent, result.Role)
	s.Equal(createdUser.UserID, result.UserID)
	s.Equal(createdStudent.StudentID, result.ProfileID)

	s.Equal("Kwame Owusu", createdUser.Name)
	s.Equal(domain.RoleStudent, createdUser.Role)
	s.Equal(domain.ProviderLocal, createdUser.AuthProvider)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte("hunter22")))
	s.Equal(createdUser.UserID, createdStudent.UserID)
	s.Equal("u-admin", createdStudent.CreatedBy)

	// The fee account for the current year opens with the full term charge.
	s.Equal(createdStudent.StudentID, createdAccount.StudentID)
	s.Equal(s.year, createdAccount.Year)
	s.True(createdAccount.TotalFees.Equal(decimal.NewFromInt(80000)))
	s.True(createdAccount.Balance.Equal(decimal.NewFromInt(80000)))
	s.Equal(domain.StatusPending, createdAccount.Status)
}

func (s *RegistrationServiceTestSuite) TestRegisterStudentForbidden() {
	for _, actor := range []domain.Actor{
		s.bursar,
		{UserID: "u-teacher", Role: domain.RoleTeacher},
		{UserID: "u-student", Role: domain.RoleStudent},
	} {
		_, err := s.svc.RegisterStudent(s.ctx, actor, s.registerStudentRequest())
		s.ErrorIs(err, apperrors.ErrForbidden)
	}
}

func (s *RegistrationServiceTestSuite) TestRegisterStudentSequenceFallback() {
	s.schoolRepo.NextSequenceNumberFn = func(ctx context.Context, prefix string) (int64, error) {
		return 0, errors.New("counter unavailable")
	}

	result, err := s.svc.RegisterStudent(s.ctx, s.admin, s.registerStudentRequest())
	s.Require().NoError(err, "registration must survive a dead counter")
	s.Regexp(fmt.Sprintf(`^GRS/%d/T\d{12}$`, s.year), result.DisplayID)
}

func (s *RegistrationServiceTestSuite) TestRegisterStudentAccountFailureTolerated() {
	s.feesRepo.SaveAccountFn = func(ctx context.Context, account domain.FeesAccount) error {
		return errors.New("fees db down")
	}

	result, err := s.svc.RegisterStudent(s.ctx, s.admin, s.registerStudentRequest())
	s.Require().NoError(err, "the member exists, the account is backfilled later")
	s.NotEmpty(result.ProfileID)
}

func (s *RegistrationServiceTestSuite) TestRegisterStudentCreateFails() {
	s.schoolRepo.CreateStudentFn = func(ctx context.Context, user domain.User, student domain.Student) error {
		return apperrors.ErrDuplicate
	}
	accountSaved := false
	s.feesRepo.SaveAccountFn = func(ctx context.Context, account domain.FeesAccount) error {
		accountSaved = true
		return nil
	}

	_, err := s.svc.RegisterStudent(s.ctx, s.admin, s.registerStudentRequest())
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.False(accountSaved)
}

func (s *RegistrationServiceTestSuite) TestRegisterTeacher() {
	var createdTeacher domain.Teacher
	s.schoolRepo.CreateTeacherFn = func(ctx context.Context, user domain.User, teacher domain.Teacher) error {
		createdTeacher = teacher
		return nil
	}
	s.schoolRepo.NextSequenceNumberFn = func(ctx context.Context, prefix string) (int64, error) {
		s.Equal(fmt.Sprintf("TCH/%d", s.year), prefix)
		return 14, nil
	}

	result, err := s.svc.RegisterTeacher(s.ctx, s.admin, dto.RegisterTeacherRequest{
		FirstName:   "Esi",
		LastName:    "Boateng",
		PhoneNumber: "+233203334444",
		Password:    "hunter22",
		Subject:     "Mathematics",
	})
	s.Require().NoError(err)
	s.Equal(fmt.Sprintf("TCH/%d/014", s.year), result.DisplayID)
	s.Equal(domain.RoleTeacher, result.Role)
	s.Equal("Mathematics", createdTeacher.Subject)
}

func (s *RegistrationServiceTestSuite) TestRegisterStaff() {
	testCases := []struct {
		role       string
		wantPrefix string
	}{
		{role: "BURSAR", wantPrefix: "BUR"},
		{role: "ADMIN", wantPrefix: "ADM"},
		{role: "STAFF", wantPrefix: "STF"},
	}

	for _, tc := range testCases {
		s.Run(tc.role, func() {
			result, err := s.svc.RegisterStaff(s.ctx, s.admin, dto.RegisterStaffRequest{
				FirstName:   "Yaw",
				LastName:    "Asante",
				PhoneNumber: "+233205556666",
				Password:    "hunter22",
				Role:        tc.role,
				Position:    "Accounts",
			})
			s.Require().NoError(err)
			s.Equal(fmt.Sprintf("%s/%d/001", tc.wantPrefix, s.year), result.DisplayID)
			s.Equal(domain.Role(tc.role), result.Role)
		})
	}
}

func (s *RegistrationServiceTestSuite) TestRegisterStaffInvalidRole() {
	_, err := s.svc.RegisterStaff(s.ctx, s.admin, dto.RegisterStaffRequest{
		FirstName:   "Yaw",
		LastName:    "Asante",
		PhoneNumber: "+233205556666",
		Password:    "hunter22",
		Role:        "TEACHER",
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RegistrationServiceTestSuite) TestGetStudentScope() {
	student := domain.Student{StudentID: "st-1", UserID: "u-student"}
	s.schoolRepo.FindStudentByIDFn = func(ctx context.Context, studentID string) (*domain.Student, error) {
		if studentID != "st-1" {
			return nil, apperrors.ErrNotFound
		}
		st := student
		return &st, nil
	}

	got, err := s.svc.GetStudent(s.ctx, domain.Actor{UserID: "u-student", Role: domain.RoleStudent}, "st-1")
	s.Require().NoError(err)
	s.Equal("st-1", got.StudentID)

	_, err = s.svc.GetStudent(s.ctx, domain.Actor{UserID: "u-other", Role: domain.RoleStudent}, "st-1")
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.GetStudent(s.ctx, s.bursar, "st-404")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RegistrationServiceTestSuite) TestListStudents() {
	var gotLimit int
	s.schoolRepo.FindStudentsFn = func(ctx context.Context, form string, class string, limit int, offset int) ([]domain.Student, error) {
		gotLimit = limit
		return []domain.Student{{StudentID: "st-1"}}, nil
	}

	students, err := s.svc.ListStudents(s.ctx, s.bursar, dto.ListStudentsParams{Form: "Form 2"})
	s.Require().NoError(err)
	s.Len(students, 1)
	s.Equal(20, gotLimit, "limit defaults when unset")

	_, err = s.svc.ListStudents(s.ctx, domain.Actor{UserID: "u-student", Role: domain.RoleStudent}, dto.ListStudentsParams{})
	s.ErrorIs(err, apperrors.ErrForbidden)
}
