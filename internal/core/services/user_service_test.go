package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/core/services"
	"github.com/grschool/sms_backend/internal/dto"
	"github.com/grschool/sms_backend/internal/utils"
)

// --- Mock UserRepository (based on UserService usage) ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn              func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByPhoneFn           func(ctx context.Context, phoneNumber string) (*domain.User, error)
	FindUserByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderDetailsFn func(ctx context.Context, authProvider string, providerID string) (*domain.User, error)
	FindUsersFn                 func(ctx context.Context, limit int, offset int) ([]domain.User, error)
	SaveUserFn                  func(ctx context.Context, user domain.User) error
	UpdateUserFn                func(ctx context.Context, user domain.User) error
	UpdateRefreshTokenFn        func(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error
	ClearRefreshTokenFn         func(ctx context.Context, userID string) error
	MarkUserDeletedFn           func(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	if m.FindUserByPhoneFn != nil {
		return m.FindUserByPhoneFn(ctx, phoneNumber)
	}
	args := m.Called(ctx, phoneNumber)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerID string) (*domain.User, error) {
	if m.FindUserByProviderDetailsFn != nil {
		return m.FindUserByProviderDetailsFn(ctx, authProvider, providerID)
	}
	args := m.Called(ctx, authProvider, providerID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if m.FindUsersFn != nil {
		return m.FindUsersFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if m.UpdateRefreshTokenFn != nil {
		return m.UpdateRefreshTokenFn(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	}
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	if m.ClearRefreshTokenFn != nil {
		return m.ClearRefreshTokenFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, userID, deletedAt, deletedBy)
	}
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	userRepo *MockUserRepository
	svc      portssvc.UserSvcFacade

	localUser domain.User
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.userRepo = new(MockUserRepository)
	s.svc = services.NewUserService(s.userRepo)

	hash, err := utils.HashPassword("hunter22")
	s.Require().NoError(err)
	s.localUser = domain.User{
		UserID:       "u-1",
		PhoneNumber:  "+233201112222",
		Name:         "Ama Mensah",
		Email:        "ama@example.com",
		PasswordHash: hash,
		Role:         domain.RoleStudent,
		AuthProvider: domain.ProviderLocal,
		IsVerified:   true,
	}
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestAuthenticateUser() {
	s.userRepo.FindUserByPhoneFn = func(ctx context.Context, phoneNumber string) (*domain.User, error) {
		if phoneNumber != s.localUser.PhoneNumber {
			return nil, apperrors.ErrNotFound
		}
		u := s.localUser
		return &u, nil
	}

	user, err := s.svc.AuthenticateUser(s.ctx, "+233201112222", "hunter22")
	s.Require().NoError(err)
	s.Equal("u-1", user.UserID)
}

// Unknown numbers and wrong passwords must be indistinguishable to the caller.
func (s *UserServiceTestSuite) TestAuthenticateUserGenericUnauthorized() {
	s.userRepo.FindUserByPhoneFn = func(ctx context.Context, phoneNumber string) (*domain.User, error) {
		if phoneNumber != s.localUser.PhoneNumber {
			return nil, apperrors.ErrNotFound
		}
		u := s.localUser
		return &u, nil
	}

	_, unknownErr := s.svc.AuthenticateUser(s.ctx, "+233200000000", "hunter22")
	_, badPassErr := s.svc.AuthenticateUser(s.ctx, "+233201112222", "wrong")
	s.ErrorIs(unknownErr, apperrors.ErrUnauthorized)
	s.ErrorIs(badPassErr, apperrors.ErrUnauthorized)
	s.Equal(unknownErr.Error(), badPassErr.Error())
}

func (s *UserServiceTestSuite) TestAuthenticateUserGoogleAccountRejected() {
	google := s.localUser
	google.AuthProvider = domain.ProviderGoogle
	google.PasswordHash = ""
	s.userRepo.FindUserByPhoneFn = func(ctx context.Context, phoneNumber string) (*domain.User, error) {
		u := google
		return &u, nil
	}

	_, err := s.svc.AuthenticateUser(s.ctx, "+233201112222", "hunter22")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserExisting() {
	s.userRepo.FindUserByProviderDetailsFn = func(ctx context.Context, authProvider string, providerID string) (*domain.User, error) {
		s.Equal(domain.ProviderGoogle, authProvider)
		s.Equal("goog-123", providerID)
		u := s.localUser
		return &u, nil
	}

	user, err := s.svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{ID: "goog-123"})
	s.Require().NoError(err)
	s.Equal("u-1", user.UserID)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserLinksByEmail() {
	s.userRepo.FindUserByProviderDetailsFn = func(ctx context.Context, authProvider string, providerID string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	s.userRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		s.Equal("ama@example.com", email)
		u := s.localUser
		u.IsVerified = false
		return &u, nil
	}
	var linked domain.User
	s.userRepo.UpdateUserFn = func(ctx context.Context, user domain.User) error {
		linked = user
		return nil
	}

	user, err := s.svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{
		ID:            "goog-123",
		Email:         "ama@example.com",
		VerifiedEmail: true,
	})
	s.Require().NoError(err)
	s.Equal("u-1", user.UserID)
	s.Equal(domain.ProviderGoogle, linked.AuthProvider)
	s.Equal("goog-123", linked.ProviderID)
	s.True(linked.IsVerified)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserProvisions() {
	s.userRepo.FindUserByProviderDetailsFn = func(ctx context.Context, authProvider string, providerID string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	s.userRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	var saved domain.User
	s.userRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = user
		return nil
	}

	user, err := s.svc.FindOrCreateGoogleUser(s.ctx, domain.GoogleUserInfo{
		ID:            "goog-456",
		Email:         "new@example.com",
		Name:          "Kofi Annor",
		VerifiedEmail: true,
	})
	s.Require().NoError(err)
	s.Equal(saved.UserID, user.UserID)
	s.NotEmpty(saved.UserID)
	s.Equal(domain.RoleStudent, saved.Role, "first sign-in defaults to the lowest role")
	s.Equal(domain.ProviderGoogle, saved.AuthProvider)
	s.Equal("goog-456", saved.ProviderID)
	s.True(saved.IsVerified)
}

func (s *UserServiceTestSuite) TestUpdateUserScope() {
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		u := s.localUser
		return &u, nil
	}
	var updated domain.User
	s.userRepo.UpdateUserFn = func(ctx context.Context, user domain.User) error {
		updated = user
		return nil
	}

	newName := "Ama Mensah-Boadi"
	_, err := s.svc.UpdateUser(s.ctx, domain.Actor{UserID: "u-1", Role: domain.RoleStudent}, "u-1", dto.UpdateUserRequest{Name: &newName})
	s.Require().NoError(err)
	s.Equal(newName, updated.Name)
	s.Equal("ama@example.com", updated.Email, "unset fields stay untouched")

	_, err = s.svc.UpdateUser(s.ctx, domain.Actor{UserID: "u-other", Role: domain.RoleTeacher}, "u-1", dto.UpdateUserRequest{Name: &newName})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.UpdateUser(s.ctx, domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}, "u-1", dto.UpdateUserRequest{Name: &newName})
	s.NoError(err, "admins may update anyone")
}

func (s *UserServiceTestSuite) TestDeleteUser() {
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		if userID != "u-1" {
			return nil, apperrors.ErrNotFound
		}
		u := s.localUser
		return &u, nil
	}
	var deletedBy string
	s.userRepo.MarkUserDeletedFn = func(ctx context.Context, userID string, deletedAt time.Time, by string) error {
		deletedBy = by
		return nil
	}

	err := s.svc.DeleteUser(s.ctx, domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}, "u-1")
	s.Require().NoError(err)
	s.Equal("u-admin", deletedBy)

	err = s.svc.DeleteUser(s.ctx, domain.Actor{UserID: "u-bursar", Role: domain.RoleBursar}, "u-1")
	s.ErrorIs(err, apperrors.ErrForbidden)

	err = s.svc.DeleteUser(s.ctx, domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}, "u-404")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestListUsersDefaultsLimit() {
	var gotLimit int
	s.userRepo.FindUsersFn = func(ctx context.Context, limit int, offset int) ([]domain.User, error) {
		gotLimit = limit
		return nil, nil
	}

	_, err := s.svc.ListUsers(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Equal(20, gotLimit)
}

func (s *UserServiceTestSuite) TestGetUserByIDWrapsRepoError() {
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return nil, errors.New("connection reset")
	}
	_, err := s.svc.GetUserByID(s.ctx, "u-1")
	s.Error(err)
	s.NotErrorIs(err, apperrors.ErrNotFound)
}
