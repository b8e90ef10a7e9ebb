package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/core/services"
	"github.com/grschool/sms_backend/internal/platform/config"
	"github.com/grschool/sms_backend/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	cfg      *config.Config
	userRepo *MockUserRepository
	svc      portssvc.TokenSvcFacade

	user domain.User
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = &config.Config{
		JWTSecret:                  "test-secret-key",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "sms-backend-test",
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
	}
	s.userRepo = new(MockUserRepository)
	s.svc = services.NewTokenService(s.cfg, services.NewUserService(s.userRepo))

	s.user = domain.User{UserID: "u-1", Role: domain.RoleBursar}
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken() {
	token, expiry, err := s.svc.GenerateAccessToken(s.ctx, &s.user)
	s.Require().NoError(err)
	s.WithinDuration(time.Now().Add(time.Hour), expiry, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret)
	s.Require().NoError(err)
	s.Equal("u-1", claims.Subject)
	s.Equal("BURSAR", claims.Role)
	s.Equal("sms-backend-test", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "wrong-secret")
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestGenerateRefreshTokenIsOpaqueAndUnique() {
	first, expiry, err := s.svc.GenerateRefreshToken(s.ctx, &s.user)
	s.Require().NoError(err)
	second, _, err := s.svc.GenerateRefreshToken(s.ctx, &s.user)
	s.Require().NoError(err)

	s.NotEmpty(first)
	s.NotEqual(first, second)
	s.WithinDuration(time.Now().Add(7*24*time.Hour), expiry, time.Minute)
}

func (s *TokenServiceTestSuite) TestValidateAndParseRefreshToken() {
	raw := "raw-refresh-token"
	expiry := time.Now().Add(24 * time.Hour)
	stored := s.user
	stored.RefreshTokenHash = utils.HashRefreshToken(raw)
	stored.RefreshTokenExpiryTime = &expiry

	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		if userID != "u-1" {
			return nil, apperrors.ErrNotFound
		}
		u := stored
		return &u, nil
	}

	user, err := s.svc.ValidateAndParseRefreshToken(s.ctx, "u-1", raw)
	s.Require().NoError(err)
	s.Equal("u-1", user.UserID)

	_, err = s.svc.ValidateAndParseRefreshToken(s.ctx, "u-1", "forged-token")
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = s.svc.ValidateAndParseRefreshToken(s.ctx, "u-404", raw)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TokenServiceTestSuite) TestValidateAndParseRefreshTokenExpired() {
	raw := "raw-refresh-token"
	expiry := time.Now().Add(-time.Hour)
	stored := s.user
	stored.RefreshTokenHash = utils.HashRefreshToken(raw)
	stored.RefreshTokenExpiryTime = &expiry

	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		u := stored
		return &u, nil
	}

	_, err := s.svc.ValidateAndParseRefreshToken(s.ctx, "u-1", raw)
	s.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (s *TokenServiceTestSuite) TestValidateAndParseRefreshTokenNoneStored() {
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		u := s.user
		return &u, nil
	}

	_, err := s.svc.ValidateAndParseRefreshToken(s.ctx, "u-1", "anything")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}
