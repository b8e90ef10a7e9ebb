package services

import (
	"context"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/dto"
)

// RegistrationResult carries the identifiers issued for a new member.
type RegistrationResult struct {
	UserID    string
	ProfileID string
	DisplayID string
	Role      domain.Role
}

// RegistrationSvcFacade creates members of the school: the login identity, the
// role profile, the human-readable display ID and, for students, the fee
// account for the current year.
type RegistrationSvcFacade interface {
	RegisterStudent(ctx context.Context, actor domain.Actor, req dto.RegisterStudentRequest) (*RegistrationResult, error)
	RegisterTeacher(ctx context.Context, actor domain.Actor, req dto.RegisterTeacherRequest) (*RegistrationResult, error)
	RegisterStaff(ctx context.Context, actor domain.Actor, req dto.RegisterStaffRequest) (*RegistrationResult, error)

	// GetStudent retrieves a student profile by its primary key.
	GetStudent(ctx context.Context, actor domain.Actor, studentID string) (*domain.Student, error)

	// ListStudents retrieves students filtered by form and/or class. Staff only.
	ListStudents(ctx context.Context, actor domain.Actor, params dto.ListStudentsParams) ([]domain.Student, error)
}
