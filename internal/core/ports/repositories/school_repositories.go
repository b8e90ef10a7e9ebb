package repositories

import (
	"context"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// StudentReader defines read operations for student profiles.
type StudentReader interface {
	// FindStudentByID retrieves a student profile by its primary key.
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)

	// FindStudentByUserID retrieves the student profile linked to a user.
	FindStudentByUserID(ctx context.Context, userID string) (*domain.Student, error)

	// FindStudents retrieves students filtered by form and/or class.
	FindStudents(ctx context.Context, form string, class string, limit int, offset int) ([]domain.Student, error)
}

// TeacherReader defines read operations for teacher profiles.
type TeacherReader interface {
	FindTeacherByID(ctx context.Context, teacherID string) (*domain.Teacher, error)
	FindTeacherByUserID(ctx context.Context, userID string) (*domain.Teacher, error)
}

// StaffReader defines read operations for staff profiles.
type StaffReader interface {
	FindStaffByUserID(ctx context.Context, userID string) (*domain.Staff, error)
}

// RegistrationWriter creates identity plus profile rows atomically and issues
// sequence numbers for display IDs.
type RegistrationWriter interface {
	// NextSequenceNumber atomically increments and returns the counter for the
	// given prefix (e.g. "GRS/2026"). Safe under concurrent registration.
	NextSequenceNumber(ctx context.Context, prefix string) (int64, error)

	// CreateStudent inserts the user and student rows in one transaction.
	CreateStudent(ctx context.Context, user domain.User, student domain.Student) error

	// CreateTeacher inserts the user and teacher rows in one transaction.
	CreateTeacher(ctx context.Context, user domain.User, teacher domain.Teacher) error

	// CreateStaff inserts the user and staff rows in one transaction.
	CreateStaff(ctx context.Context, user domain.User, staff domain.Staff) error
}

// SchoolRepositoryFacade combines profile reads with registration writes.
type SchoolRepositoryFacade interface {
	StudentReader
	TeacherReader
	StaffReader
	RegistrationWriter
}
