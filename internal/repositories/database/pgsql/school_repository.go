package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	"github.com/grschool/sms_backend/internal/models"
	"github.com/grschool/sms_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `student_id, user_id, display_id, first_name, last_name, form, class, guardian_name, date_of_birth,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxSchoolRepository struct {
	BaseRepository
}

func newPgxSchoolRepository(pool *pgxpool.Pool) portsrepo.SchoolRepositoryFacade {
	return &PgxSchoolRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SchoolRepositoryFacade = (*PgxSchoolRepository)(nil)

func scanStudent(row pgx.Row) (*models.Student, error) {
	var m models.Student
	err := row.Scan(
		&m.StudentID,
		&m.UserID,
		&m.DisplayID,
		&m.FirstName,
		&m.LastName,
		&m.Form,
		&m.Class,
		&m.GuardianName,
		&m.DateOfBirth,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxSchoolRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE student_id = $1;`, studentColumns)
	m, err := scanStudent(r.Pool.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student %s: %w", studentID, err)
	}
	d := mapping.ToDomainStudent(*m)
	return &d, nil
}

func (r *PgxSchoolRepository) FindStudentByUserID(ctx context.Context, userID string) (*domain.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE user_id = $1;`, studentColumns)
	m, err := scanStudent(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student for user %s: %w", userID, err)
	}
	d := mapping.ToDomainStudent(*m)
	return &d, nil
}

func (r *PgxSchoolRepository) FindStudents(ctx context.Context, form string, class string, limit int, offset int) ([]domain.Student, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM students
		WHERE ($1 = '' OR form = $1)
		  AND ($2 = '' OR class = $2)
		ORDER BY display_id
		LIMIT $3 OFFSET $4;`, studentColumns)

	rows, err := r.Pool.Query(ctx, query, form, class, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var ms []models.Student
	for rows.Next() {
		m, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainStudentSlice(ms), rows.Err()
}

func (r *PgxSchoolRepository) FindTeacherByID(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	return r.findTeacherWhere(ctx, "teacher_id = $1", teacherID)
}

func (r *PgxSchoolRepository) FindTeacherByUserID(ctx context.Context, userID string) (*domain.Teacher, error) {
	return r.findTeacherWhere(ctx, "user_id = $1", userID)
}

func (r *PgxSchoolRepository) findTeacherWhere(ctx context.Context, clause string, args ...any) (*domain.Teacher, error) {
	query := fmt.Sprintf(`
		SELECT teacher_id, user_id, display_id, first_name, last_name, subject,
			created_at, created_by, last_updated_at, last_updated_by
		FROM teachers WHERE %s;`, clause)

	var m models.Teacher
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.TeacherID,
		&m.UserID,
		&m.DisplayID,
		&m.FirstName,
		&m.LastName,
		&m.Subject,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find teacher: %w", err)
	}
	d := mapping.ToDomainTeacher(m)
	return &d, nil
}

func (r *PgxSchoolRepository) FindStaffByUserID(ctx context.Context, userID string) (*domain.Staff, error) {
	query := `
		SELECT staff_id, user_id, display_id, first_name, last_name, position,
			created_at, created_by, last_updated_at, last_updated_by
		FROM staff WHERE user_id = $1;`

	var m models.Staff
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.StaffID,
		&m.UserID,
		&m.DisplayID,
		&m.FirstName,
		&m.LastName,
		&m.Position,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff for user %s: %w", userID, err)
	}
	d := mapping.ToDomainStaff(m)
	return &d, nil
}

// NextSequenceNumber atomically increments and returns the registration counter
// for the prefix. The upsert makes concurrent registrations serialize on the
// counter row, so two registrars can never draw the same number.
func (r *PgxSchoolRepository) NextSequenceNumber(ctx context.Context, prefix string) (int64, error) {
	query := `
		INSERT INTO registration_sequences (prefix, last_value)
		VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_value = registration_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := r.Pool.QueryRow(ctx, query, prefix).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", prefix, err)
	}
	return seq, nil
}

// insertUserTx inserts the user row inside the registration transaction.
func insertUserTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, phone_number, name, email, password_hash, role, auth_provider, provider_id, is_verified,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.UserID,
		m.PhoneNumber,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.AuthProvider,
		m.ProviderID,
		m.IsVerified,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// CreateStudent inserts the user and student rows in one transaction.
func (r *PgxSchoolRepository) CreateStudent(ctx context.Context, user domain.User, student domain.Student) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertUserTx(ctx, tx, user); err != nil {
		return err
	}

	m := mapping.ToModelStudent(student)
	query := `
		INSERT INTO students (student_id, user_id, display_id, first_name, last_name, form, class, guardian_name, date_of_birth,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.StudentID,
		m.UserID,
		m.DisplayID,
		m.FirstName,
		m.LastName,
		m.Form,
		m.Class,
		m.GuardianName,
		m.DateOfBirth,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}

	return r.Commit(ctx, tx)
}

// CreateTeacher inserts the user and teacher rows in one transaction.
func (r *PgxSchoolRepository) CreateTeacher(ctx context.Context, user domain.User, teacher domain.Teacher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertUserTx(ctx, tx, user); err != nil {
		return err
	}

	m := mapping.ToModelTeacher(teacher)
	query := `
		INSERT INTO teachers (teacher_id, user_id, display_id, first_name, last_name, subject,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.TeacherID,
		m.UserID,
		m.DisplayID,
		m.FirstName,
		m.LastName,
		m.Subject,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert teacher: %w", err)
	}

	return r.Commit(ctx, tx)
}

// CreateStaff inserts the user and staff rows in one transaction.
func (r *PgxSchoolRepository) CreateStaff(ctx context.Context, user domain.User, staff domain.Staff) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertUserTx(ctx, tx, user); err != nil {
		return err
	}

	m := mapping.ToModelStaff(staff)
	query := `
		INSERT INTO staff (staff_id, user_id, display_id, first_name, last_name, position,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.StaffID,
		m.UserID,
		m.DisplayID,
		m.FirstName,
		m.LastName,
		m.Position,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert staff: %w", err)
	}

	return r.Commit(ctx, tx)
}
