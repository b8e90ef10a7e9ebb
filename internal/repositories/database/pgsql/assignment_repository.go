package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	"github.com/grschool/sms_backend/internal/models"
	"github.com/grschool/sms_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// assignmentSelect joins teachers so listings carry the teacher's name.
const assignmentSelect = `
	SELECT a.assignment_id, a.title, a.description, a.subject, a.form, a.class, a.teacher_id,
		t.first_name || ' ' || t.last_name,
		a.due_date, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
	FROM assignments a
	JOIN teachers t ON t.teacher_id = a.teacher_id`

type PgxAssignmentRepository struct {
	db *pgxpool.Pool
}

func newPgxAssignmentRepository(db *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{db: db}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var m models.Assignment
	var teacherName string
	err := row.Scan(
		&m.AssignmentID,
		&m.Title,
		&m.Description,
		&m.Subject,
		&m.Form,
		&m.Class,
		&m.TeacherID,
		&teacherName,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainAssignment(m)
	d.TeacherName = teacherName
	return &d, nil
}

func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	query := assignmentSelect + ` WHERE a.assignment_id = $1 AND a.deleted_at IS NULL;`
	assignment, err := scanAssignment(r.db.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}
	return assignment, nil
}

func (r *PgxAssignmentRepository) FindAssignments(ctx context.Context, filter portsrepo.AssignmentFilter) ([]domain.Assignment, error) {
	query := assignmentSelect + `
	WHERE a.deleted_at IS NULL
	  AND ($1 = '' OR a.form = $1)
	  AND ($2 = '' OR a.class = $2 OR a.class IS NULL)
	  AND ($3 = '' OR a.subject = $3)
	ORDER BY a.due_date DESC
	LIMIT $4 OFFSET $5;`

	rows, err := r.db.Query(ctx, query, filter.Form, filter.Class, filter.Subject, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, *assignment)
	}
	return assignments, rows.Err()
}

func (r *PgxAssignmentRepository) FindSubmissionsByAssignment(ctx context.Context, assignmentID string) ([]domain.AssignmentSubmission, error) {
	query := `
		SELECT submission_id, assignment_id, student_id, content, attachment_url, submitted_at,
			created_at, created_by, last_updated_at, last_updated_by
		FROM assignment_submissions
		WHERE assignment_id = $1
		ORDER BY submitted_at DESC;`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.AssignmentSubmission
	for rows.Next() {
		var m models.AssignmentSubmission
		err := rows.Scan(
			&m.SubmissionID,
			&m.AssignmentID,
			&m.StudentID,
			&m.Content,
			&m.AttachmentURL,
			&m.SubmittedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		subs = append(subs, mapping.ToDomainSubmission(m))
	}
	return subs, rows.Err()
}

func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.Assignment) error {
	m := mapping.ToModelAssignment(assignment)
	query := `
		INSERT INTO assignments (assignment_id, title, description, subject, form, class, teacher_id, due_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.AssignmentID,
		m.Title,
		m.Description,
		m.Subject,
		m.Form,
		m.Class,
		m.TeacherID,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}

func (r *PgxAssignmentRepository) UpdateAssignment(ctx context.Context, assignment domain.Assignment) error {
	m := mapping.ToModelAssignment(assignment)
	query := `
		UPDATE assignments SET
			title = $2, description = $3, subject = $4, due_date = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE assignment_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		m.AssignmentID,
		m.Title,
		m.Description,
		m.Subject,
		m.DueDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpsertSubmission inserts the submission, replacing any earlier one by the
// same student for the same assignment.
func (r *PgxAssignmentRepository) UpsertSubmission(ctx context.Context, submission domain.AssignmentSubmission) error {
	m := mapping.ToModelSubmission(submission)
	query := `
		INSERT INTO assignment_submissions (submission_id, assignment_id, student_id, content, attachment_url, submitted_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (assignment_id, student_id) DO UPDATE SET
			content = EXCLUDED.content,
			attachment_url = EXCLUDED.attachment_url,
			submitted_at = EXCLUDED.submitted_at,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.SubmissionID,
		m.AssignmentID,
		m.StudentID,
		m.Content,
		m.AttachmentURL,
		m.SubmittedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert submission: %w", err)
	}
	return nil
}

func (r *PgxAssignmentRepository) MarkAssignmentDeleted(ctx context.Context, assignmentID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE assignments SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE assignment_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, assignmentID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark assignment deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
