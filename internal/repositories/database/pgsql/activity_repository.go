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

const activityColumns = `activity_id, title, description, venue, form, starts_at, ends_at, is_approved, approved_by,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxActivityRepository struct {
	db *pgxpool.Pool
}

func newPgxActivityRepository(db *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{db: db}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var m models.Activity
	err := row.Scan(
		&m.ActivityID,
		&m.Title,
		&m.Description,
		&m.Venue,
		&m.Form,
		&m.StartsAt,
		&m.EndsAt,
		&m.IsApproved,
		&m.ApprovedBy,
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

func (r *PgxActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE activity_id = $1 AND deleted_at IS NULL;`, activityColumns)
	m, err := scanActivity(r.db.QueryRow(ctx, query, activityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find activity %s: %w", activityID, err)
	}
	d := mapping.ToDomainActivity(*m)
	return &d, nil
}

func (r *PgxActivityRepository) FindActivities(ctx context.Context, filter portsrepo.ActivityFilter) ([]domain.Activity, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM activities
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR form = $1 OR form IS NULL)
		  AND ($2 = FALSE OR is_approved)
		  AND ($3::timestamptz IS NULL OR ends_at >= $3)
		  AND ($4::timestamptz IS NULL OR starts_at <= $4)
		ORDER BY starts_at
		LIMIT $5 OFFSET $6;`, activityColumns)

	rows, err := r.db.Query(ctx, query, filter.Form, filter.ApprovedOnly, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, mapping.ToDomainActivity(*m))
	}
	return activities, rows.Err()
}

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
		INSERT INTO activities (activity_id, title, description, venue, form, starts_at, ends_at, is_approved, approved_by,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.ActivityID,
		m.Title,
		m.Description,
		m.Venue,
		m.Form,
		m.StartsAt,
		m.EndsAt,
		m.IsApproved,
		m.ApprovedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

func (r *PgxActivityRepository) UpdateActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
		UPDATE activities SET
			title = $2, description = $3, venue = $4, starts_at = $5, ends_at = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE activity_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ActivityID,
		m.Title,
		m.Description,
		m.Venue,
		m.StartsAt,
		m.EndsAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxActivityRepository) ApproveActivity(ctx context.Context, activityID string, approverID string, now time.Time) error {
	query := `
		UPDATE activities SET is_approved = TRUE, approved_by = $2, last_updated_at = $3, last_updated_by = $2
		WHERE activity_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, activityID, approverID, now)
	if err != nil {
		return fmt.Errorf("failed to approve activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxActivityRepository) MarkActivityDeleted(ctx context.Context, activityID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE activities SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE activity_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, activityID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark activity deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
