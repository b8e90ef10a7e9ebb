package repositories

import (
	"context"
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// ActivityFilter narrows activity listings.
type ActivityFilter struct {
	From         *time.Time
	To           *time.Time
	Form         string
	ApprovedOnly bool
	Limit        int
	Offset       int
}

// ActivityReader defines read operations for activities.
type ActivityReader interface {
	FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error)
	FindActivities(ctx context.Context, filter ActivityFilter) ([]domain.Activity, error)
}

// ActivityWriter defines write operations for activities.
type ActivityWriter interface {
	SaveActivity(ctx context.Context, activity domain.Activity) error
	UpdateActivity(ctx context.Context, activity domain.Activity) error
	ApproveActivity(ctx context.Context, activityID string, approverID string, now time.Time) error
	MarkActivityDeleted(ctx context.Context, activityID string, deletedAt time.Time, deletedBy string) error
}

// ActivityRepositoryFacade combines the activity repository interfaces.
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
