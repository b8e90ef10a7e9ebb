package pgsql

import (
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		SchoolRepo:       newPgxSchoolRepository(dbPool),
		FeesRepo:         newPgxFeesRepository(dbPool),
		AssignmentRepo:   newPgxAssignmentRepository(dbPool),
		LibraryRepo:      newPgxLibraryRepository(dbPool),
		ActivityRepo:     newPgxActivityRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
