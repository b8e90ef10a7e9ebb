package services

import (
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/platform/cache"
	"github.com/grschool/sms_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. statements and pushSender may be nil when the corresponding
// infrastructure is not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, statements cache.Cache, pushSender portssvc.PushSender) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo, pushSender)

	// Fees depends on notifications for payment and reminder fan-out.
	container.Fees = NewFeesService(repos.FeesRepo, repos.SchoolRepo, container.Notification, statements, cfg.DefaultTermFees, cfg.FeeDueInDays)

	container.Registration = NewRegistrationService(repos.SchoolRepo, repos.FeesRepo, cfg.DefaultTermFees, cfg.FeeDueInDays)
	container.Assignment = NewAssignmentService(repos.AssignmentRepo, repos.SchoolRepo)
	container.Library = NewLibraryService(repos.LibraryRepo, repos.SchoolRepo)
	container.Activity = NewActivityService(repos.ActivityRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
