package repositories

// RepositoryProvider bundles the repository facades for dependency injection
// into the service container.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	SchoolRepo       SchoolRepositoryFacade
	FeesRepo         FeesRepositoryFacade
	AssignmentRepo   AssignmentRepositoryFacade
	LibraryRepo      LibraryRepositoryFacade
	ActivityRepo     ActivityRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
