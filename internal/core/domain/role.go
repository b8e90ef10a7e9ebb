package domain

// Role is the school-wide role attached to a user account.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleBursar  Role = "BURSAR"
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF" // non-teaching staff without a more specific role
)

// Actor is the authenticated principal performing an operation. Services receive
// it explicitly; authorization is never re-read from ambient storage.
type Actor struct {
	UserID string
	Role   Role
}

// CanManageFees reports whether the role may approve/reject payments and apply discounts.
func (r Role) CanManageFees() bool {
	return r == RoleBursar || r == RoleAdmin
}

// CanPublishAssignments reports whether the role may create or update assignments.
func (r Role) CanPublishAssignments() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// CanManageLibrary reports whether the role may add books and record loans.
func (r Role) CanManageLibrary() bool {
	return r == RoleStaff || r == RoleBursar || r == RoleAdmin
}

// CanManageActivities reports whether the role may create activities.
func (r Role) CanManageActivities() bool {
	return r == RoleStaff || r == RoleTeacher || r == RoleAdmin
}

// CanSendNotifications reports whether the role may push notifications to other users.
func (r Role) CanSendNotifications() bool {
	return r != RoleStudent
}

// CanRegisterUsers reports whether the role may register students, teachers or staff.
func (r Role) CanRegisterUsers() bool {
	return r == RoleAdmin
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleBursar, RoleAdmin, RoleStaff:
		return true
	}
	return false
}
