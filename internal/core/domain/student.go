package domain

import "time"

// Student is the school profile linked to a User with RoleStudent.
// DisplayID is the human-readable registration number, e.g. "GRS/2026/014".
type Student struct {
	StudentID    string     `json:"studentID"` // Primary key (UUID)
	UserID       string     `json:"userID"`    // FK -> users.user_id
	DisplayID    string     `json:"displayID"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Form         string     `json:"form"`  // Grade level, e.g. "S3"
	Class        string     `json:"class"` // Section within the form, e.g. "S3 East"
	GuardianName string     `json:"guardianName,omitempty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	AuditFields
}

// Teacher is the school profile linked to a User with RoleTeacher.
type Teacher struct {
	TeacherID string `json:"teacherID"` // Primary key (UUID)
	UserID    string `json:"userID"`
	DisplayID string `json:"displayID"` // e.g. "TCH/2026/003"
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Subject   string `json:"subject,omitempty"`
	AuditFields
}

// Staff is the school profile for bursars, admins and other non-teaching staff.
type Staff struct {
	StaffID   string `json:"staffID"` // Primary key (UUID)
	UserID    string `json:"userID"`
	DisplayID string `json:"displayID"` // Role-prefixed, e.g. "BUR/2026/001"
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position,omitempty"`
	AuditFields
}
