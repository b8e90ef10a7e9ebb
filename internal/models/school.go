package models

import (
	"database/sql"
	"time"
)

// Student is the students table row.
type Student struct {
	StudentID    string         `db:"student_id"`
	UserID       string         `db:"user_id"`
	DisplayID    string         `db:"display_id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Form         string         `db:"form"`
	Class        string         `db:"class"`
	GuardianName sql.NullString `db:"guardian_name"`
	DateOfBirth  *time.Time     `db:"date_of_birth"`
	AuditFields
}

// Teacher is the teachers table row.
type Teacher struct {
	TeacherID string         `db:"teacher_id"`
	UserID    string         `db:"user_id"`
	DisplayID string         `db:"display_id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Subject   sql.NullString `db:"subject"`
	AuditFields
}

// Staff is the staff table row.
type Staff struct {
	StaffID   string         `db:"staff_id"`
	UserID    string         `db:"user_id"`
	DisplayID string         `db:"display_id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Position  sql.NullString `db:"position"`
	AuditFields
}
