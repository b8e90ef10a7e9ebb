package models

import (
	"database/sql"
	"time"
)

// Assignment is the assignments table row.
type Assignment struct {
	AssignmentID string         `db:"assignment_id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Subject      string         `db:"subject"`
	Form         string         `db:"form"`
	Class        sql.NullString `db:"class"`
	TeacherID    string         `db:"teacher_id"`
	DueDate      time.Time      `db:"due_date"`
	AuditFields
}

// AssignmentSubmission is the assignment_submissions table row.
type AssignmentSubmission struct {
	SubmissionID  string         `db:"submission_id"`
	AssignmentID  string         `db:"assignment_id"`
	StudentID     string         `db:"student_id"`
	Content       sql.NullString `db:"content"`
	AttachmentURL sql.NullString `db:"attachment_url"`
	SubmittedAt   time.Time      `db:"submitted_at"`
	AuditFields
}

// Book is the books table row.
type Book struct {
	BookID          string         `db:"book_id"`
	Title           string         `db:"title"`
	Author          string         `db:"author"`
	Category        sql.NullString `db:"category"`
	Form            sql.NullString `db:"form"`
	TotalCopies     int            `db:"total_copies"`
	AvailableCopies int            `db:"available_copies"`
	AuditFields
}

// BookLoan is the book_loans table row.
type BookLoan struct {
	LoanID     string     `db:"loan_id"`
	BookID     string     `db:"book_id"`
	StudentID  string     `db:"student_id"`
	BorrowedAt time.Time  `db:"borrowed_at"`
	DueDate    time.Time  `db:"due_date"`
	ReturnedAt *time.Time `db:"returned_at"`
	AuditFields
}

// Activity is the activities table row.
type Activity struct {
	ActivityID  string         `db:"activity_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Venue       sql.NullString `db:"venue"`
	Form        sql.NullString `db:"form"`
	StartsAt    time.Time      `db:"starts_at"`
	EndsAt      time.Time      `db:"ends_at"`
	IsApproved  bool           `db:"is_approved"`
	ApprovedBy  sql.NullString `db:"approved_by"`
	AuditFields
}

// Notification is the notifications table row.
type Notification struct {
	NotificationID string         `db:"notification_id"`
	RecipientID    string         `db:"recipient_id"`
	Title          string         `db:"title"`
	Body           string         `db:"body"`
	Category       string         `db:"category"`
	Priority       string         `db:"priority"`
	Link           sql.NullString `db:"link"`
	ExpiresAt      *time.Time     `db:"expires_at"`
	IsRead         bool           `db:"is_read"`
	AuditFields
}
