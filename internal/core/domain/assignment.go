package domain

import "time"

// Assignment is work published by a teacher for a form/class.
type Assignment struct {
	AssignmentID string    `json:"assignmentID"` // Primary key (UUID)
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Subject      string    `json:"subject"`
	Form         string    `json:"form"`
	Class        string    `json:"class,omitempty"` // Empty means the whole form
	TeacherID    string    `json:"teacherID"`
	TeacherName  string    `json:"teacherName,omitempty"` // Resolved on read
	DueDate      time.Time `json:"dueDate"`
	AuditFields
}

// AssignmentSubmission is a student's answer to an assignment; at most one per
// student per assignment, later submissions replace earlier ones.
type AssignmentSubmission struct {
	SubmissionID  string    `json:"submissionID"` // Primary key (UUID)
	AssignmentID  string    `json:"assignmentID"`
	StudentID     string    `json:"studentID"`
	Content       string    `json:"content,omitempty"`
	AttachmentURL string    `json:"attachmentURL,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
	AuditFields
}
