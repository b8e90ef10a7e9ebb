package dto

import (
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// CreateAssignmentRequest publishes an assignment to a form/class.
type CreateAssignmentRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Subject     string    `json:"subject" binding:"required"`
	Form        string    `json:"form" binding:"required"`
	Class       string    `json:"class"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// UpdateAssignmentRequest defines the data allowed for updating an assignment.
type UpdateAssignmentRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Subject     *string    `json:"subject"`
	DueDate     *time.Time `json:"dueDate"`
}

// ListAssignmentsParams defines query parameters for listing assignments.
type ListAssignmentsParams struct {
	Form    string `form:"form"`
	Class   string `form:"class"`
	Subject string `form:"subject"`
	Limit   int    `form:"limit,default=20"`
	Offset  int    `form:"offset,default=0"`
}

// SubmitAssignmentRequest submits a student's answer. At least one of
// content/attachmentURL should be set; the service enforces that.
type SubmitAssignmentRequest struct {
	Content       string `json:"content"`
	AttachmentURL string `json:"attachmentURL"`
}

// AssignmentResponse is the public shape of an assignment.
type AssignmentResponse struct {
	AssignmentID string    `json:"assignmentID"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Subject      string    `json:"subject"`
	Form         string    `json:"form"`
	Class        string    `json:"class,omitempty"`
	TeacherID    string    `json:"teacherID"`
	TeacherName  string    `json:"teacherName,omitempty"`
	DueDate      time.Time `json:"dueDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubmissionResponse is the public shape of a submission.
type SubmissionResponse struct {
	SubmissionID  string    `json:"submissionID"`
	AssignmentID  string    `json:"assignmentID"`
	StudentID     string    `json:"studentID"`
	Content       string    `json:"content,omitempty"`
	AttachmentURL string    `json:"attachmentURL,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// ToAssignmentResponse converts a domain.Assignment to its response shape.
func ToAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID: a.AssignmentID,
		Title:        a.Title,
		Description:  a.Description,
		Subject:      a.Subject,
		Form:         a.Form,
		Class:        a.Class,
		TeacherID:    a.TeacherID,
		TeacherName:  a.TeacherName,
		DueDate:      a.DueDate,
		CreatedAt:    a.CreatedAt,
	}
}

// ToAssignmentResponses converts a slice of domain.Assignment to responses.
func ToAssignmentResponses(assignments []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		out[i] = ToAssignmentResponse(&a)
	}
	return out
}

// ToSubmissionResponse converts a domain.AssignmentSubmission to its response shape.
func ToSubmissionResponse(s *domain.AssignmentSubmission) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID:  s.SubmissionID,
		AssignmentID:  s.AssignmentID,
		StudentID:     s.StudentID,
		Content:       s.Content,
		AttachmentURL: s.AttachmentURL,
		SubmittedAt:   s.SubmittedAt,
	}
}

// ToSubmissionResponses converts a slice of submissions to responses.
func ToSubmissionResponses(subs []domain.AssignmentSubmission) []SubmissionResponse {
	out := make([]SubmissionResponse, len(subs))
	for i, s := range subs {
		out[i] = ToSubmissionResponse(&s)
	}
	return out
}
