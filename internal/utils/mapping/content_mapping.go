package mapping

import (
	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/models"
)

// ToModelAssignment converts a domain Assignment to a model Assignment.
func ToModelAssignment(d domain.Assignment) models.Assignment {
	return models.Assignment{
		AssignmentID: d.AssignmentID,
		Title:        d.Title,
		Description:  nullString(d.Description),
		Subject:      d.Subject,
		Form:         d.Form,
		Class:        nullString(d.Class),
		TeacherID:    d.TeacherID,
		DueDate:      d.DueDate,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainAssignment converts a model Assignment to a domain Assignment.
func ToDomainAssignment(m models.Assignment) domain.Assignment {
	return domain.Assignment{
		AssignmentID: m.AssignmentID,
		Title:        m.Title,
		Description:  fromNullString(m.Description),
		Subject:      m.Subject,
		Form:         m.Form,
		Class:        fromNullString(m.Class),
		TeacherID:    m.TeacherID,
		DueDate:      m.DueDate,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToModelSubmission converts a domain AssignmentSubmission to its model.
func ToModelSubmission(d domain.AssignmentSubmission) models.AssignmentSubmission {
	return models.AssignmentSubmission{
		SubmissionID:  d.SubmissionID,
		AssignmentID:  d.AssignmentID,
		StudentID:     d.StudentID,
		Content:       nullString(d.Content),
		AttachmentURL: nullString(d.AttachmentURL),
		SubmittedAt:   d.SubmittedAt,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainSubmission converts a model AssignmentSubmission to its domain form.
func ToDomainSubmission(m models.AssignmentSubmission) domain.AssignmentSubmission {
	return domain.AssignmentSubmission{
		SubmissionID:  m.SubmissionID,
		AssignmentID:  m.AssignmentID,
		StudentID:     m.StudentID,
		Content:       fromNullString(m.Content),
		AttachmentURL: fromNullString(m.AttachmentURL),
		SubmittedAt:   m.SubmittedAt,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToModelBook converts a domain Book to a model Book.
func ToModelBook(d domain.Book) models.Book {
	return models.Book{
		BookID:          d.BookID,
		Title:           d.Title,
		Author:          d.Author,
		Category:        nullString(d.Category),
		Form:            nullString(d.Form),
		TotalCopies:     d.TotalCopies,
		AvailableCopies: d.AvailableCopies,
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// ToDomainBook converts a model Book to a domain Book.
func ToDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:          m.BookID,
		Title:           m.Title,
		Author:          m.Author,
		Category:        fromNullString(m.Category),
		Form:            fromNullString(m.Form),
		TotalCopies:     m.TotalCopies,
		AvailableCopies: m.AvailableCopies,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToModelBookLoan converts a domain BookLoan to a model BookLoan.
func ToModelBookLoan(d domain.BookLoan) models.BookLoan {
	return models.BookLoan{
		LoanID:      d.LoanID,
		BookID:      d.BookID,
		StudentID:   d.StudentID,
		BorrowedAt:  d.BorrowedAt,
		DueDate:     d.DueDate,
		ReturnedAt:  d.ReturnedAt,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainBookLoan converts a model BookLoan to a domain BookLoan.
func ToDomainBookLoan(m models.BookLoan) domain.BookLoan {
	return domain.BookLoan{
		LoanID:      m.LoanID,
		BookID:      m.BookID,
		StudentID:   m.StudentID,
		BorrowedAt:  m.BorrowedAt,
		DueDate:     m.DueDate,
		ReturnedAt:  m.ReturnedAt,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelActivity converts a domain Activity to a model Activity.
func ToModelActivity(d domain.Activity) models.Activity {
	return models.Activity{
		ActivityID:  d.ActivityID,
		Title:       d.Title,
		Description: nullString(d.Description),
		Venue:       nullString(d.Venue),
		Form:        nullString(d.Form),
		StartsAt:    d.StartsAt,
		EndsAt:      d.EndsAt,
		IsApproved:  d.IsApproved,
		ApprovedBy:  nullString(d.ApprovedBy),
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainActivity converts a model Activity to a domain Activity.
func ToDomainActivity(m models.Activity) domain.Activity {
	return domain.Activity{
		ActivityID:  m.ActivityID,
		Title:       m.Title,
		Description: fromNullString(m.Description),
		Venue:       fromNullString(m.Venue),
		Form:        fromNullString(m.Form),
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		IsApproved:  m.IsApproved,
		ApprovedBy:  fromNullString(m.ApprovedBy),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelNotification converts a domain Notification to a model Notification.
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		RecipientID:    d.RecipientID,
		Title:          d.Title,
		Body:           d.Body,
		Category:       string(d.Category),
		Priority:       string(d.Priority),
		Link:           nullString(d.Link),
		ExpiresAt:      d.ExpiresAt,
		IsRead:         d.IsRead,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainNotification converts a model Notification to a domain Notification.
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		RecipientID:    m.RecipientID,
		Title:          m.Title,
		Body:           m.Body,
		Category:       domain.NotificationCategory(m.Category),
		Priority:       domain.NotificationPriority(m.Priority),
		Link:           fromNullString(m.Link),
		ExpiresAt:      m.ExpiresAt,
		IsRead:         m.IsRead,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}
