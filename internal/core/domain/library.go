package domain

import "time"

// Book is a title held by the school library.
type Book struct {
	BookID          string `json:"bookID"` // Primary key (UUID)
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category,omitempty"`
	Form            string `json:"form,omitempty"` // Target grade level, if any
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
	AuditFields
}

// BookLoan records a copy borrowed by a student. ReturnedAt is nil while the
// loan is open.
type BookLoan struct {
	LoanID     string     `json:"loanID"` // Primary key (UUID)
	BookID     string     `json:"bookID"`
	StudentID  string     `json:"studentID"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	AuditFields
}
