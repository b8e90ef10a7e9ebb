package dto

import (
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// CreateBookRequest adds a title to the library catalogue.
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Category    string `json:"category"`
	Form        string `json:"form"`
	TotalCopies int    `json:"totalCopies" binding:"required,min=1"`
}

// UpdateBookRequest defines the data allowed for updating a book.
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Category    *string `json:"category"`
	Form        *string `json:"form"`
	TotalCopies *int    `json:"totalCopies"`
}

// ListBooksParams defines query parameters for browsing the catalogue.
type ListBooksParams struct {
	Category string `form:"category"`
	Form     string `form:"form"`
	Search   string `form:"search"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

// BorrowBookRequest records a loan of one copy to a student.
type BorrowBookRequest struct {
	StudentID string     `json:"studentID" binding:"required"`
	DueDate   *time.Time `json:"dueDate"`
}

// BookResponse is the public shape of a catalogue entry.
type BookResponse struct {
	BookID          string `json:"bookID"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category,omitempty"`
	Form            string `json:"form,omitempty"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
}

// LoanResponse is the public shape of a loan.
type LoanResponse struct {
	LoanID     string     `json:"loanID"`
	BookID     string     `json:"bookID"`
	StudentID  string     `json:"studentID"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

// ToBookResponse converts a domain.Book to its response shape.
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:          b.BookID,
		Title:           b.Title,
		Author:          b.Author,
		Category:        b.Category,
		Form:            b.Form,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

// ToBookResponses converts a slice of domain.Book to responses.
func ToBookResponses(books []domain.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = ToBookResponse(&b)
	}
	return out
}

// ToLoanResponse converts a domain.BookLoan to its response shape.
func ToLoanResponse(l *domain.BookLoan) LoanResponse {
	return LoanResponse{
		LoanID:     l.LoanID,
		BookID:     l.BookID,
		StudentID:  l.StudentID,
		BorrowedAt: l.BorrowedAt,
		DueDate:    l.DueDate,
		ReturnedAt: l.ReturnedAt,
	}
}

// ToLoanResponses converts a slice of domain.BookLoan to responses.
func ToLoanResponses(loans []domain.BookLoan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i, l := range loans {
		out[i] = ToLoanResponse(&l)
	}
	return out
}
