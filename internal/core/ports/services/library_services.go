package services

import (
	"context"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/dto"
)

// LibrarySvcFacade manages the book catalogue and loans.
type LibrarySvcFacade interface {
	// CreateBook adds a title to the catalogue. Staff only.
	CreateBook(ctx context.Context, actor domain.Actor, req dto.CreateBookRequest) (*domain.Book, error)

	// UpdateBook updates catalogue details. Staff only.
	UpdateBook(ctx context.Context, actor domain.Actor, bookID string, req dto.UpdateBookRequest) (*domain.Book, error)

	// DeleteBook soft deletes a catalogue entry. Staff only.
	DeleteBook(ctx context.Context, actor domain.Actor, bookID string) error

	// GetBook retrieves a catalogue entry by ID.
	GetBook(ctx context.Context, actor domain.Actor, bookID string) (*domain.Book, error)

	// ListBooks browses the catalogue with optional category/form/search filters.
	ListBooks(ctx context.Context, actor domain.Actor, params dto.ListBooksParams) ([]domain.Book, error)

	// BorrowBook lends one copy to a student, decrementing availability.
	// Fails when no copies are available. Staff only.
	BorrowBook(ctx context.Context, actor domain.Actor, bookID string, req dto.BorrowBookRequest) (*domain.BookLoan, error)

	// ReturnBook closes a loan and restores the copy. Staff only.
	ReturnBook(ctx context.Context, actor domain.Actor, loanID string) (*domain.BookLoan, error)

	// ListStudentLoans lists a student's loans, open ones first.
	ListStudentLoans(ctx context.Context, actor domain.Actor, studentID string) ([]domain.BookLoan, error)
}
