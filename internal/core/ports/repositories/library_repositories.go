package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// ErrNoCopiesAvailable is returned when a borrow is attempted against a book
// with no available copies. The check runs under the book row lock.
var ErrNoCopiesAvailable = errors.New("no copies of the book are available")

// BookFilter narrows book listings.
type BookFilter struct {
	Category string
	Form     string
	Search   string // Matches against title or author
	Limit    int
	Offset   int
}

// LibraryReader defines read operations for books and loans.
type LibraryReader interface {
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	FindBooks(ctx context.Context, filter BookFilter) ([]domain.Book, error)
	FindLoansByStudent(ctx context.Context, studentID string, openOnly bool) ([]domain.BookLoan, error)
}

// LibraryWriter defines write operations for books and loans. Borrow and return
// adjust the available-copy count under the book row lock.
type LibraryWriter interface {
	SaveBook(ctx context.Context, book domain.Book) error

	// UpdateBook updates catalogue details. Changing TotalCopies shifts
	// AvailableCopies by the same delta under the row lock.
	UpdateBook(ctx context.Context, book domain.Book) error

	// MarkBookDeleted soft deletes a catalogue entry.
	MarkBookDeleted(ctx context.Context, bookID string, deletedAt time.Time, deletedBy string) error

	// BorrowBook decrements available copies and records the loan atomically.
	// Returns ErrNoCopiesAvailable when nothing is left on the shelf.
	BorrowBook(ctx context.Context, loan domain.BookLoan) error

	// ReturnLoan closes the loan and increments available copies atomically.
	ReturnLoan(ctx context.Context, loanID string, returnedAt time.Time, actorID string) (*domain.BookLoan, error)
}

// LibraryRepositoryFacade combines the library repository interfaces.
type LibraryRepositoryFacade interface {
	LibraryReader
	LibraryWriter
}
