package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/dto"
	"github.com/grschool/sms_backend/internal/middleware"
)

// defaultLoanDays is the lending period when the borrow request has no due date.
const defaultLoanDays = 14

// libraryService manages the book catalogue and loans.
type libraryService struct {
	libraryRepo portsrepo.LibraryRepositoryFacade
	schoolRepo  portsrepo.SchoolRepositoryFacade
}

// NewLibraryService creates a new library service.
func NewLibraryService(libraryRepo portsrepo.LibraryRepositoryFacade, schoolRepo portsrepo.SchoolRepositoryFacade) portssvc.LibrarySvcFacade {
	return &libraryService{
		libraryRepo: libraryRepo,
		schoolRepo:  schoolRepo,
	}
}

var _ portssvc.LibrarySvcFacade = (*libraryService)(nil)

func (s *libraryService) CreateBook(ctx context.Context, actor domain.Actor, req dto.CreateBookRequest) (*domain.Book, error) {
	if !actor.Role.CanManageLibrary() {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	book := domain.Book{
		BookID:          uuid.NewString(),
		Title:           req.Title,
		Author:          req.Author,
		Category:        req.Category,
		Form:            req.Form,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.libraryRepo.SaveBook(ctx, book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *libraryService) UpdateBook(ctx context.Context, actor domain.Actor, bookID string, req dto.UpdateBookRequest) (*domain.Book, error) {
	if !actor.Role.CanManageLibrary() {
		return nil, apperrors.ErrForbidden
	}

	book, err := s.libraryRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.Form != nil {
		book.Form = *req.Form
	}
	if req.TotalCopies != nil {
		delta := *req.TotalCopies - book.TotalCopies
		if book.AvailableCopies+delta < 0 {
			return nil, fmt.Errorf("%w: cannot shrink total below copies currently on loan", apperrors.ErrValidation)
		}
		book.TotalCopies = *req.TotalCopies
		book.AvailableCopies += delta
	}
	book.LastUpdatedAt = time.Now()
	book.LastUpdatedBy = actor.UserID

	if err := s.libraryRepo.UpdateBook(ctx, *book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *libraryService) DeleteBook(ctx context.Context, actor domain.Actor, bookID string) error {
	if !actor.Role.CanManageLibrary() {
		return apperrors.ErrForbidden
	}
	if _, err := s.libraryRepo.FindBookByID(ctx, bookID); err != nil {
		return err
	}
	return s.libraryRepo.MarkBookDeleted(ctx, bookID, time.Now(), actor.UserID)
}

func (s *libraryService) GetBook(ctx context.Context, actor domain.Actor, bookID string) (*domain.Book, error) {
	return s.libraryRepo.FindBookByID(ctx, bookID)
}

func (s *libraryService) ListBooks(ctx context.Context, actor domain.Actor, params dto.ListBooksParams) ([]domain.Book, error) {
	filter := portsrepo.BookFilter{
		Category: params.Category,
		Form:     params.Form,
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.libraryRepo.FindBooks(ctx, filter)
}

func (s *libraryService) BorrowBook(ctx context.Context, actor domain.Actor, bookID string, req dto.BorrowBookRequest) (*domain.BookLoan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanManageLibrary() {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.schoolRepo.FindStudentByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	now := time.Now()
	dueDate := now.AddDate(0, 0, defaultLoanDays)
	if req.DueDate != nil {
		if req.DueDate.Before(now) {
			return nil, fmt.Errorf("%w: loan due date must be in the future", apperrors.ErrValidation)
		}
		dueDate = *req.DueDate
	}

	loan := domain.BookLoan{
		LoanID:     uuid.NewString(),
		BookID:     bookID,
		StudentID:  req.StudentID,
		BorrowedAt: now,
		DueDate:    dueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.libraryRepo.BorrowBook(ctx, loan); err != nil {
		if errors.Is(err, portsrepo.ErrNoCopiesAvailable) {
			return nil, fmt.Errorf("%w: no copies available", apperrors.ErrConflict)
		}
		return nil, err
	}

	logger.Info("book borrowed",
		slog.String("book_id", bookID), slog.String("student_id", req.StudentID))

	return &loan, nil
}

func (s *libraryService) ReturnBook(ctx context.Context, actor domain.Actor, loanID string) (*domain.BookLoan, error) {
	if !actor.Role.CanManageLibrary() {
		return nil, apperrors.ErrForbidden
	}
	return s.libraryRepo.ReturnLoan(ctx, loanID, time.Now(), actor.UserID)
}

func (s *libraryService) ListStudentLoans(ctx context.Context, actor domain.Actor, studentID string) ([]domain.BookLoan, error) {
	if actor.Role == domain.RoleStudent {
		student, err := s.schoolRepo.FindStudentByID(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if student.UserID != actor.UserID {
			return nil, apperrors.ErrForbidden
		}
	}
	return s.libraryRepo.FindLoansByStudent(ctx, studentID, false)
}
