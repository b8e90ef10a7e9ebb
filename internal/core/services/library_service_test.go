package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/core/services"
	"github.com/grschool/sms_backend/internal/dto"
)

// --- Mock LibraryRepository (based on LibraryService usage) ---
type MockLibraryRepository struct {
	mock.Mock
	FindBookByIDFn       func(ctx context.Context, bookID string) (*domain.Book, error)
	FindBooksFn          func(ctx context.Context, filter portsrepo.BookFilter) ([]domain.Book, error)
	FindLoansByStudentFn func(ctx context.Context, studentID string, openOnly bool) ([]domain.BookLoan, error)
	SaveBookFn           func(ctx context.Context, book domain.Book) error
	UpdateBookFn         func(ctx context.Context, book domain.Book) error
	MarkBookDeletedFn    func(ctx context.Context, bookID string, deletedAt time.Time, deletedBy string) error
	BorrowBookFn         func(ctx context.Context, loan domain.BookLoan) error
	ReturnLoanFn         func(ctx context.Context, loanID string, returnedAt time.Time, actorID string) (*domain.BookLoan, error)
}

func (m *MockLibraryRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	if m.FindBookByIDFn != nil {
		return m.FindBookByIDFn(ctx, bookID)
	}
	args := m.Called(ctx, bookID)
	var book *domain.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*domain.Book)
	}
	return book, args.Error(1)
}

func (m *MockLibraryRepository) FindBooks(ctx context.Context, filter portsrepo.BookFilter) ([]domain.Book, error) {
	if m.FindBooksFn != nil {
		return m.FindBooksFn(ctx, filter)
	}
	args := m.Called(ctx, filter)
	var books []domain.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]domain.Book)
	}
	return books, args.Error(1)
}

func (m *MockLibraryRepository) FindLoansByStudent(ctx context.Context, studentID string, openOnly bool) ([]domain.BookLoan, error) {
	if m.FindLoansByStudentFn != nil {
		return m.FindLoansByStudentFn(ctx, studentID, openOnly)
	}
	args := m.Called(ctx, studentID, openOnly)
	var loans []domain.BookLoan
	if args.Get(0) != nil {
		loans = args.Get(0).([]domain.BookLoan)
	}
	return loans, args.Error(1)
}

func (m *MockLibraryRepository) SaveBook(ctx context.Context, book domain.Book) error {
	if m.SaveBookFn != nil {
		return m.SaveBookFn(ctx, book)
	}
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockLibraryRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	if m.UpdateBookFn != nil {
		return m.UpdateBookFn(ctx, book)
	}
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockLibraryRepository) MarkBookDeleted(ctx context.Context, bookID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkBookDeletedFn != nil {
		return m.MarkBookDeletedFn(ctx, bookID, deletedAt, deletedBy)
	}
	args := m.Called(ctx, bookID, deletedAt, deletedBy)
	return args.Error(0)
}

func (m *MockLibraryRepository) BorrowBook(ctx context.Context, loan domain.BookLoan) error {
	if m.BorrowBookFn != nil {
		return m.BorrowBookFn(ctx, loan)
	}
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLibraryRepository) ReturnLoan(ctx context.Context, loanID string, returnedAt time.Time, actorID string) (*domain.BookLoan, error) {
	if m.ReturnLoanFn != nil {
		return m.ReturnLoanFn(ctx, loanID, returnedAt, actorID)
	}
	args := m.Called(ctx, loanID, returnedAt, actorID)
	var loan *domain.BookLoan
	if args.Get(0) != nil {
		loan = args.Get(0).(*domain.BookLoan)
	}
	return loan, args.Error(1)
}

type LibraryServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	libraryRepo *MockLibraryRepository
	schoolRepo  *MockSchoolRepository
	svc         portssvc.LibrarySvcFacade

	librarian domain.Actor
	student   domain.Actor
	book      domain.Book
}

func (s *LibraryServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.libraryRepo = new(MockLibraryRepository)
	s.schoolRepo = new(MockSchoolRepository)
	s.svc = services.NewLibraryService(s.libraryRepo, s.schoolRepo)

	s.librarian = domain.Actor{UserID: "u-staff", Role: domain.RoleStaff}
	s.student = domain.Actor{UserID: "u-student", Role: domain.RoleStudent}
	s.book = domain.Book{
		BookID:          "bk-1",
		Title:           "Things Fall Apart",
		Author:          "Chinua Achebe",
		TotalCopies:     5,
		AvailableCopies: 3,
	}

	s.schoolRepo.FindStudentByIDFn = func(ctx context.Context, studentID string) (*domain.Student, error) {
		if studentID != "st-1" {
			return nil, apperrors.ErrNotFound
		}
		return &domain.Student{StudentID: "st-1", UserID: "u-student"}, nil
	}
	s.libraryRepo.FindBookByIDFn = func(ctx context.Context, bookID string) (*domain.Book, error) {
		if bookID != s.book.BookID {
			return nil, apperrors.ErrNotFound
		}
		bk := s.book
		return &bk, nil
	}
}

func TestLibraryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LibraryServiceTestSuite))
}

func (s *LibraryServiceTestSuite) TestCreateBook() {
	var saved domain.Book
	s.libraryRepo.SaveBookFn = func(ctx context.Context, book domain.Book) error {
		saved = book
		return nil
	}

	book, err := s.svc.CreateBook(s.ctx, s.librarian, dto.CreateBookRequest{
		Title:       "Weep Not, Child",
		Author:      "Ngugi wa Thiong'o",
		TotalCopies: 4,
	})
	s.Require().NoError(err)
	s.Equal(4, saved.AvailableCopies, "all copies start on the shelf")
	s.Equal(book.BookID, saved.BookID)

	_, err = s.svc.CreateBook(s.ctx, s.student, dto.CreateBookRequest{Title: "x", Author: "y", TotalCopies: 1})
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LibraryServiceTestSuite) TestUpdateBookCopyDelta() {
	var updated domain.Book
	s.libraryRepo.UpdateBookFn = func(ctx context.Context, book domain.Book) error {
		updated = book
		return nil
	}

	// 5 total, 3 available, 2 on loan. Growing to 8 adds 3 to the shelf.
	more := 8
	_, err := s.svc.UpdateBook(s.ctx, s.librarian, "bk-1", dto.UpdateBookRequest{TotalCopies: &more})
	s.Require().NoError(err)
	s.Equal(8, updated.TotalCopies)
	s.Equal(6, updated.AvailableCopies)

	// Shrinking below the 2 copies on loan is refused.
	fewer := 1
	_, err = s.svc.UpdateBook(s.ctx, s.librarian, "bk-1", dto.UpdateBookRequest{TotalCopies: &fewer})
	s.ErrorIs(err, apperrors.ErrValidation)

	// Shrinking to exactly the on-loan count empties the shelf.
	exact := 2
	_, err = s.svc.UpdateBook(s.ctx, s.librarian, "bk-1", dto.UpdateBookRequest{TotalCopies: &exact})
	s.Require().NoError(err)
	s.Equal(0, updated.AvailableCopies)
}

func (s *LibraryServiceTestSuite) TestBorrowBook() {
	var recorded domain.BookLoan
	s.libraryRepo.BorrowBookFn = func(ctx context.Context, loan domain.BookLoan) error {
		recorded = loan
		return nil
	}

	loan, err := s.svc.BorrowBook(s.ctx, s.librarian, "bk-1", dto.BorrowBookRequest{StudentID: "st-1"})
	s.Require().NoError(err)
	s.Equal("bk-1", recorded.BookID)
	s.Equal("st-1", recorded.StudentID)
	s.Nil(loan.ReturnedAt)
	s.WithinDuration(time.Now().AddDate(0, 0, 14), loan.DueDate, time.Minute, "default lending period applies")
}

func (s *LibraryServiceTestSuite) TestBorrowBookGuards() {
	_, err := s.svc.BorrowBook(s.ctx, s.student, "bk-1", dto.BorrowBookRequest{StudentID: "st-1"})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.BorrowBook(s.ctx, s.librarian, "bk-1", dto.BorrowBookRequest{StudentID: "st-404"})
	s.ErrorIs(err, apperrors.ErrNotFound)

	past := time.Now().Add(-time.Hour)
	_, err = s.svc.BorrowBook(s.ctx, s.librarian, "bk-1", dto.BorrowBookRequest{StudentID: "st-1", DueDate: &past})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LibraryServiceTestSuite) TestBorrowBookNoCopies() {
	s.libraryRepo.BorrowBookFn = func(ctx context.Context, loan domain.BookLoan) error {
		return portsrepo.ErrNoCopiesAvailable
	}

	_, err := s.svc.BorrowBook(s.ctx, s.librarian, "bk-1", dto.BorrowBookRequest{StudentID: "st-1"})
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LibraryServiceTestSuite) TestReturnBook() {
	returned := time.Now()
	s.libraryRepo.ReturnLoanFn = func(ctx context.Context, loanID string, returnedAt time.Time, actorID string) (*domain.BookLoan, error) {
		s.Equal("u-staff", actorID)
		return &domain.BookLoan{LoanID: loanID, ReturnedAt: &returned}, nil
	}

	loan, err := s.svc.ReturnBook(s.ctx, s.librarian, "loan-1")
	s.Require().NoError(err)
	s.NotNil(loan.ReturnedAt)

	_, err = s.svc.ReturnBook(s.ctx, s.student, "loan-1")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LibraryServiceTestSuite) TestListStudentLoansScope() {
	s.libraryRepo.FindLoansByStudentFn = func(ctx context.Context, studentID string, openOnly bool) ([]domain.BookLoan, error) {
		s.False(openOnly, "history includes closed loans")
		return []domain.BookLoan{{LoanID: "loan-1", StudentID: studentID}}, nil
	}

	loans, err := s.svc.ListStudentLoans(s.ctx, s.student, "st-1")
	s.Require().NoError(err)
	s.Len(loans, 1)

	outsider := domain.Actor{UserID: "u-other", Role: domain.RoleStudent}
	_, err = s.svc.ListStudentLoans(s.ctx, outsider, "st-1")
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.ListStudentLoans(s.ctx, s.librarian, "st-1")
	s.NoError(err)
}
