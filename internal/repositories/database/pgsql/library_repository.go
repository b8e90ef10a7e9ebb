package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	"github.com/grschool/sms_backend/internal/models"
	"github.com/grschool/sms_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `book_id, title, author, category, form, total_copies, available_copies,
		created_at, created_by, last_updated_at, last_updated_by`

const loanColumns = `loan_id, book_id, student_id, borrowed_at, due_date, returned_at,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxLibraryRepository struct {
	BaseRepository
}

func newPgxLibraryRepository(pool *pgxpool.Pool) portsrepo.LibraryRepositoryFacade {
	return &PgxLibraryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LibraryRepositoryFacade = (*PgxLibraryRepository)(nil)

func scanBook(row pgx.Row) (*models.Book, error) {
	var m models.Book
	err := row.Scan(
		&m.BookID,
		&m.Title,
		&m.Author,
		&m.Category,
		&m.Form,
		&m.TotalCopies,
		&m.AvailableCopies,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLoan(row pgx.Row) (*models.BookLoan, error) {
	var m models.BookLoan
	err := row.Scan(
		&m.LoanID,
		&m.BookID,
		&m.StudentID,
		&m.BorrowedAt,
		&m.DueDate,
		&m.ReturnedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxLibraryRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE book_id = $1 AND deleted_at IS NULL;`, bookColumns)
	m, err := scanBook(r.Pool.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book %s: %w", bookID, err)
	}
	d := mapping.ToDomainBook(*m)
	return &d, nil
}

func (r *PgxLibraryRepository) FindBooks(ctx context.Context, filter portsrepo.BookFilter) ([]domain.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR category = $1)
		  AND ($2 = '' OR form = $2)
		  AND ($3 = '' OR title ILIKE '%%' || $3 || '%%' OR author ILIKE '%%' || $3 || '%%')
		ORDER BY title
		LIMIT $4 OFFSET $5;`, bookColumns)

	rows, err := r.Pool.Query(ctx, query, filter.Category, filter.Form, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		m, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, mapping.ToDomainBook(*m))
	}
	return books, rows.Err()
}

func (r *PgxLibraryRepository) FindLoansByStudent(ctx context.Context, studentID string, openOnly bool) ([]domain.BookLoan, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM book_loans
		WHERE student_id = $1 AND ($2 = FALSE OR returned_at IS NULL)
		ORDER BY returned_at IS NOT NULL, borrowed_at DESC;`, loanColumns)

	rows, err := r.Pool.Query(ctx, query, studentID, openOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.BookLoan
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, mapping.ToDomainBookLoan(*m))
	}
	return loans, rows.Err()
}

func (r *PgxLibraryRepository) SaveBook(ctx context.Context, book domain.Book) error {
	m := mapping.ToModelBook(book)
	query := `
		INSERT INTO books (book_id, title, author, category, form, total_copies, available_copies,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BookID,
		m.Title,
		m.Author,
		m.Category,
		m.Form,
		m.TotalCopies,
		m.AvailableCopies,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (r *PgxLibraryRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	m := mapping.ToModelBook(book)
	query := `
		UPDATE books SET
			title = $2, author = $3, category = $4, form = $5,
			total_copies = $6, available_copies = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE book_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BookID,
		m.Title,
		m.Author,
		m.Category,
		m.Form,
		m.TotalCopies,
		m.AvailableCopies,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLibraryRepository) MarkBookDeleted(ctx context.Context, bookID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE books SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE book_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, bookID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark book deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// BorrowBook decrements available copies and records the loan in one
// transaction. The book row lock keeps two concurrent borrows from both taking
// the last copy.
func (r *PgxLibraryRepository) BorrowBook(ctx context.Context, loan domain.BookLoan) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var available int
	err = tx.QueryRow(ctx,
		`SELECT available_copies FROM books WHERE book_id = $1 AND deleted_at IS NULL FOR UPDATE;`,
		loan.BookID,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock book %s: %w", loan.BookID, err)
	}
	if available <= 0 {
		return portsrepo.ErrNoCopiesAvailable
	}

	if _, err := tx.Exec(ctx,
		`UPDATE books SET available_copies = available_copies - 1, last_updated_at = $2, last_updated_by = $3 WHERE book_id = $1;`,
		loan.BookID, loan.CreatedAt, loan.CreatedBy,
	); err != nil {
		return fmt.Errorf("failed to decrement available copies: %w", err)
	}

	m := mapping.ToModelBookLoan(loan)
	query := `
		INSERT INTO book_loans (loan_id, book_id, student_id, borrowed_at, due_date, returned_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.LoanID,
		m.BookID,
		m.StudentID,
		m.BorrowedAt,
		m.DueDate,
		m.ReturnedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}

	return r.Commit(ctx, tx)
}

// ReturnLoan closes the loan and restores the copy in one transaction. Closing
// an already-returned loan is a conflict.
func (r *PgxLibraryRepository) ReturnLoan(ctx context.Context, loanID string, returnedAt time.Time, actorID string) (*domain.BookLoan, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := fmt.Sprintf(`SELECT %s FROM book_loans WHERE loan_id = $1 FOR UPDATE;`, loanColumns)
	m, err := scanLoan(tx.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock loan %s: %w", loanID, err)
	}
	if m.ReturnedAt != nil {
		return nil, apperrors.ErrConflict
	}

	if _, err := tx.Exec(ctx,
		`UPDATE book_loans SET returned_at = $2, last_updated_at = $2, last_updated_by = $3 WHERE loan_id = $1;`,
		loanID, returnedAt, actorID,
	); err != nil {
		return nil, fmt.Errorf("failed to close loan: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE books SET available_copies = available_copies + 1, last_updated_at = $2, last_updated_by = $3 WHERE book_id = $1;`,
		m.BookID, returnedAt, actorID,
	); err != nil {
		return nil, fmt.Errorf("failed to restore available copies: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	loan := mapping.ToDomainBookLoan(*m)
	loan.ReturnedAt = &returnedAt
	loan.LastUpdatedAt = returnedAt
	loan.LastUpdatedBy = actorID
	return &loan, nil
}
