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
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, student_id, year, term, total_fees, discount_amount, discount_reason,
		paid_amount, balance, status, due_date, last_payment_date,
		created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `payment_id, account_id, student_id, amount, method, receipt_number, transaction_ref,
		receipt_image_url, is_approved, verified_by, verification_date, payment_date, description,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxFeesRepository struct {
	BaseRepository
}

func newPgxFeesRepository(pool *pgxpool.Pool) portsrepo.FeesRepositoryFacade {
	return &PgxFeesRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FeesRepositoryFacade = (*PgxFeesRepository)(nil)

func scanAccount(row pgx.Row) (*models.FeesAccount, error) {
	var m models.FeesAccount
	err := row.Scan(
		&m.AccountID,
		&m.StudentID,
		&m.Year,
		&m.Term,
		&m.TotalFees,
		&m.DiscountAmount,
		&m.DiscountReason,
		&m.PaidAmount,
		&m.Balance,
		&m.Status,
		&m.DueDate,
		&m.LastPaymentDate,
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

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.AccountID,
		&m.StudentID,
		&m.Amount,
		&m.Method,
		&m.ReceiptNumber,
		&m.TransactionRef,
		&m.ReceiptImageURL,
		&m.IsApproved,
		&m.VerifiedBy,
		&m.VerificationDate,
		&m.PaymentDate,
		&m.Description,
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

func (r *PgxFeesRepository) FindAccountByStudentYear(ctx context.Context, studentID string, year int) (*domain.FeesAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM fee_accounts WHERE student_id = $1 AND year = $2;`, accountColumns)
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, studentID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee account for student %s year %d: %w", studentID, year, err)
	}
	d := mapping.ToDomainFeesAccount(*m)
	return &d, nil
}

func (r *PgxFeesRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FeesAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM fee_accounts WHERE account_id = $1;`, accountColumns)
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee account %s: %w", accountID, err)
	}
	d := mapping.ToDomainFeesAccount(*m)
	return &d, nil
}

func (r *PgxFeesRepository) FindOverdueAccounts(ctx context.Context, asOf time.Time, limit int) ([]domain.FeesAccount, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM fee_accounts
		WHERE due_date < $1 AND balance > 0
		ORDER BY due_date
		LIMIT $2;`, accountColumns)

	rows, err := r.Pool.Query(ctx, query, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.FeesAccount
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainFeesAccount(*m))
	}
	return accounts, rows.Err()
}

func (r *PgxFeesRepository) SaveAccount(ctx context.Context, account domain.FeesAccount) error {
	m := mapping.ToModelFeesAccount(account)
	query := `
		INSERT INTO fee_accounts (account_id, student_id, year, term, total_fees, discount_amount, discount_reason,
			paid_amount, balance, status, due_date, last_payment_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.StudentID,
		m.Year,
		m.Term,
		m.TotalFees,
		m.DiscountAmount,
		m.DiscountReason,
		m.PaidAmount,
		m.Balance,
		m.Status,
		m.DueDate,
		m.LastPaymentDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save fee account: %w", err)
	}
	return nil
}

// lockAccountTx reads the account row FOR UPDATE inside the transaction.
func lockAccountTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.FeesAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM fee_accounts WHERE account_id = $1 FOR UPDATE;`, accountColumns)
	m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock fee account %s: %w", accountID, err)
	}
	d := mapping.ToDomainFeesAccount(*m)
	return &d, nil
}

// updateAccountTx writes back the mutable account fields inside the transaction.
func updateAccountTx(ctx context.Context, tx pgx.Tx, account domain.FeesAccount) error {
	m := mapping.ToModelFeesAccount(account)
	query := `
		UPDATE fee_accounts SET
			discount_amount = $2,
			discount_reason = $3,
			paid_amount = $4,
			balance = $5,
			status = $6,
			last_payment_date = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE account_id = $1;
	`
	_, err := tx.Exec(ctx, query,
		m.AccountID,
		m.DiscountAmount,
		m.DiscountReason,
		m.PaidAmount,
		m.Balance,
		m.Status,
		m.LastPaymentDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fee account: %w", err)
	}
	return nil
}

// ApplyDiscount adds to the account's discount under the row lock and
// recomputes balance and status. Reasons accumulate.
func (r *PgxFeesRepository) ApplyDiscount(ctx context.Context, accountID string, amount decimal.Decimal, reason string, actorID string, now time.Time) (*domain.FeesAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := lockAccountTx(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	account.DiscountAmount = account.DiscountAmount.Add(amount)
	if account.DiscountReason == "" {
		account.DiscountReason = reason
	} else {
		account.DiscountReason = account.DiscountReason + "; " + reason
	}
	account.Recompute()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actorID

	if err := updateAccountTx(ctx, tx, *account); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *PgxFeesRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE payment_id = $1;`, paymentColumns)
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	d := mapping.ToDomainPayment(*m)
	return &d, nil
}

func (r *PgxFeesRepository) FindPaymentsByStudentYear(ctx context.Context, studentID string, year int, approvedOnly bool) ([]domain.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE student_id = $1
		  AND EXTRACT(YEAR FROM payment_date) = $2
		  AND ($3 = FALSE OR is_approved)
		ORDER BY payment_date DESC;`, paymentColumns)

	rows, err := r.Pool.Query(ctx, query, studentID, year, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var ms []models.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainPaymentSlice(ms), rows.Err()
}

func insertPaymentTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (payment_id, account_id, student_id, amount, method, receipt_number, transaction_ref,
			receipt_image_url, is_approved, verified_by, verification_date, payment_date, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.AccountID,
		m.StudentID,
		m.Amount,
		m.Method,
		m.ReceiptNumber,
		m.TransactionRef,
		m.ReceiptImageURL,
		m.IsApproved,
		m.VerifiedBy,
		m.VerificationDate,
		m.PaymentDate,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// SavePaymentAndApply locks the account, rejects over-balance payments, inserts
// the payment and applies the balance delta when the payment arrives approved.
// The payment row and the account update land in the same transaction.
func (r *PgxFeesRepository) SavePaymentAndApply(ctx context.Context, payment domain.Payment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	account, err := lockAccountTx(ctx, tx, payment.AccountID)
	if err != nil {
		return err
	}

	if payment.Amount.GreaterThan(account.Balance) {
		return portsrepo.ErrBalanceExceeded
	}

	if err := insertPaymentTx(ctx, tx, payment); err != nil {
		return err
	}

	if payment.IsApproved {
		account.PaidAmount = account.PaidAmount.Add(payment.Amount)
		account.Recompute()
		paymentDate := payment.PaymentDate
		account.LastPaymentDate = &paymentDate
		account.LastUpdatedAt = payment.LastUpdatedAt
		account.LastUpdatedBy = payment.LastUpdatedBy
		if err := updateAccountTx(ctx, tx, *account); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ApprovePaymentAndApply marks the payment approved and applies the balance
// delta exactly once. The payment row is locked first so concurrent approvals
// serialize; the second caller sees is_approved already set and changes nothing.
func (r *PgxFeesRepository) ApprovePaymentAndApply(ctx context.Context, paymentID string, verifierID string, now time.Time) (*domain.Payment, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer r.Rollback(ctx, tx)

	query := fmt.Sprintf(`SELECT %s FROM payments WHERE payment_id = $1 FOR UPDATE;`, paymentColumns)
	m, err := scanPayment(tx.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperrors.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to lock payment %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(*m)

	if payment.IsApproved {
		return &payment, true, nil
	}

	payment.IsApproved = true
	payment.VerifiedBy = verifierID
	payment.VerificationDate = &now
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = verifierID

	updateQuery := `
		UPDATE payments SET is_approved = TRUE, verified_by = $2, verification_date = $3,
			last_updated_at = $3, last_updated_by = $2
		WHERE payment_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, paymentID, verifierID, now); err != nil {
		return nil, false, fmt.Errorf("failed to approve payment: %w", err)
	}

	account, err := lockAccountTx(ctx, tx, payment.AccountID)
	if err != nil {
		return nil, false, err
	}
	account.PaidAmount = account.PaidAmount.Add(payment.Amount)
	account.Recompute()
	paymentDate := payment.PaymentDate
	account.LastPaymentDate = &paymentDate
	account.LastUpdatedAt = now
	account.LastUpdatedBy = verifierID
	if err := updateAccountTx(ctx, tx, *account); err != nil {
		return nil, false, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return &payment, false, nil
}

// AnnotatePaymentRejection appends the rejection reason to the payment's
// description. The row is kept and the account is untouched.
func (r *PgxFeesRepository) AnnotatePaymentRejection(ctx context.Context, paymentID string, verifierID string, reason string, now time.Time) (*domain.Payment, error) {
	query := fmt.Sprintf(`
		UPDATE payments SET
			description = TRIM(BOTH ' ' FROM COALESCE(description, '') || ' [REJECTED: ' || $2 || ']'),
			last_updated_at = $3,
			last_updated_by = $4
		WHERE payment_id = $1 AND is_approved = FALSE
		RETURNING %s;`, paymentColumns)

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID, reason, now, verifierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to annotate payment rejection: %w", err)
	}
	d := mapping.ToDomainPayment(*m)
	return &d, nil
}
