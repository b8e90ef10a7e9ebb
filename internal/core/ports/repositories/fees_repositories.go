package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrBalanceExceeded is returned when a payment is submitted for more than the
// account's outstanding balance. The check runs under the account row lock.
var ErrBalanceExceeded = errors.New("payment amount exceeds outstanding balance")

// FeesAccountReader defines read operations for fee accounts.
type FeesAccountReader interface {
	// FindAccountByStudentYear retrieves the account for a student and year.
	FindAccountByStudentYear(ctx context.Context, studentID string, year int) (*domain.FeesAccount, error)

	// FindAccountByID retrieves an account by its primary key.
	FindAccountByID(ctx context.Context, accountID string) (*domain.FeesAccount, error)

	// FindOverdueAccounts retrieves accounts past their due date with a positive balance.
	FindOverdueAccounts(ctx context.Context, asOf time.Time, limit int) ([]domain.FeesAccount, error)
}

// FeesAccountWriter defines write operations for fee accounts.
type FeesAccountWriter interface {
	// SaveAccount persists a new fee account.
	SaveAccount(ctx context.Context, account domain.FeesAccount) error

	// ApplyDiscount adds to the account's discount under the row lock and
	// recomputes balance and status. Reasons accumulate, they are never replaced.
	ApplyDiscount(ctx context.Context, accountID string, amount decimal.Decimal, reason string, actorID string, now time.Time) (*domain.FeesAccount, error)
}

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its primary key.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentsByStudentYear retrieves a student's payments for a year,
	// newest first. approvedOnly restricts to verified payments.
	FindPaymentsByStudentYear(ctx context.Context, studentID string, year int, approvedOnly bool) ([]domain.Payment, error)
}

// PaymentWriter defines the transactional payment mutations. Each method runs
// its reads and writes inside one database transaction with the fee account row
// locked, so the payment and the balance change land atomically or not at all.
type PaymentWriter interface {
	// SavePaymentAndApply locks the account, rejects with ErrBalanceExceeded if
	// the amount is over the balance, inserts the payment and, when the payment
	// is already approved (auto-approval), applies the balance delta.
	SavePaymentAndApply(ctx context.Context, payment domain.Payment) error

	// ApprovePaymentAndApply marks the payment approved and applies the balance
	// delta exactly once. The returned bool reports whether the payment had
	// already been approved (the call is then a no-op).
	ApprovePaymentAndApply(ctx context.Context, paymentID string, verifierID string, now time.Time) (*domain.Payment, bool, error)

	// AnnotatePaymentRejection appends the rejection reason to the payment's
	// description. The payment row is kept; nothing is reversed.
	AnnotatePaymentRejection(ctx context.Context, paymentID string, verifierID string, reason string, now time.Time) (*domain.Payment, error)
}

// FeesRepositoryFacade combines all fees-related repository interfaces.
type FeesRepositoryFacade interface {
	FeesAccountReader
	FeesAccountWriter
	PaymentReader
	PaymentWriter
}
