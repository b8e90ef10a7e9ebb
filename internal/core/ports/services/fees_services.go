package services

import (
	"context"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/dto"
)

// FeesReaderSvc defines read operations over fee accounts and payments.
type FeesReaderSvc interface {
	// GetFees returns the student's current-year account with its approved
	// payment history. Students may only read their own account.
	GetFees(ctx context.Context, actor domain.Actor, studentID string) (*domain.FeesAccount, []domain.Payment, error)

	// GenerateStatement returns a read-only statement of the account plus its
	// approved payments for the given year (zero means current year).
	GenerateStatement(ctx context.Context, actor domain.Actor, studentID string, year int) (*dto.StatementResponse, error)
}

// FeesWriterSvc defines the mutating fee operations.
type FeesWriterSvc interface {
	// SubmitPayment records a payment against the student's current-year
	// account. Payments over the outstanding balance are rejected outright.
	// Payments with a receipt image, a transaction reference or made by mobile
	// money are approved immediately; the rest await staff review.
	SubmitPayment(ctx context.Context, actor domain.Actor, req dto.SubmitPaymentRequest) (*domain.Payment, error)

	// ApprovePayment verifies a pending payment and applies it to the account
	// balance. Approving an already-approved payment is a no-op. Bursar/admin only.
	ApprovePayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error)

	// RejectPayment annotates a pending payment with the rejection reason.
	// The balance is untouched. Bursar/admin only.
	RejectPayment(ctx context.Context, actor domain.Actor, paymentID string, reason string) (*domain.Payment, error)

	// ApplyDiscount adds a discount to the student's current-year account and
	// recomputes balance and status. Discounts accumulate. Bursar/admin only.
	ApplyDiscount(ctx context.Context, actor domain.Actor, req dto.ApplyDiscountRequest) (*domain.FeesAccount, error)
}

// FeesReminderSvc drives the scheduled overdue-fees sweep.
type FeesReminderSvc interface {
	// RemindOverdueAccounts notifies holders of overdue accounts and returns
	// how many reminders were sent.
	RemindOverdueAccounts(ctx context.Context) (int, error)
}

// FeesSvcFacade combines all fees-related service interfaces.
type FeesSvcFacade interface {
	FeesReaderSvc
	FeesWriterSvc
	FeesReminderSvc
}
