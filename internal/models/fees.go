package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// FeesAccount is the fee_accounts table row.
type FeesAccount struct {
	AccountID       string          `db:"account_id"`
	StudentID       string          `db:"student_id"`
	Year            int             `db:"year"`
	Term            int             `db:"term"`
	TotalFees       decimal.Decimal `db:"total_fees"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	DiscountReason  sql.NullString  `db:"discount_reason"`
	PaidAmount      decimal.Decimal `db:"paid_amount"`
	Balance         decimal.Decimal `db:"balance"`
	Status          string          `db:"status"`
	DueDate         time.Time       `db:"due_date"`
	LastPaymentDate *time.Time      `db:"last_payment_date"`
	AuditFields
}

// Payment is the payments table row.
type Payment struct {
	PaymentID        string          `db:"payment_id"`
	AccountID        string          `db:"account_id"`
	StudentID        string          `db:"student_id"`
	Amount           decimal.Decimal `db:"amount"`
	Method           string          `db:"method"`
	ReceiptNumber    string          `db:"receipt_number"`
	TransactionRef   sql.NullString  `db:"transaction_ref"`
	ReceiptImageURL  sql.NullString  `db:"receipt_image_url"`
	IsApproved       bool            `db:"is_approved"`
	VerifiedBy       sql.NullString  `db:"verified_by"`
	VerificationDate *time.Time      `db:"verification_date"`
	PaymentDate      time.Time       `db:"payment_date"`
	Description      sql.NullString  `db:"description"`
	AuditFields
}
