package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes how much of a fee account has been settled.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "Pending"
	StatusPartial PaymentStatus = "Partial"
	StatusPaid    PaymentStatus = "Paid"
)

// PaymentMethod is the channel a payment was made through.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodMobileMoney  PaymentMethod = "Mobile Money"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCheque       PaymentMethod = "Cheque"
	MethodCard         PaymentMethod = "Card"
)

// IsValid reports whether the method is one of the accepted payment channels.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodMobileMoney, MethodBankTransfer, MethodCheque, MethodCard:
		return true
	}
	return false
}

// FeesAccount is the per-student-per-year ledger of charges, discounts and payments.
// Invariant: Balance == TotalFees - DiscountAmount - PaidAmount. Recompute re-derives
// Balance and Status and must be called after every mutation of the other fields.
type FeesAccount struct {
	AccountID       string          `json:"accountID"` // Primary key (UUID)
	StudentID       string          `json:"studentID"`
	Year            int             `json:"year"`
	Term            int             `json:"term"`
	TotalFees       decimal.Decimal `json:"totalFees"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountReason  string          `json:"discountReason,omitempty"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	Balance         decimal.Decimal `json:"balance"`
	Status          PaymentStatus   `json:"status"`
	DueDate         time.Time       `json:"dueDate"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate,omitempty"`
	AuditFields
}

// Recompute re-derives Balance and Status from the charge, discount and paid amounts.
func (a *FeesAccount) Recompute() {
	a.Balance = a.TotalFees.Sub(a.DiscountAmount).Sub(a.PaidAmount)
	switch {
	case a.Balance.LessThanOrEqual(decimal.Zero):
		a.Status = StatusPaid
	case a.PaidAmount.GreaterThan(decimal.Zero):
		a.Status = StatusPartial
	default:
		a.Status = StatusPending
	}
}

// Payment is a single payment submitted against a fee account. Approval is a
// one-way flag; rejection only annotates the description.
type Payment struct {
	PaymentID        string          `json:"paymentID"` // Primary key (UUID)
	AccountID        string          `json:"accountID"`
	StudentID        string          `json:"studentID"`
	Amount           decimal.Decimal `json:"amount"`
	Method           PaymentMethod   `json:"method"`
	ReceiptNumber    string          `json:"receiptNumber"`
	TransactionRef   string          `json:"transactionRef,omitempty"`
	ReceiptImageURL  string          `json:"receiptImageURL,omitempty"`
	IsApproved       bool            `json:"isApproved"`
	VerifiedBy       string          `json:"verifiedBy,omitempty"`
	VerificationDate *time.Time      `json:"verificationDate,omitempty"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Description      string          `json:"description,omitempty"`
	AuditFields
}

// QualifiesForAutoApproval reports whether a submitted payment is trusted without
// staff review: any payment proof (receipt image or transaction reference) or a
// mobile-money payment qualifies. This is deliberately a single choke point so a
// gateway verification step can replace the heuristic.
func (p Payment) QualifiesForAutoApproval() bool {
	return p.ReceiptImageURL != "" || p.TransactionRef != "" || p.Method == MethodMobileMoney
}
