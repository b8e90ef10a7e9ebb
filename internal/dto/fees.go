package dto

import (
	"time"

	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeesAccountResponse is the public shape of a fee account.
type FeesAccountResponse struct {
	AccountID       string          `json:"accountID"`
	StudentID       string          `json:"studentID"`
	Year            int             `json:"year"`
	Term            int             `json:"term"`
	TotalFees       decimal.Decimal `json:"totalFees"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountReason  string          `json:"discountReason,omitempty"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	Balance         decimal.Decimal `json:"balance"`
	Status          string          `json:"status"`
	DueDate         time.Time       `json:"dueDate"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate,omitempty"`
}

// PaymentResponse is the public shape of a payment.
type PaymentResponse struct {
	PaymentID        string          `json:"paymentID"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	ReceiptNumber    string          `json:"receiptNumber"`
	IsApproved       bool            `json:"isApproved"`
	VerifiedBy       string          `json:"verifiedBy,omitempty"`
	VerificationDate *time.Time      `json:"verificationDate,omitempty"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Description      string          `json:"description,omitempty"`
}

// GetFeesResponse combines the account with its approved payment history.
type GetFeesResponse struct {
	Account  FeesAccountResponse `json:"account"`
	Payments []PaymentResponse   `json:"payments"`
}

// SubmitPaymentRequest submits a payment against a student's current-year account.
type SubmitPaymentRequest struct {
	StudentID       string          `json:"studentID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Method          string          `json:"method" binding:"required"`
	TransactionRef  string          `json:"transactionRef"`
	ReceiptImageURL string          `json:"receiptImageURL"`
	Description     string          `json:"description"`
}

// SubmitPaymentResponse returns the receipt number and whether staff review is pending.
type SubmitPaymentResponse struct {
	PaymentID        string `json:"paymentID"`
	ReceiptNumber    string `json:"receiptNumber"`
	RequiresApproval bool   `json:"requiresApproval"`
}

// RejectPaymentRequest carries the rejection reason.
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,notblank"`
}

// ApplyDiscountRequest adds a discount to a student's current-year account.
type ApplyDiscountRequest struct {
	StudentID string          `json:"studentID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reason    string          `json:"reason" binding:"required,notblank"`
}

// StatementParams defines query parameters for a fee statement.
type StatementParams struct {
	Year int `form:"year"`
}

// StatementResponse is the read-only projection of an account plus its
// approved payments for a year.
type StatementResponse struct {
	Account     FeesAccountResponse `json:"account"`
	Payments    []PaymentResponse   `json:"payments"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// ToFeesAccountResponse converts a domain.FeesAccount to its response shape.
func ToFeesAccountResponse(a *domain.FeesAccount) FeesAccountResponse {
	return FeesAccountResponse{
		AccountID:       a.AccountID,
		StudentID:       a.StudentID,
		Year:            a.Year,
		Term:            a.Term,
		TotalFees:       a.TotalFees,
		DiscountAmount:  a.DiscountAmount,
		DiscountReason:  a.DiscountReason,
		PaidAmount:      a.PaidAmount,
		Balance:         a.Balance,
		Status:          string(a.Status),
		DueDate:         a.DueDate,
		LastPaymentDate: a.LastPaymentDate,
	}
}

// ToPaymentResponse converts a domain.Payment to its response shape.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		Amount:           p.Amount,
		Method:           string(p.Method),
		ReceiptNumber:    p.ReceiptNumber,
		IsApproved:       p.IsApproved,
		VerifiedBy:       p.VerifiedBy,
		VerificationDate: p.VerificationDate,
		PaymentDate:      p.PaymentDate,
		Description:      p.Description,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to responses.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentResponse(&p)
	}
	return out
}
