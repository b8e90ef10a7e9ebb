package mapping

import (
	"github.com/grschool/sms_backend/internal/core/domain"
	"github.com/grschool/sms_backend/internal/models"
)

// ToModelFeesAccount converts a domain FeesAccount to a model FeesAccount.
func ToModelFeesAccount(d domain.FeesAccount) models.FeesAccount {
	return models.FeesAccount{
		AccountID:       d.AccountID,
		StudentID:       d.StudentID,
		Year:            d.Year,
		Term:            d.Term,
		TotalFees:       d.TotalFees,
		DiscountAmount:  d.DiscountAmount,
		DiscountReason:  nullString(d.DiscountReason),
		PaidAmount:      d.PaidAmount,
		Balance:         d.Balance,
		Status:          string(d.Status),
		DueDate:         d.DueDate,
		LastPaymentDate: d.LastPaymentDate,
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// ToDomainFeesAccount converts a model FeesAccount to a domain FeesAccount.
func ToDomainFeesAccount(m models.FeesAccount) domain.FeesAccount {
	return domain.FeesAccount{
		AccountID:       m.AccountID,
		StudentID:       m.StudentID,
		Year:            m.Year,
		Term:            m.Term,
		TotalFees:       m.TotalFees,
		DiscountAmount:  m.DiscountAmount,
		DiscountReason:  fromNullString(m.DiscountReason),
		PaidAmount:      m.PaidAmount,
		Balance:         m.Balance,
		Status:          domain.PaymentStatus(m.Status),
		DueDate:         m.DueDate,
		LastPaymentDate: m.LastPaymentDate,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		AccountID:        d.AccountID,
		StudentID:        d.StudentID,
		Amount:           d.Amount,
		Method:           string(d.Method),
		ReceiptNumber:    d.ReceiptNumber,
		TransactionRef:   nullString(d.TransactionRef),
		ReceiptImageURL:  nullString(d.ReceiptImageURL),
		IsApproved:       d.IsApproved,
		VerifiedBy:       nullString(d.VerifiedBy),
		VerificationDate: d.VerificationDate,
		PaymentDate:      d.PaymentDate,
		Description:      nullString(d.Description),
		AuditFields:      toModelAudit(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		AccountID:        m.AccountID,
		StudentID:        m.StudentID,
		Amount:           m.Amount,
		Method:           domain.PaymentMethod(m.Method),
		ReceiptNumber:    m.ReceiptNumber,
		TransactionRef:   fromNullString(m.TransactionRef),
		ReceiptImageURL:  fromNullString(m.ReceiptImageURL),
		IsApproved:       m.IsApproved,
		VerifiedBy:       fromNullString(m.VerifiedBy),
		VerificationDate: m.VerificationDate,
		PaymentDate:      m.PaymentDate,
		Description:      fromNullString(m.Description),
		AuditFields:      toDomainAudit(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
