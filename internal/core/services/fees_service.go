package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grschool/sms_backend/internal/apperrors"
	"github.com/grschool/sms_backend/internal/core/domain"
	portsrepo "github.com/grschool/sms_backend/internal/core/ports/repositories"
	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
	"github.com/grschool/sms_backend/internal/dto"
	"github.com/grschool/sms_backend/internal/middleware"
	"github.com/grschool/sms_backend/internal/platform/cache"
	"github.com/grschool/sms_backend/internal/utils"
)

// autoVerifier marks payments approved by the submission heuristic rather than
// by a member of staff.
const autoVerifier = "system"

const (
	statementCacheTTL = 10 * time.Minute
	overdueSweepLimit = 500
)

// feesService implements the fee ledger operations. All balance mutations run
// inside repository transactions; this layer owns authorization, validation,
// notification fan-out and statement caching.
type feesService struct {
	feesRepo        portsrepo.FeesRepositoryFacade
	schoolRepo      portsrepo.SchoolRepositoryFacade
	notificationSvc portssvc.NotificationSvcFacade
	statements      cache.Cache
	defaultTermFees decimal.Decimal
	feeDueInDays    int
}

// NewFeesService creates a new fees service.
func NewFeesService(feesRepo portsrepo.FeesRepositoryFacade, schoolRepo portsrepo.SchoolRepositoryFacade, notificationSvc portssvc.NotificationSvcFacade, statements cache.Cache, defaultTermFees decimal.Decimal, feeDueInDays int) portssvc.FeesSvcFacade {
	if feeDueInDays <= 0 {
		feeDueInDays = 60
	}
	return &feesService{
		feesRepo:        feesRepo,
		schoolRepo:      schoolRepo,
		notificationSvc: notificationSvc,
		statements:      statements,
		defaultTermFees: defaultTermFees,
		feeDueInDays:    feeDueInDays,
	}
}

var _ portssvc.FeesSvcFacade = (*feesService)(nil)

// authorizeStudentScope lets staff through and restricts students to their own
// records. It returns the student profile so callers can reach the linked user.
func (s *feesService) authorizeStudentScope(ctx context.Context, actor domain.Actor, studentID string) (*domain.Student, error) {
	student, err := s.schoolRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleStudent && student.UserID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return student, nil
}

func (s *feesService) GetFees(ctx context.Context, actor domain.Actor, studentID string) (*domain.FeesAccount, []domain.Payment, error) {
	if _, err := s.authorizeStudentScope(ctx, actor, studentID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	account, err := s.feesRepo.FindAccountByStudentYear(ctx, studentID, now.Year())
	if errors.Is(err, apperrors.ErrNotFound) {
		account, err = s.openAccount(ctx, actor, studentID, now)
	}
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.feesRepo.FindPaymentsByStudentYear(ctx, studentID, now.Year(), true)
	if err != nil {
		return nil, nil, err
	}
	return account, payments, nil
}

// openAccount creates the current-year account with the configured term charge.
// Registration normally opens it; this covers students predating the charge run
// and the backfill path after a failed open. Losing the insert race is fine, the
// winner's row is read back.
func (s *feesService) openAccount(ctx context.Context, actor domain.Actor, studentID string, now time.Time) (*domain.FeesAccount, error) {
	account := domain.FeesAccount{
		AccountID: uuid.NewString(),
		StudentID: studentID,
		Year:      now.Year(),
		Term:      currentTerm(now),
		TotalFees: s.defaultTermFees,
		DueDate:   now.AddDate(0, 0, s.feeDueInDays),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	account.Recompute()

	if err := s.feesRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.feesRepo.FindAccountByStudentYear(ctx, studentID, now.Year())
		}
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("fee account opened on first read",
		slog.String("student_id", studentID), slog.Int("year", now.Year()))
	return &account, nil
}

func (s *feesService) SubmitPayment(ctx context.Context, actor domain.Actor, req dto.SubmitPaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	student, err := s.authorizeStudentScope(ctx, actor, req.StudentID)
	if err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}

	now := time.Now()
	account, err := s.feesRepo.FindAccountByStudentYear(ctx, req.StudentID, now.Year())
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		AccountID:       account.AccountID,
		StudentID:       req.StudentID,
		Amount:          req.Amount,
		Method:          method,
		ReceiptNumber:   utils.GenerateReceiptNumber(now),
		TransactionRef:  req.TransactionRef,
		ReceiptImageURL: req.ReceiptImageURL,
		PaymentDate:     now,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if payment.QualifiesForAutoApproval() {
		payment.IsApproved = true
		payment.VerifiedBy = autoVerifier
		payment.VerificationDate = &now
	}

	if err := s.feesRepo.SavePaymentAndApply(ctx, payment); err != nil {
		if errors.Is(err, portsrepo.ErrBalanceExceeded) {
			return nil, fmt.Errorf("%w: payment of %s exceeds outstanding balance", apperrors.ErrValidation, req.Amount.String())
		}
		return nil, err
	}

	s.invalidateStatements(ctx, req.StudentID)

	if payment.IsApproved {
		s.notifyPayment(ctx, student.UserID, "Payment received",
			fmt.Sprintf("Your payment of %s was received and applied. Receipt %s.", payment.Amount.String(), payment.ReceiptNumber))
	} else {
		s.notifyPayment(ctx, student.UserID, "Payment pending review",
			fmt.Sprintf("Your payment of %s was recorded and awaits verification. Receipt %s.", payment.Amount.String(), payment.ReceiptNumber))
	}

	logger.Info("payment submitted",
		slog.String("payment_id", payment.PaymentID),
		slog.String("student_id", payment.StudentID),
		slog.Bool("auto_approved", payment.IsApproved))

	return &payment, nil
}

func (s *feesService) ApprovePayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanManageFees() {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	payment, alreadyApproved, err := s.feesRepo.ApprovePaymentAndApply(ctx, paymentID, actor.UserID, now)
	if err != nil {
		return nil, err
	}
	if alreadyApproved {
		// The balance delta was applied on the first approval; nothing to redo.
		return payment, nil
	}

	s.invalidateStatements(ctx, payment.StudentID)

	if student, err := s.schoolRepo.FindStudentByID(ctx, payment.StudentID); err == nil {
		s.notifyPayment(ctx, student.UserID, "Payment approved",
			fmt.Sprintf("Your payment of %s (receipt %s) has been verified.", payment.Amount.String(), payment.ReceiptNumber))
	}

	logger.Info("payment approved",
		slog.String("payment_id", paymentID), slog.String("verified_by", actor.UserID))

	return payment, nil
}

func (s *feesService) RejectPayment(ctx context.Context, actor domain.Actor, paymentID string, reason string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanManageFees() {
		return nil, apperrors.ErrForbidden
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	existing, err := s.feesRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if existing.IsApproved {
		return nil, fmt.Errorf("%w: payment is already approved", apperrors.ErrConflict)
	}

	payment, err := s.feesRepo.AnnotatePaymentRejection(ctx, paymentID, actor.UserID, reason, time.Now())
	if err != nil {
		return nil, err
	}

	if student, err := s.schoolRepo.FindStudentByID(ctx, payment.StudentID); err == nil {
		s.notifyPayment(ctx, student.UserID, "Payment rejected",
			fmt.Sprintf("Your payment (receipt %s) was rejected: %s", payment.ReceiptNumber, reason))
	}

	logger.Info("payment rejected",
		slog.String("payment_id", paymentID), slog.String("rejected_by", actor.UserID))

	return payment, nil
}

func (s *feesService) ApplyDiscount(ctx context.Context, actor domain.Actor, req dto.ApplyDiscountRequest) (*domain.FeesAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.CanManageFees() {
		return nil, apperrors.ErrForbidden
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: discount amount must be positive", apperrors.ErrValidation)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: discount reason is required", apperrors.ErrValidation)
	}

	account, err := s.feesRepo.FindAccountByStudentYear(ctx, req.StudentID, time.Now().Year())
	if err != nil {
		return nil, err
	}

	updated, err := s.feesRepo.ApplyDiscount(ctx, account.AccountID, req.Amount, req.Reason, actor.UserID, time.Now())
	if err != nil {
		return nil, err
	}

	s.invalidateStatements(ctx, req.StudentID)

	logger.Info("discount applied",
		slog.String("account_id", account.AccountID),
		slog.String("amount", req.Amount.String()),
		slog.String("applied_by", actor.UserID))

	return updated, nil
}

func (s *feesService) GenerateStatement(ctx context.Context, actor domain.Actor, studentID string, year int) (*dto.StatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.authorizeStudentScope(ctx, actor, studentID); err != nil {
		return nil, err
	}
	if year == 0 {
		year = time.Now().Year()
	}

	cacheKey := fmt.Sprintf("statement:%s:%d", studentID, year)
	if s.statements != nil {
		if raw, err := s.statements.Get(ctx, cacheKey); err == nil {
			var cached dto.StatementResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	account, err := s.feesRepo.FindAccountByStudentYear(ctx, studentID, year)
	if err != nil {
		return nil, err
	}
	payments, err := s.feesRepo.FindPaymentsByStudentYear(ctx, studentID, year, true)
	if err != nil {
		return nil, err
	}

	statement := &dto.StatementResponse{
		Account:     dto.ToFeesAccountResponse(account),
		Payments:    dto.ToPaymentResponses(payments),
		GeneratedAt: time.Now(),
	}

	if s.statements != nil {
		if raw, err := json.Marshal(statement); err == nil {
			if err := s.statements.Set(ctx, cacheKey, raw, statementCacheTTL); err != nil {
				logger.Warn("failed to cache statement", slog.String("key", cacheKey), slog.String("error", err.Error()))
			}
		}
	}

	return statement, nil
}

// RemindOverdueAccounts notifies holders of accounts past their due date with a
// positive balance. Run from the scheduler; failures on one account never stop
// the sweep.
func (s *feesService) RemindOverdueAccounts(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	accounts, err := s.feesRepo.FindOverdueAccounts(ctx, now, overdueSweepLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to find overdue accounts: %w", err)
	}

	sent := 0
	for _, account := range accounts {
		student, err := s.schoolRepo.FindStudentByID(ctx, account.StudentID)
		if err != nil {
			logger.Warn("skipping overdue reminder, student lookup failed",
				slog.String("student_id", account.StudentID), slog.String("error", err.Error()))
			continue
		}

		notification := domain.Notification{
			NotificationID: uuid.NewString(),
			RecipientID:    student.UserID,
			Title:          "School fees overdue",
			Body: fmt.Sprintf("Your fee balance of %s for %d was due on %s. Please arrange payment.",
				account.Balance.String(), account.Year, account.DueDate.Format("2 Jan 2006")),
			Category: domain.CategoryFees,
			Priority: domain.PriorityHigh,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     autoVerifier,
				LastUpdatedAt: now,
				LastUpdatedBy: autoVerifier,
			},
		}
		if err := s.notificationSvc.Notify(ctx, notification); err != nil {
			logger.Warn("failed to send overdue reminder",
				slog.String("student_id", account.StudentID), slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	logger.Info("overdue fee sweep complete", slog.Int("accounts", len(accounts)), slog.Int("reminders_sent", sent))
	return sent, nil
}

// notifyPayment stores a fees notification for the user. Notification failures
// are logged, never propagated; the ledger write already succeeded.
func (s *feesService) notifyPayment(ctx context.Context, recipientID, title, body string) {
	if s.notificationSvc == nil {
		return
	}
	now := time.Now()
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    recipientID,
		Title:          title,
		Body:           body,
		Category:       domain.CategoryFees,
		Priority:       domain.PriorityNormal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     autoVerifier,
			LastUpdatedAt: now,
			LastUpdatedBy: autoVerifier,
		},
	}
	if err := s.notificationSvc.Notify(ctx, notification); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to store payment notification",
			slog.String("recipient_id", recipientID), slog.String("error", err.Error()))
	}
}

func (s *feesService) invalidateStatements(ctx context.Context, studentID string) {
	if s.statements == nil {
		return
	}
	year := time.Now().Year()
	keys := []string{
		fmt.Sprintf("statement:%s:%d", studentID, year),
		fmt.Sprintf("statement:%s:%d", studentID, year-1),
	}
	if err := s.statements.Delete(ctx, keys...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to invalidate statement cache",
			slog.String("student_id", studentID), slog.String("error", err.Error()))
	}
}
