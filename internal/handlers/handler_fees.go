package handlers

import (
	"log/slog"
	"net/http"

	"github.com/grschool/sms_backend/internal/dto"
	"github.com/grschool/sms_backend/internal/middleware"
	"github.com/gin-gonic/gin"

	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
)

// feesHandler handles fee account and payment requests.
type feesHandler struct {
	feesService portssvc.FeesSvcFacade
}

func newFeesHandler(feesService portssvc.FeesSvcFacade) *feesHandler {
	return &feesHandler{feesService: feesService}
}

// registerFeesRoutes registers fees specific routes.
func registerFeesRoutes(group *gin.RouterGroup, feesService portssvc.FeesSvcFacade) {
	h := newFeesHandler(feesService)

	fees := group.Group("/fees")
	{
		fees.GET("/:studentID", h.getFees)
		fees.GET("/:studentID/statement", h.getStatement)
		fees.POST("/payments", h.submitPayment)
		fees.POST("/payments/:paymentID/approve", h.approvePayment)
		fees.POST("/payments/:paymentID/reject", h.rejectPayment)
		fees.POST("/discounts", h.applyDiscount)
	}
}

// getFees godoc
// @Summary Get a student's fee account
// @Description Returns the current-year account with its approved payment history. Students may only read their own account.
// @Tags fees
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} dto.GetFeesResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/{studentID} [get]
func (h *feesHandler) getFees(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	account, payments, err := h.feesService.GetFees(c.Request.Context(), actor, c.Param("studentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve fee account")
		return
	}

	c.JSON(http.StatusOK, dto.GetFeesResponse{
		Account:  dto.ToFeesAccountResponse(account),
		Payments: dto.ToPaymentResponses(payments),
	})
}

// getStatement godoc
// @Summary Get a fee statement
// @Description Returns a read-only statement of the account plus its approved payments for the given year.
// @Tags fees
// @Produce json
// @Param studentID path string true "Student ID"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} dto.StatementResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/{studentID}/statement [get]
func (h *feesHandler) getStatement(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	statement, err := h.feesService.GenerateStatement(c.Request.Context(), actor, c.Param("studentID"), params.Year)
	if err != nil {
		respondError(c, err, "Failed to generate statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// submitPayment godoc
// @Summary Submit a payment
// @Description Records a payment against the student's current-year account. Payments over the outstanding balance are rejected. Payments carrying a receipt image or transaction reference, or made by mobile money, are approved immediately; the rest await bursar review.
// @Tags fees
// @Accept json
// @Produce json
// @Param payment body dto.SubmitPaymentRequest true "Payment details"
// @Success 201 {object} dto.SubmitPaymentResponse
// @Failure 400 {object} ErrorResponse "Validation failure, including payments exceeding the balance"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/payments [post]
func (h *feesHandler) submitPayment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.feesService.SubmitPayment(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to submit payment")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Payment submitted",
		slog.String("payment_id", payment.PaymentID),
		slog.String("receipt_number", payment.ReceiptNumber),
		slog.Bool("auto_approved", payment.IsApproved))

	c.JSON(http.StatusCreated, dto.SubmitPaymentResponse{
		PaymentID:        payment.PaymentID,
		ReceiptNumber:    payment.ReceiptNumber,
		RequiresApproval: !payment.IsApproved,
	})
}

// approvePayment godoc
// @Summary Approve a pending payment
// @Description Verifies a pending payment and applies it to the account balance. Approving an already-approved payment is a no-op. Bursar/admin only.
// @Tags fees
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/payments/{paymentID}/approve [post]
func (h *feesHandler) approvePayment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	payment, err := h.feesService.ApprovePayment(c.Request.Context(), actor, c.Param("paymentID"))
	if err != nil {
		respondError(c, err, "Failed to approve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// rejectPayment godoc
// @Summary Reject a pending payment
// @Description Annotates a pending payment with the rejection reason. The balance is untouched. Bursar/admin only.
// @Tags fees
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param rejection body dto.RejectPaymentRequest true "Rejection reason"
// @Success 200 {object} dto.PaymentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment already approved"
// @Security BearerAuth
// @Router /fees/payments/{paymentID}/reject [post]
func (h *feesHandler) rejectPayment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Rejection reason is required"})
		return
	}

	payment, err := h.feesService.RejectPayment(c.Request.Context(), actor, c.Param("paymentID"), req.Reason)
	if err != nil {
		respondError(c, err, "Failed to reject payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// applyDiscount godoc
// @Summary Apply a discount
// @Description Adds a discount to the student's current-year account and recomputes balance and status. Discounts accumulate. Bursar/admin only.
// @Tags fees
// @Accept json
// @Produce json
// @Param discount body dto.ApplyDiscountRequest true "Discount details"
// @Success 200 {object} dto.FeesAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/discounts [post]
func (h *feesHandler) applyDiscount(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.feesService.ApplyDiscount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to apply discount")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeesAccountResponse(account))
}
