package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/swiftpos/terminal-api/internal/application/service"
	"github.com/swiftpos/terminal-api/internal/domain/enum"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/request"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles payment panel and checkout requests for a session
type CheckoutHandler struct {
	sessions *service.SessionService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(sessions *service.SessionService) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

// OpenPayment opens the payment panel and resets its fields
func (h *CheckoutHandler) OpenPayment(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	if err := session.OpenPayment(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment panel opened", session.Snapshot())
}

// ClosePayment closes the payment panel without charging
func (h *CheckoutHandler) ClosePayment(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	if err := session.ClosePayment(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment panel closed", session.Snapshot())
}

// UpdatePayment applies operator edits on the payment panel
func (h *CheckoutHandler) UpdatePayment(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	var req request.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := service.PaymentInput{
		DiscountValue: req.DiscountValue,
		Override:      req.Override,
		ClearOverride: req.ClearOverride,
		PaidAmount:    req.PaidAmount,
		ClearPaid:     req.ClearPaid,
		PaymentMethod: req.PaymentMethod,
	}
	if req.DiscountType != nil {
		dt := enum.DiscountTypePercent
		if *req.DiscountType == "fixed" {
			dt = enum.DiscountTypeFixed
		}
		input.DiscountType = &dt
	}

	if err := session.UpdatePayment(input); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", session.Snapshot())
}

// Checkout validates payment sufficiency and submits the billing
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	result, err := session.Checkout(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment processed successfully", result)
}
