package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/enum"
	"github.com/swiftpos/terminal-api/pkg/apperror"
	"github.com/swiftpos/terminal-api/pkg/money"
	"github.com/swiftpos/terminal-api/pkg/receipt"
)

// OpenPayment opens the payment panel and moves the session to Reviewing.
// Each checkout attempt starts from a clean slate: discount back to percent
// 0, override, paid amount and the prior success record cleared. An empty
// cart refuses to open.
func (s *PosSession) OpenPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == enum.CheckoutSubmitting {
		return apperror.ErrCheckoutInProgress
	}
	if s.cart.IsEmpty() {
		return apperror.ErrEmptyCart
	}

	s.paymentOpen = true
	s.state = enum.CheckoutReviewing
	s.discount = DiscountConfig{Type: enum.DiscountTypePercent, Value: 0}
	s.paidAmount = nil
	s.paymentMethod = "cash"
	s.lastBilling = nil
	return nil
}

// ClosePayment closes the payment panel without charging.
func (s *PosSession) ClosePayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == enum.CheckoutSubmitting {
		return apperror.ErrCheckoutInProgress
	}
	s.paymentOpen = false
	s.state = enum.CheckoutIdle
	return nil
}

// PaymentInput carries the operator edits on the payment panel. Nil fields
// are left unchanged; Override and PaidAmount use the presence of the
// pointer to distinguish "clear" requests, so they carry explicit clear
// flags instead.
type PaymentInput struct {
	DiscountType  *enum.DiscountType
	DiscountValue *float64
	Override      *float64
	ClearOverride bool
	PaidAmount    *float64
	ClearPaid     bool
	PaymentMethod *string
}

// UpdatePayment applies operator edits while Reviewing.
func (s *PosSession) UpdatePayment(input PaymentInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.paymentOpen {
		return apperror.ErrPaymentPanelClosed
	}
	if s.state == enum.CheckoutSubmitting {
		return apperror.ErrCheckoutInProgress
	}

	// Editing after a failed attempt returns the panel to Reviewing.
	if s.state == enum.CheckoutFailed {
		s.state = enum.CheckoutReviewing
	}

	if input.DiscountType != nil {
		s.discount.Type = *input.DiscountType
	}
	if input.DiscountValue != nil {
		// Negative magnitudes are meaningless; percent above 100 is left
		// unclamped and the pricing engine floors the result at zero.
		s.discount.Value = max(0, *input.DiscountValue)
	}
	if input.ClearOverride {
		s.discount.Override = nil
	} else if input.Override != nil {
		v := money.FromDecimal(*input.Override)
		s.discount.Override = &v
	}
	if input.ClearPaid {
		s.paidAmount = nil
	} else if input.PaidAmount != nil {
		v := money.FromDecimal(*input.PaidAmount)
		s.paidAmount = &v
	}
	if input.PaymentMethod != nil && *input.PaymentMethod != "" {
		s.paymentMethod = *input.PaymentMethod
	}
	return nil
}

// CheckoutResult is returned to the front-end after a successful checkout.
type CheckoutResult struct {
	Billing     *entity.BillingResult `json:"billing"`
	InvoiceNo   string                `json:"invoice_no"`
	ReceiptHTML string                `json:"receipt_html"`
	Totals      Totals                `json:"totals"`
}

// Checkout validates payment sufficiency, submits the billing and on success
// resets the session. A short payment fails fast with no network call and no
// state change. A rejected or unreachable billing service surfaces a generic
// error with the cart intact so the operator can retry.
func (s *PosSession) Checkout(ctx context.Context) (*CheckoutResult, error) {
	s.mu.Lock()

	if s.state == enum.CheckoutSubmitting {
		s.mu.Unlock()
		return nil, apperror.ErrCheckoutInProgress
	}
	if !s.paymentOpen {
		s.mu.Unlock()
		return nil, apperror.ErrPaymentPanelClosed
	}
	if s.cart.IsEmpty() {
		s.mu.Unlock()
		return nil, apperror.ErrEmptyCart
	}

	totals := s.pricing.Compute(s.cart, s.discount, s.paidAmount)

	// Paid defaults to the exact amount due when the operator left the
	// field empty.
	paid := totals.FinalAmount
	if s.paidAmount != nil {
		paid = *s.paidAmount
	}
	if paid < totals.FinalAmount {
		s.mu.Unlock()
		return nil, apperror.ErrInsufficientPayment
	}

	invoiceNo := newInvoiceNo()
	rcpt := s.buildReceiptLocked(invoiceNo, totals, paid)
	html := receipt.RenderHTML(rcpt, s.pricing.TaxRatePct())
	submission := s.buildSubmissionLocked(invoiceNo, html, totals, paid)

	s.state = enum.CheckoutSubmitting
	s.mu.Unlock()

	result, err := s.billing.CreateBilling(ctx, submission)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		log.Printf("session %s: billing submission failed: %v", s.ID, err)
		// Back to Reviewing with the cart intact; retry is manual.
		s.state = enum.CheckoutFailed
		s.paymentOpen = true
		return nil, apperror.ErrBillingUnavailable
	}

	if result.ReceiptHTML == "" {
		result.ReceiptHTML = html
	}
	s.lastBilling = result
	s.state = enum.CheckoutSucceeded

	if err := s.receipts.PrintReceipt(rcpt); err != nil {
		// Printing is best-effort; the front-end still has the HTML.
		log.Printf("session %s: receipt print failed: %v", s.ID, err)
	}

	s.resetSaleLocked()
	s.discount = DiscountConfig{Type: enum.DiscountTypePercent, Value: 0}
	s.paidAmount = nil
	s.paymentOpen = false

	return &CheckoutResult{
		Billing:     result,
		InvoiceNo:   invoiceNo,
		ReceiptHTML: result.ReceiptHTML,
		Totals:      totals,
	}, nil
}

// newInvoiceNo generates a client-side invoice number. UUID-derived rather
// than a random integer so collisions are not a practical concern; the
// billing service still deduplicates on its side.
func newInvoiceNo() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}

// buildReceiptLocked composes the receipt value object; callers hold s.mu.
func (s *PosSession) buildReceiptLocked(invoiceNo string, totals Totals, paid int64) *entity.Receipt {
	items := make([]entity.ReceiptItem, 0, s.cart.Len())
	for _, line := range s.cart.Lines() {
		items = append(items, entity.ReceiptItem{
			Name:     line.Name,
			Quantity: line.Quantity,
			Amount:   line.Amount(),
		})
	}
	return &entity.Receipt{
		InvoiceNo:     invoiceNo,
		Date:          time.Now().Format("2006-01-02 15:04:05"),
		Items:         items,
		SubTotal:      totals.Subtotal,
		Tax:           totals.Tax,
		DiscountLabel: receipt.DiscountLabel(s.discount.Type == enum.DiscountTypePercent, s.discount.Value),
		Total:         totals.FinalAmount,
		Paid:          paid,
		Change:        money.Clamp(paid - totals.FinalAmount),
	}
}

// buildSubmissionLocked composes the billing payload; callers hold s.mu.
func (s *PosSession) buildSubmissionLocked(invoiceNo, receiptHTML string, totals Totals, paid int64) *entity.BillingSubmission {
	items := make([]entity.BillingItem, 0, s.cart.Len())
	for _, line := range s.cart.Lines() {
		items = append(items, entity.BillingItem{
			ProductID:  line.ProductID,
			CategoryID: line.CategoryID,
			Quantity:   line.Quantity,
			UnitPrice:  line.Price,
			CompanyID:  s.cfg.CompanyID,
			StoreID:    s.cfg.StoreID,
		})
	}
	return &entity.BillingSubmission{
		InvoiceNo:     invoiceNo,
		BillingDate:   time.Now().UTC(),
		BillerName:    s.billerName,
		ReceiptHTML:   receiptHTML,
		TotalAmount:   totals.FinalAmount,
		PaymentAmount: paid,
		Status:        enum.BillingStatusCompleted,
		CompanyID:     s.cfg.CompanyID,
		StoreID:       s.cfg.StoreID,
		Items:         items,
	}
}
