package entity

import (
	"encoding/json"
	"time"

	"github.com/swiftpos/terminal-api/internal/domain/enum"
)

// BillingItem is a cart line translated into the billing service's line-item
// record. Prices in cents; serialized as decimals with the billing service's
// field names.
type BillingItem struct {
	ProductID  string `json:"ProductId"`
	CategoryID string `json:"CategoryId"`
	Quantity   int    `json:"Quantity"`
	UnitPrice  int64  `json:"-"`
	CompanyID  int64  `json:"CompanyId"`
	StoreID    int64  `json:"StoreId"`
}

// MarshalJSON converts cents to decimal for the billing service wire format
func (i BillingItem) MarshalJSON() ([]byte, error) {
	type Alias BillingItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"UnitPrice"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
	})
}

// BillingSubmission is the payload sent to the billing service on checkout.
// Constructed once per successful validation, immutable after construction,
// submitted exactly once per checkout attempt. Field names follow the
// billing service's contract.
type BillingSubmission struct {
	InvoiceNo     string             `json:"InvoiceNo"`
	BillingDate   time.Time          `json:"BillingDate"`
	BillerName    string             `json:"BillerName"`
	ReceiptHTML   string             `json:"ReceiptHtml"`
	TotalAmount   int64              `json:"-"`
	PaymentAmount int64              `json:"-"`
	Status        enum.BillingStatus `json:"Status"`
	CompanyID     int64              `json:"CompanyId"`
	StoreID       int64              `json:"StoreId"`
	Items         []BillingItem      `json:"Items"`
}

// MarshalJSON converts cents to decimal for the billing service wire format
func (s BillingSubmission) MarshalJSON() ([]byte, error) {
	type Alias BillingSubmission
	return json.Marshal(&struct {
		Alias
		TotalAmount   float64 `json:"TotalAmount"`
		PaymentAmount float64 `json:"PaymentAmount"`
	}{
		Alias:         Alias(s),
		TotalAmount:   float64(s.TotalAmount) / 100,
		PaymentAmount: float64(s.PaymentAmount) / 100,
	})
}

// BillingResult is the billing service's response to a submission. The
// receipt HTML is echoed back so the front-end can open a print surface.
type BillingResult struct {
	ID          string `json:"id"`
	InvoiceNo   string `json:"invoice_no"`
	ReceiptHTML string `json:"receipt_html,omitempty"`
	Status      string `json:"status,omitempty"`
}
