package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
)

// BillingClient implements gateway.BillingGateway against the billing
// service's REST API.
type BillingClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBillingClient creates a billing client. timeout bounds every request.
func NewBillingClient(baseURL string, timeout time.Duration) *BillingClient {
	return &BillingClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// billingResponseDTO mirrors the billing service's response envelope. The
// payload may arrive either bare or wrapped in a data field.
type billingResponseDTO struct {
	ID          string              `json:"id"`
	InvoiceNo   string              `json:"invoiceNo"`
	ReceiptHTML string              `json:"receiptHtml"`
	Status      string              `json:"status"`
	Data        *billingResponseDTO `json:"data,omitempty"`
}

// CreateBilling submits a completed sale to the billing service.
func (c *BillingClient) CreateBilling(ctx context.Context, submission *entity.BillingSubmission) (*entity.BillingResult, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("billing: encode submission: %w", err)
	}

	endpoint := c.baseURL + "/Billing/AddBilling"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("billing: submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("billing: submit rejected with status %d: %s", resp.StatusCode, payload)
	}

	var dto billingResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("billing: decode response: %w", err)
	}
	if dto.Data != nil {
		dto = *dto.Data
	}

	return &entity.BillingResult{
		ID:          dto.ID,
		InvoiceNo:   dto.InvoiceNo,
		ReceiptHTML: dto.ReceiptHTML,
		Status:      dto.Status,
	}, nil
}
