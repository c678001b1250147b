package gateway

import (
	"context"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
)

// BillingGateway is the outbound port to the external billing service.
type BillingGateway interface {
	// CreateBilling submits a completed sale. Called at most once per
	// checkout attempt.
	CreateBilling(ctx context.Context, submission *entity.BillingSubmission) (*entity.BillingResult, error)
}

// ReceiptSink receives rendered receipts after a successful checkout, e.g. a
// thermal printer. Failures are logged, never surfaced to the operator.
type ReceiptSink interface {
	PrintReceipt(receipt *entity.Receipt) error
}
