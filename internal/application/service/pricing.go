package service

import (
	"encoding/json"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/enum"
	"github.com/swiftpos/terminal-api/pkg/money"
)

// DiscountConfig holds the operator-entered order-level discount state.
// Override, when present, is an absolute final total in cents that bypasses
// the computed discount entirely.
type DiscountConfig struct {
	Type     enum.DiscountType
	Value    float64
	Override *int64
}

// Totals are the derived amounts for a cart. All values in cents, rounded at
// the point of computation so repeated runs are idempotent and comparable.
type Totals struct {
	Subtotal        int64
	Tax             int64
	Total           int64
	DiscountedTotal int64
	FinalAmount     int64
	Change          int64
}

// MarshalJSON converts cents to decimal for API responses
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Subtotal        float64 `json:"subtotal"`
		Tax             float64 `json:"tax"`
		Total           float64 `json:"total"`
		DiscountedTotal float64 `json:"discounted_total"`
		FinalAmount     float64 `json:"final_amount"`
		Change          float64 `json:"change"`
	}{
		Subtotal:        money.ToDecimal(t.Subtotal),
		Tax:             money.ToDecimal(t.Tax),
		Total:           money.ToDecimal(t.Total),
		DiscountedTotal: money.ToDecimal(t.DiscountedTotal),
		FinalAmount:     money.ToDecimal(t.FinalAmount),
		Change:          money.ToDecimal(t.Change),
	})
}

// PricingEngine derives totals from a cart and discount configuration. It is
// pure and stateless; the tax rate is fixed at construction.
type PricingEngine struct {
	taxRatePct float64
}

// NewPricingEngine creates a pricing engine with the given tax rate percent.
func NewPricingEngine(taxRatePct float64) *PricingEngine {
	return &PricingEngine{taxRatePct: taxRatePct}
}

// TaxRatePct returns the configured tax rate percentage.
func (e *PricingEngine) TaxRatePct() float64 {
	return e.taxRatePct
}

// Compute derives all totals. paid is the tendered amount in cents, nil while
// the operator has not entered one (change reads 0 then). Both discount
// branches floor at zero, so a percent discount above 100 cannot drive the
// payable amount negative.
func (e *PricingEngine) Compute(cart *entity.Cart, discount DiscountConfig, paid *int64) Totals {
	subtotal := cart.Subtotal()
	tax := money.Percent(subtotal, e.taxRatePct)
	total := subtotal + tax

	var discounted int64
	switch discount.Type {
	case enum.DiscountTypeFixed:
		discounted = money.Clamp(total - money.FromDecimal(discount.Value))
	default:
		discounted = money.Clamp(money.Percent(total, 100-discount.Value))
	}

	final := discounted
	if discount.Override != nil {
		final = *discount.Override
	}

	var change int64
	if paid != nil {
		change = money.Clamp(*paid - final)
	}

	return Totals{
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           total,
		DiscountedTotal: discounted,
		FinalAmount:     final,
		Change:          change,
	}
}
