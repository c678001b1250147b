package request

// AddCartItemRequest adds a catalog product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest mutates one cart line. Op selects the mutation.
type UpdateCartItemRequest struct {
	Op       string   `json:"op" binding:"required,oneof=quantity_delta quantity price reset_price"`
	Delta    *int     `json:"delta,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// SelectLineRequest selects a cart line; empty product id deselects.
type SelectLineRequest struct {
	ProductID string `json:"product_id"`
}

// QueryRequest updates the active free-text query.
type QueryRequest struct {
	Query string `json:"query"`
}

// CategoryFilterRequest updates the active category filter.
type CategoryFilterRequest struct {
	CategoryID string `json:"category_id"`
}

// UpdatePaymentRequest applies operator edits on the payment panel. Nil
// fields are untouched; the clear flags reset override/paid explicitly.
type UpdatePaymentRequest struct {
	DiscountType  *string  `json:"discount_type,omitempty" binding:"omitempty,oneof=percent fixed"`
	DiscountValue *float64 `json:"discount_value,omitempty"`
	Override      *float64 `json:"override,omitempty"`
	ClearOverride bool     `json:"clear_override,omitempty"`
	PaidAmount    *float64 `json:"paid_amount,omitempty"`
	ClearPaid     bool     `json:"clear_paid,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
}

// CommandRequest forwards a raw key event to the command dispatcher.
type CommandRequest struct {
	Key          string `json:"key" binding:"required"`
	InputFocused bool   `json:"input_focused"`
}
