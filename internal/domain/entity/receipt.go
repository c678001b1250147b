package entity

// ReceiptItem represents a single line item on a receipt. Amounts in cents.
type ReceiptItem struct {
	Name     string
	Quantity int
	Amount   int64
}

// Receipt is a value object representing a printable receipt. It is composed
// from the cart and the computed totals at checkout time, never persisted.
type Receipt struct {
	InvoiceNo     string
	Date          string
	Items         []ReceiptItem
	SubTotal      int64
	Tax           int64
	DiscountLabel string
	Total         int64
	Paid          int64
	Change        int64
}
