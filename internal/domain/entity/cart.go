package entity

import "encoding/json"

// CartLine is a single line item in the cart. Prices are in cents.
// OriginalPrice is present only while the line's price has been overridden
// away from the catalog price; its presence, not a flag, is what marks the
// line as discounted.
type CartLine struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Price         int64  `json:"-"`
	OriginalPrice *int64 `json:"-"`
	Quantity      int    `json:"quantity"`
	CategoryID    string `json:"category_id"`
}

// HasDiscount reports whether the line price has been manually discounted.
func (l *CartLine) HasDiscount() bool {
	return l.OriginalPrice != nil && *l.OriginalPrice != l.Price
}

// DiscountAmount returns the total discount on the line in cents, 0 when the
// line carries no discount.
func (l *CartLine) DiscountAmount() int64 {
	if !l.HasDiscount() {
		return 0
	}
	return (*l.OriginalPrice - l.Price) * int64(l.Quantity)
}

// DiscountPercent returns the per-unit discount as a percentage of the
// original price, 0 when the line carries no discount.
func (l *CartLine) DiscountPercent() float64 {
	if !l.HasDiscount() || *l.OriginalPrice == 0 {
		return 0
	}
	return float64(*l.OriginalPrice-l.Price) / float64(*l.OriginalPrice) * 100
}

// Amount returns price × quantity in cents.
func (l *CartLine) Amount() int64 {
	return l.Price * int64(l.Quantity)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	out := &struct {
		Alias
		Price           float64  `json:"price"`
		OriginalPrice   *float64 `json:"original_price,omitempty"`
		Amount          float64  `json:"amount"`
		DiscountAmount  float64  `json:"discount_amount,omitempty"`
		DiscountPercent float64  `json:"discount_percent,omitempty"`
	}{
		Alias:  Alias(l),
		Price:  float64(l.Price) / 100,
		Amount: float64(l.Amount()) / 100,
	}
	if l.OriginalPrice != nil {
		op := float64(*l.OriginalPrice) / 100
		out.OriginalPrice = &op
	}
	if l.HasDiscount() {
		out.DiscountAmount = float64(l.DiscountAmount()) / 100
		out.DiscountPercent = l.DiscountPercent()
	}
	return json.Marshal(out)
}

// Cart is an insertion-ordered collection of cart lines keyed by product id.
// At most one line exists per product. It is not safe for concurrent use;
// the owning session serializes access.
type Cart struct {
	lines []*CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Lines returns the cart lines in insertion order. The returned lines are
// the live ones; callers must hold whatever lock serializes the cart.
func (c *Cart) Lines() []*CartLine {
	return c.lines
}

// CopyLines returns value copies of the lines, detached from the cart.
// OriginalPrice is duplicated too, so a copy stays valid after the owner's
// lock is released.
func (c *Cart) CopyLines() []CartLine {
	out := make([]CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
		if l.OriginalPrice != nil {
			op := *l.OriginalPrice
			out[i].OriginalPrice = &op
		}
	}
	return out
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Find returns the line for the given product id, or nil.
func (c *Cart) Find(productID string) *CartLine {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

// AddItem merges the catalog item into the cart: an existing line has its
// quantity incremented, otherwise a new undiscounted line is appended.
// Quantities below 1 are treated as 1.
func (c *Cart) AddItem(item CatalogItem, quantity int) *CartLine {
	if quantity < 1 {
		quantity = 1
	}
	if line := c.Find(item.ID); line != nil {
		line.Quantity += quantity
		return line
	}
	categoryID := item.CategoryID
	if categoryID == "" {
		categoryID = AllCategoryID
	}
	line := &CartLine{
		ProductID:  item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   quantity,
		CategoryID: categoryID,
	}
	c.lines = append(c.lines, line)
	return line
}

// ChangeQuantity adjusts the line's quantity by delta, floored at 1. The
// quantity can never reach 0 through this path; RemoveItem is the only way
// to drop a line. Unknown product ids are a no-op.
func (c *Cart) ChangeQuantity(productID string, delta int) bool {
	line := c.Find(productID)
	if line == nil {
		return false
	}
	line.Quantity = max(1, line.Quantity+delta)
	return true
}

// SetQuantity sets the line's quantity to an absolute value, floored at 1.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	line := c.Find(productID)
	if line == nil {
		return false
	}
	line.Quantity = max(1, quantity)
	return true
}

// SetPrice overrides the line's unit price, clamped at 0. catalogPrice is the
// authoritative current price from the catalog. The first change away from
// the catalog price captures the pre-change price as OriginalPrice; later
// changes keep that first captured value, except that setting the price back
// to exactly the catalog price clears the discount entirely. The asymmetry
// lets an operator apply, adjust and fully undo a manual discount while
// always comparing against the catalog price rather than intermediate
// manual prices.
func (c *Cart) SetPrice(productID string, newPrice, catalogPrice int64) bool {
	line := c.Find(productID)
	if line == nil {
		return false
	}
	if newPrice < 0 {
		newPrice = 0
	}
	if line.OriginalPrice == nil {
		if newPrice != catalogPrice && newPrice != line.Price {
			prev := line.Price
			line.OriginalPrice = &prev
		}
	} else if newPrice == catalogPrice {
		line.OriginalPrice = nil
	}
	line.Price = newPrice
	return true
}

// ResetPrice restores the line to the catalog price and clears the discount.
func (c *Cart) ResetPrice(productID string, catalogPrice int64) bool {
	line := c.Find(productID)
	if line == nil {
		return false
	}
	line.Price = catalogPrice
	line.OriginalPrice = nil
	return true
}

// RemoveItem deletes the line for the given product id.
func (c *Cart) RemoveItem(productID string) bool {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Subtotal returns the sum of line amounts in cents.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Amount()
	}
	return sum
}

// TotalQuantity returns the total number of units across all lines.
func (c *Cart) TotalQuantity() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
