package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/enum"
	"github.com/swiftpos/terminal-api/internal/domain/gateway"
	"github.com/swiftpos/terminal-api/pkg/apperror"
	"github.com/swiftpos/terminal-api/pkg/money"
)

// SessionConfig carries the terminal-wide settings each session inherits.
type SessionConfig struct {
	TaxRatePct float64
	CompanyID  int64
	StoreID    int64
	BillerName string
}

// PosSession owns the mutable state of one operator terminal: the cart, the
// discount configuration, the selection, the active query and the checkout
// state machine. Every mutation goes through its mutex, so concurrent HTTP
// requests and late catalog responses cannot produce lost updates.
type PosSession struct {
	ID        uuid.UUID
	CreatedAt time.Time

	catalog  *CatalogService
	billing  gateway.BillingGateway
	receipts gateway.ReceiptSink
	pricing  *PricingEngine
	cfg      SessionConfig

	mu             sync.Mutex
	cart           *entity.Cart
	selectedID     string
	query          string
	categoryFilter string
	searchOpen     bool
	qtyDialogOpen  bool
	paymentOpen    bool
	paymentMethod  string
	discount       DiscountConfig
	paidAmount     *int64
	state          enum.CheckoutState
	lastBilling    *entity.BillingResult
	billerName     string
}

// NewPosSession creates a session with an empty cart and its own catalog
// cache. billerName comes from the operator token; empty falls back to the
// configured default.
func NewPosSession(catalog *CatalogService, billing gateway.BillingGateway, receipts gateway.ReceiptSink, cfg SessionConfig, billerName string) *PosSession {
	if billerName == "" {
		billerName = cfg.BillerName
	}
	return &PosSession{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		catalog:        catalog,
		billing:        billing,
		receipts:       receipts,
		pricing:        NewPricingEngine(cfg.TaxRatePct),
		cfg:            cfg,
		cart:           entity.NewCart(),
		categoryFilter: entity.AllCategoryID,
		paymentMethod:  "cash",
		state:          enum.CheckoutIdle,
		billerName:     billerName,
	}
}

// Catalog returns the session's catalog cache.
func (s *PosSession) Catalog() *CatalogService {
	return s.catalog
}

// RefreshCatalog loads categories and then products for the current filter
// and query. Categories load first: the product filter logic depends on the
// category list existing.
func (s *PosSession) RefreshCatalog(ctx context.Context) error {
	s.catalog.LoadCategories(ctx)

	s.mu.Lock()
	categoryFilter, query := s.categoryFilter, s.query
	s.mu.Unlock()

	return s.catalog.LoadProducts(ctx, categoryFilter, query)
}

// SetCategoryFilter changes the category filter and re-fetches products.
func (s *PosSession) SetCategoryFilter(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	if categoryID == "" {
		categoryID = entity.AllCategoryID
	}
	s.categoryFilter = categoryID
	query := s.query
	s.mu.Unlock()

	return s.catalog.LoadProducts(ctx, categoryID, query)
}

// SetQuery changes the free-text query and re-fetches products.
func (s *PosSession) SetQuery(ctx context.Context, query string) error {
	s.mu.Lock()
	s.query = query
	categoryFilter := s.categoryFilter
	s.mu.Unlock()

	return s.catalog.LoadProducts(ctx, categoryFilter, query)
}

// SearchResults collects the quick-search hits for the session's active
// query, capped at 8.
func (s *PosSession) SearchResults(query string) []entity.CatalogItem {
	var out []entity.CatalogItem
	for item := range s.catalog.Search(query) {
		out = append(out, item)
	}
	return out
}

// ensureMutableLocked rejects sale mutations while a billing submission is
// in flight. The submission snapshot was already built; a line accepted now
// would never be billed and would vanish in the post-success reset. Callers
// hold s.mu.
func (s *PosSession) ensureMutableLocked() error {
	if s.state == enum.CheckoutSubmitting {
		return apperror.ErrCheckoutInProgress
	}
	return nil
}

// AddItem adds a catalog product to the cart, merging quantities for a
// product already present. Part of the add contract is clearing the active
// search query, which triggers a product re-fetch when one was set.
func (s *PosSession) AddItem(ctx context.Context, productID string, quantity int) error {
	item, ok := s.catalog.FindProduct(productID)
	if !ok {
		return apperror.ErrProductNotInCatalog
	}

	s.mu.Lock()
	if err := s.ensureMutableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cart.AddItem(item, quantity)
	hadQuery := s.query != ""
	s.query = ""
	categoryFilter := s.categoryFilter
	s.mu.Unlock()

	if hadQuery {
		return s.catalog.LoadProducts(ctx, categoryFilter, "")
	}
	return nil
}

// ChangeQuantity adjusts a line's quantity by delta, floored at 1.
func (s *PosSession) ChangeQuantity(productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureMutableLocked(); err != nil {
		return err
	}
	if !s.cart.ChangeQuantity(productID, delta) {
		return apperror.ErrLineNotFound
	}
	return nil
}

// SetQuantity sets a line's quantity to an absolute value, floored at 1.
func (s *PosSession) SetQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureMutableLocked(); err != nil {
		return err
	}
	if !s.cart.SetQuantity(productID, quantity) {
		return apperror.ErrLineNotFound
	}
	return nil
}

// SetPrice overrides a line's unit price. The catalog's current price for
// the product decides whether the line counts as discounted; when the
// product is no longer in the cached catalog the line's own price is the
// best available reference.
func (s *PosSession) SetPrice(productID string, price float64) error {
	catalogPrice, hasCatalogPrice := s.catalogPrice(productID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureMutableLocked(); err != nil {
		return err
	}
	line := s.cart.Find(productID)
	if line == nil {
		return apperror.ErrLineNotFound
	}
	if !hasCatalogPrice {
		catalogPrice = line.Price
	}
	s.cart.SetPrice(productID, money.FromDecimal(price), catalogPrice)
	return nil
}

// ResetPrice restores a line to the catalog price and clears its discount.
func (s *PosSession) ResetPrice(productID string) error {
	catalogPrice, hasCatalogPrice := s.catalogPrice(productID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureMutableLocked(); err != nil {
		return err
	}
	line := s.cart.Find(productID)
	if line == nil {
		return apperror.ErrLineNotFound
	}
	if !hasCatalogPrice {
		if line.OriginalPrice != nil {
			catalogPrice = *line.OriginalPrice
		} else {
			catalogPrice = line.Price
		}
	}
	s.cart.ResetPrice(productID, catalogPrice)
	return nil
}

func (s *PosSession) catalogPrice(productID string) (int64, bool) {
	item, ok := s.catalog.FindProduct(productID)
	if !ok {
		return 0, false
	}
	return item.Price, true
}

// RemoveItem deletes a cart line; removing the selected line clears the
// selection.
func (s *PosSession) RemoveItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureMutableLocked(); err != nil {
		return err
	}
	if !s.cart.RemoveItem(productID) {
		return apperror.ErrLineNotFound
	}
	if s.selectedID == productID {
		s.selectedID = ""
	}
	return nil
}

// Select marks a cart line as the current selection; an empty id deselects.
func (s *PosSession) Select(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if productID == "" {
		s.selectedID = ""
		return nil
	}
	if s.cart.Find(productID) == nil {
		return apperror.ErrLineNotFound
	}
	s.selectedID = productID
	return nil
}

// NewSale empties the cart and clears selection and query.
func (s *PosSession) NewSale() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureMutableLocked(); err != nil {
		return err
	}
	s.resetSaleLocked()
	log.Printf("session %s: new sale started", s.ID)
	return nil
}

// resetSaleLocked clears the sale state; callers hold s.mu.
func (s *PosSession) resetSaleLocked() {
	s.cart.Clear()
	s.selectedID = ""
	s.query = ""
}

// SaveSale is a stub: hold/park functionality has no persistence behind it.
func (s *PosSession) SaveSale() string {
	log.Printf("session %s: sale saved (mock)", s.ID)
	return "Sale saved (mock)"
}

// Totals computes the derived amounts for the current cart and discount
// configuration.
func (s *PosSession) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pricing.Compute(s.cart, s.discount, s.paidAmount)
}

// DiscountView is the API shape of the discount configuration.
type DiscountView struct {
	Type     enum.DiscountType `json:"type"`
	Value    float64           `json:"value"`
	Override *float64          `json:"override,omitempty"`
}

// SessionView is a consistent snapshot of the session state.
type SessionView struct {
	ID             uuid.UUID             `json:"id"`
	CreatedAt      time.Time             `json:"created_at"`
	Cart           []entity.CartLine     `json:"cart"`
	SelectedID     string                `json:"selected_id,omitempty"`
	Query          string                `json:"query"`
	CategoryFilter string                `json:"category_filter"`
	SearchOpen     bool                  `json:"search_open"`
	QtyDialogOpen  bool                  `json:"qty_dialog_open"`
	PaymentOpen    bool                  `json:"payment_open"`
	PaymentMethod  string                `json:"payment_method"`
	Discount       DiscountView          `json:"discount"`
	PaidAmount     *float64              `json:"paid_amount,omitempty"`
	CheckoutState  enum.CheckoutState    `json:"checkout_state"`
	Totals         Totals                `json:"totals"`
	LastBilling    *entity.BillingResult `json:"last_billing,omitempty"`
}

// Snapshot returns a consistent view of the session. The cart lines are
// value copies taken under the lock; handlers marshal the view after the
// lock is released, so sharing the live lines would race with mutations.
func (s *PosSession) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		ID:             s.ID,
		CreatedAt:      s.CreatedAt,
		Cart:           s.cart.CopyLines(),
		SelectedID:     s.selectedID,
		Query:          s.query,
		CategoryFilter: s.categoryFilter,
		SearchOpen:     s.searchOpen,
		QtyDialogOpen:  s.qtyDialogOpen,
		PaymentOpen:    s.paymentOpen,
		PaymentMethod:  s.paymentMethod,
		Discount: DiscountView{
			Type:  s.discount.Type,
			Value: s.discount.Value,
		},
		CheckoutState: s.state,
		Totals:        s.pricing.Compute(s.cart, s.discount, s.paidAmount),
		LastBilling:   s.lastBilling,
	}
	if s.discount.Override != nil {
		v := money.ToDecimal(*s.discount.Override)
		view.Discount.Override = &v
	}
	if s.paidAmount != nil {
		v := money.ToDecimal(*s.paidAmount)
		view.PaidAmount = &v
	}
	return view
}
