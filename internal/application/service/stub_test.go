package service

import (
	"context"
	"errors"
	"sync"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/gateway"
	"github.com/swiftpos/terminal-api/pkg/pagination"
)

var errUpstreamDown = errors.New("upstream down")

func testCategories() []entity.Category {
	return []entity.Category{
		{ID: "drinks", Name: "Drinks"},
		{ID: "bakery", Name: "Bakery"},
	}
}

func testProducts() []entity.CatalogItem {
	return []entity.CatalogItem{
		{ID: "1001", Name: "Espresso", Price: 250, CategoryID: "drinks", CategoryName: "Drinks"},
		{ID: "1002", Name: "Cappuccino", Price: 350, CategoryID: "drinks", CategoryName: "Drinks"},
		{ID: "2001", Name: "Blueberry Muffin", Price: 220, CategoryID: "bakery", CategoryName: "Bakery"},
	}
}

func fallbackData() ([]entity.Category, []entity.CatalogItem) {
	return []entity.Category{{ID: "fb", Name: "Fallback"}, entity.AllCategory()},
		[]entity.CatalogItem{{ID: "9001", Name: "Fallback Item", Price: 100, CategoryID: "fb", CategoryName: "Fallback"}}
}

// stubCatalogGateway serves canned data; searchFn, when set, intercepts
// SearchProducts so tests can block or fail individual loads.
type stubCatalogGateway struct {
	categories    []entity.Category
	categoriesErr error
	products      []entity.CatalogItem
	productsErr   error
	searchFn      func(categoryID, filter string) (*gateway.ProductPage, error)
}

func (g *stubCatalogGateway) GetCategories(_ context.Context, _ *pagination.PaginationParams) (*gateway.CategoryPage, error) {
	if g.categoriesErr != nil {
		return nil, g.categoriesErr
	}
	return &gateway.CategoryPage{Items: g.categories, TotalCount: int64(len(g.categories))}, nil
}

func (g *stubCatalogGateway) SearchProducts(_ context.Context, _ *pagination.PaginationParams, categoryID, filter string) (*gateway.ProductPage, error) {
	if g.searchFn != nil {
		return g.searchFn(categoryID, filter)
	}
	if g.productsErr != nil {
		return nil, g.productsErr
	}
	return &gateway.ProductPage{Items: g.products, TotalCount: int64(len(g.products))}, nil
}

// spyBillingGateway records submissions and replies with a canned result or
// error.
type spyBillingGateway struct {
	mu          sync.Mutex
	submissions []*entity.BillingSubmission
	result      *entity.BillingResult
	err         error
}

func (g *spyBillingGateway) CreateBilling(_ context.Context, submission *entity.BillingSubmission) (*entity.BillingResult, error) {
	g.mu.Lock()
	g.submissions = append(g.submissions, submission)
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	if g.result != nil {
		return g.result, nil
	}
	return &entity.BillingResult{ID: "b-1", InvoiceNo: submission.InvoiceNo, Status: "Completed"}, nil
}

func (g *spyBillingGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.submissions)
}

func (g *spyBillingGateway) last() *entity.BillingSubmission {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.submissions) == 0 {
		return nil
	}
	return g.submissions[len(g.submissions)-1]
}

// blockingBillingGateway signals on entered and then holds CreateBilling
// until release is closed, so tests can act while a submission is in flight.
type blockingBillingGateway struct {
	spyBillingGateway
	entered chan struct{}
	release chan struct{}
}

func newBlockingBillingGateway() *blockingBillingGateway {
	return &blockingBillingGateway{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *blockingBillingGateway) CreateBilling(ctx context.Context, submission *entity.BillingSubmission) (*entity.BillingResult, error) {
	close(g.entered)
	<-g.release
	return g.spyBillingGateway.CreateBilling(ctx, submission)
}

// spyReceiptSink records printed receipts.
type spyReceiptSink struct {
	mu       sync.Mutex
	receipts []*entity.Receipt
	err      error
}

func (s *spyReceiptSink) PrintReceipt(r *entity.Receipt) error {
	s.mu.Lock()
	s.receipts = append(s.receipts, r)
	s.mu.Unlock()
	return s.err
}

func (s *spyReceiptSink) printed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.receipts)
}

func testSessionConfig() SessionConfig {
	return SessionConfig{TaxRatePct: 7, CompanyID: 1, StoreID: 1, BillerName: "System User"}
}

// newTestSession builds a session backed by stub gateways with the catalog
// already loaded.
func newTestSession(billing gateway.BillingGateway, receipts gateway.ReceiptSink) *PosSession {
	catalogGW := &stubCatalogGateway{categories: testCategories(), products: testProducts()}
	catalog := NewCatalogService(catalogGW, fallbackData)
	session := NewPosSession(catalog, billing, receipts, testSessionConfig(), "Jamie")
	_ = session.RefreshCatalog(context.Background())
	return session
}
