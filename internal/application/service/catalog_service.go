package service

import (
	"context"
	"iter"
	"log"
	"strings"
	"sync"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/gateway"
	"github.com/swiftpos/terminal-api/pkg/apperror"
	"github.com/swiftpos/terminal-api/pkg/pagination"
)

// maxSearchResults caps the quick-search result sequence.
const maxSearchResults = 8

// CatalogService caches the category and product lists fetched from the
// external catalog service and exposes filtered views over them. A failed
// fetch substitutes built-in fallback data so the terminal stays usable
// degraded; fetch failures are never surfaced as blocking errors.
//
// Product loads are tagged with a monotonically increasing sequence number.
// Rapid typing dispatches overlapping fetches with no cancellation, so
// responses can arrive out of order; a response belonging to a superseded
// request is discarded instead of overwriting newer data.
type CatalogService struct {
	gw       gateway.CatalogGateway
	fallback func() ([]entity.Category, []entity.CatalogItem)

	mu               sync.Mutex
	categories       []entity.Category
	products         []entity.CatalogItem
	categoriesLoaded bool
	dispatchSeq      uint64
	appliedSeq       uint64
}

// NewCatalogService creates a catalog cache over the given gateway. fallback
// supplies the built-in category and product lists used on fetch failure.
func NewCatalogService(gw gateway.CatalogGateway, fallback func() ([]entity.Category, []entity.CatalogItem)) *CatalogService {
	return &CatalogService{gw: gw, fallback: fallback}
}

// LoadCategories replaces the category list from the catalog service,
// prepending the synthetic "All" category. On failure the built-in fallback
// list is substituted and the error is only logged.
func (s *CatalogService) LoadCategories(ctx context.Context) {
	params := &pagination.PaginationParams{Page: 1, PerPage: 1000}
	page, err := s.gw.GetCategories(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		log.Printf("catalog: fetching categories failed, using fallback: %v", err)
		fallbackCategories, _ := s.fallback()
		s.categories = fallbackCategories
		s.categoriesLoaded = true
		return
	}

	categories := make([]entity.Category, 0, len(page.Items)+1)
	categories = append(categories, entity.AllCategory())
	categories = append(categories, page.Items...)
	s.categories = categories
	s.categoriesLoaded = true
}

// LoadProducts replaces the product list with products matching the category
// filter and text query. Loads are refused until categories have loaded at
// least once, because the "all" filter depends on the category list existing.
// A stale response (one superseded by a later dispatch) is dropped.
func (s *CatalogService) LoadProducts(ctx context.Context, categoryID, query string) error {
	s.mu.Lock()
	if !s.categoriesLoaded {
		s.mu.Unlock()
		return apperror.ErrCategoriesNotLoaded
	}
	s.dispatchSeq++
	seq := s.dispatchSeq
	s.mu.Unlock()

	params := &pagination.PaginationParams{Page: 1, PerPage: 100}
	page, err := s.gw.SearchProducts(ctx, params, categoryID, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer load was dispatched while this one was in flight.
	if seq < s.dispatchSeq {
		return nil
	}

	if err != nil {
		log.Printf("catalog: fetching products failed, using fallback: %v", err)
		_, fallbackProducts := s.fallback()
		s.products = fallbackProducts
		s.appliedSeq = seq
		return nil
	}

	s.products = page.Items
	s.appliedSeq = seq
	return nil
}

// Categories returns the cached category list.
func (s *CatalogService) Categories() []entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Products returns the cached product list.
func (s *CatalogService) Products() []entity.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.CatalogItem, len(s.products))
	copy(out, s.products)
	return out
}

// CategoriesLoaded reports whether categories have loaded at least once.
func (s *CatalogService) CategoriesLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoriesLoaded
}

// FindProduct looks up a cached product by id.
func (s *CatalogService) FindProduct(productID string) (entity.CatalogItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == productID {
			return p, true
		}
	}
	return entity.CatalogItem{}, false
}

// CategoryViews returns each category paired with its products; the
// synthetic "All" category carries every product.
func (s *CatalogService) CategoryViews() []entity.CategoryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]entity.CategoryView, 0, len(s.categories))
	for _, c := range s.categories {
		view := entity.CategoryView{Category: c}
		if c.ID == entity.AllCategoryID {
			view.Items = append(view.Items, s.products...)
		} else {
			for _, p := range s.products {
				if p.CategoryID == c.ID {
					view.Items = append(view.Items, p)
				}
			}
		}
		views = append(views, view)
	}
	return views
}

// Search returns a lazy, finite, restartable sequence of at most 8 cached
// products whose name or id contains the query, case-insensitively. An empty
// query yields an empty sequence: the search box never shows the whole
// catalog.
func (s *CatalogService) Search(query string) iter.Seq[entity.CatalogItem] {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	products := make([]entity.CatalogItem, len(s.products))
	copy(products, s.products)
	s.mu.Unlock()

	return func(yield func(entity.CatalogItem) bool) {
		if q == "" {
			return
		}
		n := 0
		for _, p := range products {
			if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.ID), q) {
				continue
			}
			if !yield(p) {
				return
			}
			n++
			if n == maxSearchResults {
				return
			}
		}
	}
}
