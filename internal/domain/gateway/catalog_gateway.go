package gateway

import (
	"context"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/pkg/pagination"
)

// CategoryPage is one page of categories from the catalog service.
type CategoryPage struct {
	Items      []entity.Category
	TotalCount int64
}

// ProductPage is one page of catalog items from the catalog service.
type ProductPage struct {
	Items      []entity.CatalogItem
	TotalCount int64
}

// CatalogGateway is the outbound port to the external catalog service.
type CatalogGateway interface {
	// GetCategories fetches a page of categories.
	GetCategories(ctx context.Context, params *pagination.PaginationParams) (*CategoryPage, error)
	// SearchProducts fetches products matching an optional category id and
	// free-text filter. Empty categoryID means all categories.
	SearchProducts(ctx context.Context, params *pagination.PaginationParams, categoryID, filter string) (*ProductPage, error)
}
