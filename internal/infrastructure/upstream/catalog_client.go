// Package upstream contains HTTP clients for the external services the
// terminal depends on: the catalog service and the billing service.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/gateway"
	"github.com/swiftpos/terminal-api/pkg/money"
	"github.com/swiftpos/terminal-api/pkg/pagination"
)

// CatalogClient implements gateway.CatalogGateway against the catalog
// service's REST API.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient creates a catalog client. timeout bounds every request.
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// categoryDTO mirrors the catalog service's category wire shape.
type categoryDTO struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

// productDTO mirrors the catalog service's product wire shape.
type productDTO struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	SalePrice    float64 `json:"salePrice"`
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
}

type pageDTO[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}

// GetCategories fetches a page of categories from the catalog service.
func (c *CatalogClient) GetCategories(ctx context.Context, params *pagination.PaginationParams) (*gateway.CategoryPage, error) {
	// "Catagory" is the catalog service's actual route spelling.
	endpoint := c.baseURL + "/Catagory/GetCategory"

	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(params.Page))
	q.Set("pageSize", strconv.Itoa(params.PerPage))

	var page pageDTO[categoryDTO]
	if err := c.getJSON(ctx, endpoint, q, &page); err != nil {
		return nil, fmt.Errorf("catalog: fetch categories: %w", err)
	}

	out := &gateway.CategoryPage{TotalCount: page.TotalCount}
	for _, dto := range page.Items {
		out.Items = append(out.Items, entity.Category{
			ID:   dto.CategoryID,
			Name: dto.Name,
		})
	}
	return out, nil
}

// SearchProducts fetches products matching the category and text filter.
func (c *CatalogClient) SearchProducts(ctx context.Context, params *pagination.PaginationParams, categoryID, filter string) (*gateway.ProductPage, error) {
	endpoint := c.baseURL + "/Product/GetSearchAllProduct"

	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(params.Page))
	q.Set("pageSize", strconv.Itoa(params.PerPage))
	if categoryID != "" && categoryID != entity.AllCategoryID {
		q.Set("categoryId", categoryID)
	}
	if filter != "" {
		q.Set("filter", filter)
	}

	var page pageDTO[productDTO]
	if err := c.getJSON(ctx, endpoint, q, &page); err != nil {
		return nil, fmt.Errorf("catalog: search products: %w", err)
	}

	out := &gateway.ProductPage{TotalCount: page.TotalCount}
	for _, dto := range page.Items {
		categoryID := dto.CategoryID
		if categoryID == "" {
			categoryID = entity.AllCategoryID
		}
		categoryName := dto.CategoryName
		if categoryName == "" {
			categoryName = "Unknown"
		}
		out.Items = append(out.Items, entity.CatalogItem{
			ID:           dto.ProductID,
			Name:         dto.Name,
			Price:        money.FromDecimal(dto.SalePrice),
			CategoryID:   categoryID,
			CategoryName: categoryName,
		})
	}
	return out, nil
}

func (c *CatalogClient) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
