package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swiftpos/terminal-api/internal/application/service"
	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/request"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/response"
	"github.com/swiftpos/terminal-api/pkg/pagination"
)

// CatalogHandler handles catalog-related HTTP requests for a session
type CatalogHandler struct {
	sessions *service.SessionService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(sessions *service.SessionService) *CatalogHandler {
	return &CatalogHandler{sessions: sessions}
}

// Refresh reloads categories and products from the catalog service
func (h *CatalogHandler) Refresh(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	if err := session.RefreshCatalog(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog refreshed successfully", gin.H{
		"categories": session.Catalog().CategoryViews(),
		"products":   session.Catalog().Products(),
	})
}

// Categories returns the category strip with per-category product counts
func (h *CatalogHandler) Categories(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	response.OK(c, "Categories retrieved successfully", session.Catalog().CategoryViews())
}

// Products returns the cached product grid for the active filter and query
func (h *CatalogHandler) Products(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "100"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()

	products := session.Catalog().Products()
	total := int64(len(products))

	start := (params.Page - 1) * params.PerPage
	if start > len(products) {
		start = len(products)
	}
	end := start + params.PerPage
	if end > len(products) {
		end = len(products)
	}
	pageItems := products[start:end]

	result := pagination.NewPaginatedResult(pageItems, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// SetCategoryFilter changes the active category and re-fetches products
func (h *CatalogHandler) SetCategoryFilter(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	var req request.CategoryFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := session.SetCategoryFilter(c.Request.Context(), req.CategoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category filter updated successfully", session.Catalog().Products())
}

// SetQuery changes the free-text filter and re-fetches products
func (h *CatalogHandler) SetQuery(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	var req request.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := session.SetQuery(c.Request.Context(), req.Query); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Query updated successfully", session.Catalog().Products())
}

// Search returns quick-search hits for the modal, capped at 8
func (h *CatalogHandler) Search(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	results := session.SearchResults(c.Query("q"))
	if results == nil {
		results = []entity.CatalogItem{}
	}

	response.OK(c, "Search completed successfully", results)
}
