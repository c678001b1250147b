package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/swiftpos/terminal-api/internal/application/service"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/request"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart mutations for a session
type CartHandler struct {
	sessions *service.SessionService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *service.SessionService) *CartHandler {
	return &CartHandler{sessions: sessions}
}

// AddItem adds a catalog product to the cart, merging quantities
func (h *CartHandler) AddItem(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := session.AddItem(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added successfully", session.Snapshot())
}

// UpdateItem applies one mutation to a cart line, selected by the op field
func (h *CartHandler) UpdateItem(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}
	productID := c.Param("productId")

	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var err error
	switch req.Op {
	case "quantity_delta":
		if req.Delta == nil {
			response.BadRequest(c, "delta is required for op quantity_delta")
			return
		}
		err = session.ChangeQuantity(productID, *req.Delta)
	case "quantity":
		if req.Quantity == nil {
			response.BadRequest(c, "quantity is required for op quantity")
			return
		}
		err = session.SetQuantity(productID, *req.Quantity)
	case "price":
		if req.Price == nil {
			response.BadRequest(c, "price is required for op price")
			return
		}
		err = session.SetPrice(productID, *req.Price)
	case "reset_price":
		err = session.ResetPrice(productID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated successfully", session.Snapshot())
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	if err := session.RemoveItem(c.Param("productId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", session.Snapshot())
}

// Select marks a cart line as the current selection
func (h *CartHandler) Select(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	var req request.SelectLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := session.Select(req.ProductID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Selection updated successfully", session.Snapshot())
}
