package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swiftpos/terminal-api/internal/application/service"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/response"
)

// SessionHandler handles terminal session lifecycle requests
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create opens a new terminal session for the authenticated operator
func (h *SessionHandler) Create(c *gin.Context) {
	operatorID := GetOperatorID(c)
	if operatorID == nil {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), GetOperatorName(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened successfully", session.Snapshot())
}

// Get returns the full session snapshot
func (h *SessionHandler) Get(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	response.OK(c, "Session retrieved successfully", session.Snapshot())
}

// Close terminates a session
func (h *SessionHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.sessions.Close(id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session closed successfully", nil)
}

// Totals returns the derived amounts for the current cart and discount
func (h *SessionHandler) Totals(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	response.OK(c, "Totals computed successfully", session.Totals())
}

// NewSale empties the cart and starts a fresh sale
func (h *SessionHandler) NewSale(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	if err := session.NewSale(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "New sale started", session.Snapshot())
}

// SaveSale parks the current sale
func (h *SessionHandler) SaveSale(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	response.OK(c, session.SaveSale(), nil)
}
