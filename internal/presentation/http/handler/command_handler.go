package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/swiftpos/terminal-api/internal/application/service"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/request"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/response"
)

// CommandHandler forwards raw key events to the session dispatcher
type CommandHandler struct {
	sessions *service.SessionService
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(sessions *service.SessionService) *CommandHandler {
	return &CommandHandler{sessions: sessions}
}

// Dispatch resolves a key event to a terminal command and executes it
func (h *CommandHandler) Dispatch(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	var req request.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result := session.Dispatch(req.Key, req.InputFocused)
	response.OK(c, "Command dispatched", gin.H{
		"result":   result,
		"snapshot": session.Snapshot(),
	})
}

// CloseSearch closes the quick-search modal
func (h *CommandHandler) CloseSearch(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	session.CloseSearch()
	response.OK(c, "Search closed", session.Snapshot())
}

// CloseQuantityDialog closes the quantity dialog
func (h *CommandHandler) CloseQuantityDialog(c *gin.Context) {
	session := sessionFromParam(c, h.sessions)
	if session == nil {
		return
	}

	session.CloseQuantityDialog()
	response.OK(c, "Quantity dialog closed", session.Snapshot())
}
