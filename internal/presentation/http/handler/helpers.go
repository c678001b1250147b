package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swiftpos/terminal-api/internal/application/service"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/response"
	"github.com/swiftpos/terminal-api/pkg/apperror"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) *uuid.UUID {
	operatorIDVal, exists := c.Get("operator_id")
	if !exists {
		return nil
	}
	operatorID, ok := operatorIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &operatorID
}

// GetOperatorName extracts the operator display name from the Gin context
func GetOperatorName(c *gin.Context) string {
	name, exists := c.Get("operator_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetOperatorRoles extracts the operator roles from the Gin context
func GetOperatorRoles(c *gin.Context) []string {
	roles, exists := c.Get("operator_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// sessionFromParam resolves the :id route parameter to a live session.
// It writes the error response itself and returns nil when resolution fails.
func sessionFromParam(c *gin.Context, sessions *service.SessionService) *service.PosSession {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return nil
	}
	session, err := sessions.Get(id)
	if err != nil {
		response.Error(c, apperror.ErrSessionNotFound)
		return nil
	}
	return session
}
