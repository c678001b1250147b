package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/swiftpos/terminal-api/internal/presentation/http/dto/response"
	"github.com/swiftpos/terminal-api/pkg/utils"
)

// AuthMiddleware verifies operator bearer tokens issued by the back-office
// auth service. Token issuance and session storage stay external; the
// terminal API only validates.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateOperatorToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_name", claims.Name)
		c.Set("operator_email", claims.Email)
		c.Set("operator_roles", claims.Roles)

		c.Next()
	}
}
