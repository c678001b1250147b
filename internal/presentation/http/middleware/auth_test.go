package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/terminal-api/pkg/utils"
)

func newAuthRouter(jwtManager *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtManager), func(c *gin.Context) {
		name, _ := c.Get("operator_name")
		c.JSON(http.StatusOK, gin.H{"operator_name": name})
	})
	return router
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	t.Parallel()

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateOperatorToken(uuid.New(), "Jamie", "jamie@example.com", []string{"cashier"})
	require.NoError(t, err)

	router := newAuthRouter(jwtManager)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jamie")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(utils.NewJWTManager("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(utils.NewJWTManager("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	t.Parallel()

	otherManager := utils.NewJWTManager("other-secret", time.Hour)
	token, err := otherManager.GenerateOperatorToken(uuid.New(), "Jamie", "jamie@example.com", nil)
	require.NoError(t, err)

	router := newAuthRouter(utils.NewJWTManager("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
