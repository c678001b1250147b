package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotencyRouter(store *IdempotencyStore, status *atomic.Int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	var calls atomic.Int64
	router := gin.New()
	router.POST("/sessions/:id/checkout", Idempotency(store), func(c *gin.Context) {
		n := calls.Add(1)
		c.JSON(int(status.Load()), gin.H{"call": n})
	})
	return router
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	t.Parallel()

	var status atomic.Int64
	status.Store(http.StatusOK)
	router := newIdempotencyRouter(NewIdempotencyStore(), &status)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/sessions/s1/checkout", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	require.Equal(t, http.StatusOK, first.Code)

	second := do()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyDistinctKeysAreIndependent(t *testing.T) {
	t.Parallel()

	var status atomic.Int64
	status.Store(http.StatusOK)
	router := newIdempotencyRouter(NewIdempotencyStore(), &status)

	do := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/sessions/s1/checkout", nil)
		req.Header.Set(IdempotencyKeyHeader, key)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do("key-a")
	second := do("key-b")
	assert.NotEqual(t, first.Body.String(), second.Body.String())
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	var status atomic.Int64
	status.Store(http.StatusBadGateway)
	router := newIdempotencyRouter(NewIdempotencyStore(), &status)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/sessions/s1/checkout", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	require.Equal(t, http.StatusBadGateway, first.Code)

	// A retry after a failure reaches the handler again.
	status.Store(http.StatusOK)
	second := do()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	t.Parallel()

	var status atomic.Int64
	status.Store(http.StatusOK)
	router := newIdempotencyRouter(NewIdempotencyStore(), &status)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/sessions/s1/checkout", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	second := do()
	assert.NotEqual(t, first.Body.String(), second.Body.String())
}
