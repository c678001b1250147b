package middleware

import (
	"bytes"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// idempotencyKeyTTL is how long replayed responses are kept
	idempotencyKeyTTL = 1 * time.Hour
)

// storedResponse is a cached successful response for one idempotency key.
type storedResponse struct {
	code      int
	body      []byte
	expiresAt time.Time
}

// IdempotencyStore keeps replayed responses in memory. The terminal has no
// local persistence, so keys do not survive a restart; the billing service
// remains the durable deduplication layer.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]storedResponse
}

// NewIdempotencyStore creates an empty store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]storedResponse)}
}

func (s *IdempotencyStore) get(key string) (storedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return storedResponse{}, false
	}
	return entry, true
}

func (s *IdempotencyStore) put(key string, code int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = storedResponse{
		code:      code,
		body:      body,
		expiresAt: time.Now().Add(idempotencyKeyTTL),
	}
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key,
// so a front-end retry of a checkout that already succeeded cannot charge
// twice. Requests without the header proceed normally.
func Idempotency(store *IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		// Scope the key to the endpoint and session.
		key = c.Request.Method + " " + c.FullPath() + " " + c.Param("id") + " " + key

		if entry, ok := store.get(key); ok {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(entry.code, "application/json", entry.body)
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only replay successful responses; a failed checkout may be retried.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			store.put(key, c.Writer.Status(), blw.body.Bytes())
		}
	}
}
