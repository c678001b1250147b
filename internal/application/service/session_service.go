package service

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/gateway"
	"github.com/swiftpos/terminal-api/pkg/apperror"
)

// FallbackData supplies the built-in category and product lists substituted
// when the catalog service is unreachable.
type FallbackData func() ([]entity.Category, []entity.CatalogItem)

// SessionService manages the live terminal sessions, one per operator
// terminal, keyed by session id.
type SessionService struct {
	catalogGW gateway.CatalogGateway
	billingGW gateway.BillingGateway
	receipts  gateway.ReceiptSink
	fallback  FallbackData
	cfg       SessionConfig

	mu       sync.RWMutex
	sessions map[uuid.UUID]*PosSession
}

// NewSessionService creates a new session service.
func NewSessionService(catalogGW gateway.CatalogGateway, billingGW gateway.BillingGateway, receipts gateway.ReceiptSink, fallback FallbackData, cfg SessionConfig) *SessionService {
	return &SessionService{
		catalogGW: catalogGW,
		billingGW: billingGW,
		receipts:  receipts,
		fallback:  fallback,
		cfg:       cfg,
		sessions:  make(map[uuid.UUID]*PosSession),
	}
}

// Create opens a new session with its own catalog cache and performs the
// initial catalog load. The session is usable even when the catalog service
// is down; it then runs on fallback data.
func (s *SessionService) Create(ctx context.Context, billerName string) (*PosSession, error) {
	catalog := NewCatalogService(s.catalogGW, s.fallback)
	session := NewPosSession(catalog, s.billingGW, s.receipts, s.cfg, billerName)

	if err := session.RefreshCatalog(ctx); err != nil {
		// Only the categories-before-products ordering can fail here, and a
		// fresh session always loads categories first.
		log.Printf("session %s: initial catalog load: %v", session.ID, err)
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("session %s: opened for %q", session.ID, session.billerName)
	return session, nil
}

// Get returns a live session by id.
func (s *SessionService) Get(id uuid.UUID) (*PosSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}
	return session, nil
}

// Close ends a session and discards its state.
func (s *SessionService) Close(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}
	delete(s.sessions, id)
	log.Printf("session %s: closed", id)
	return nil
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
