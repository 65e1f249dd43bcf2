package application

import (
	"sync"
	"time"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// HistoryStore keeps per-user search history for the lifetime of a session.
// Entries live only in memory and are dropped on sign-out.
type HistoryStore struct {
	mu        sync.Mutex
	histories map[string]*domain.SearchHistory
	now       func() time.Time
}

// NewHistoryStore creates an empty session history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		histories: make(map[string]*domain.SearchHistory),
		now:       time.Now,
	}
}

// Record adds a query to the user's history.
func (s *HistoryStore) Record(userID, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.histories[userID]
	if !ok {
		history = &domain.SearchHistory{}
		s.histories[userID] = history
	}
	history.Add(query, s.now())
}

// Entries returns the user's history, newest first.
func (s *HistoryStore) Entries(userID string) []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.histories[userID]
	if !ok {
		return nil
	}
	return history.Entries()
}

// Clear drops the user's history, called on sign-out.
func (s *HistoryStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, userID)
}
