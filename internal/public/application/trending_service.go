package application

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// TrendingService serves the home carousel: the active listings ordered by
// rating, refreshed on a schedule instead of per request.
type TrendingService struct {
	repo   BusinessRepository
	seeded []domain.Business
	logger *logrus.Logger
	limit  int

	mu     sync.RWMutex
	cached []domain.Business
}

// NewTrendingService creates the carousel feed with an empty cache; callers
// run Refresh once at startup and then on a schedule.
func NewTrendingService(repo BusinessRepository, seeded []domain.Business, limit int, logger *logrus.Logger) *TrendingService {
	if limit <= 0 {
		limit = 10
	}
	return &TrendingService{repo: repo, seeded: append([]domain.Business(nil), seeded...), limit: limit, logger: logger}
}

// Refresh rebuilds the cached ranking. A repository failure keeps the
// previous cache and logs the problem.
func (s *TrendingService) Refresh(ctx context.Context) {
	persisted, err := s.repo.FindActive(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("No se pudo refrescar el ranking de tendencias")
		return
	}

	combined := append(append([]domain.Business(nil), s.seeded...), persisted...)
	domain.SortByRating(combined)
	if len(combined) > s.limit {
		combined = combined[:s.limit]
	}

	s.mu.Lock()
	s.cached = combined
	s.mu.Unlock()
}

// Top returns the cached ranking, best-rated first.
func (s *TrendingService) Top() []domain.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Business(nil), s.cached...)
}
