package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// businessQueryService is the concrete implementation of BusinessQueryService.
// It merges remotely persisted listings with the locally seeded set and
// optionally substitutes AI suggestions.
type businessQueryService struct {
	repo        BusinessRepository
	suggestions SuggestionClient
	seeded      []domain.Business
	history     *HistoryStore
	logger      *logrus.Logger
}

// NewBusinessQueryService creates the public search/read service. The seeded
// listings keep the directory usable when the repository is unreachable.
func NewBusinessQueryService(repo BusinessRepository, suggestions SuggestionClient, seeded []domain.Business, history *HistoryStore, logger *logrus.Logger) BusinessQueryService {
	return &businessQueryService{
		repo:        repo,
		suggestions: suggestions,
		seeded:      append([]domain.Business(nil), seeded...),
		history:     history,
		logger:      logger,
	}
}

// Search runs one search intent. The query always lands in the signed-in
// user's history first; AI results, when requested and non-empty, replace the
// working set entirely, otherwise the flow falls back to local filtering.
// Search never fails: a repository error degrades to the seeded set.
func (s *businessQueryService) Search(ctx context.Context, userID string, query SearchQuery) SearchResult {
	trimmed := strings.TrimSpace(query.Query)
	if userID != "" && trimmed != "" && s.history != nil {
		s.history.Record(userID, trimmed)
	}

	if query.UseAI && trimmed != "" && s.suggestions != nil {
		suggested := s.suggestions.Suggest(ctx, trimmed, query.Department)
		if len(suggested) > 0 {
			return SearchResult{Businesses: suggested, AISourced: true}
		}
	}

	return SearchResult{Businesses: s.filterLocal(ctx, trimmed, query.Department)}
}

// filterLocal applies the substring/department predicate over the combined
// seeded + persisted sets. Empty query and department return everything.
func (s *businessQueryService) filterLocal(ctx context.Context, query, department string) []domain.Business {
	combined := append([]domain.Business(nil), s.seeded...)

	persisted, err := s.repo.FindActive(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("No se pudieron cargar los negocios persistidos, filtrando solo el set local")
	} else {
		combined = append(combined, persisted...)
	}

	filtered := make([]domain.Business, 0, len(combined))
	for _, business := range combined {
		if !business.Matches(query) {
			continue
		}
		if department != "" && business.Department != department {
			continue
		}
		filtered = append(filtered, business)
	}
	return filtered
}

func (s *businessQueryService) Detail(ctx context.Context, id string) (*domain.Business, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *businessQueryService) OwnedBusinessID(ctx context.Context, ownerID string) (string, error) {
	return s.repo.FindIDByOwner(ctx, ownerID)
}
