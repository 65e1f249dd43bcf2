package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

type fakeRepo struct {
	active    []domain.Business
	activeErr error
	byID      map[string]domain.Business
	ownerIDs  map[string]string

	inserted  []domain.Business
	updated   []domain.Business
	insertErr error
	updateErr error
}

func (r *fakeRepo) FindActive(context.Context) ([]domain.Business, error) {
	if r.activeErr != nil {
		return nil, r.activeErr
	}
	return append([]domain.Business(nil), r.active...), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*domain.Business, error) {
	business, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &business, nil
}

func (r *fakeRepo) FindIDByOwner(_ context.Context, ownerID string) (string, error) {
	id, ok := r.ownerIDs[ownerID]
	if !ok {
		return "", ErrNotFound
	}
	return id, nil
}

func (r *fakeRepo) Insert(_ context.Context, business *domain.Business) (string, error) {
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.inserted = append(r.inserted, *business)
	return "nuevo-id", nil
}

func (r *fakeRepo) Update(_ context.Context, business *domain.Business) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, *business)
	return nil
}

type fakeSuggestions struct {
	results []domain.Business
	calls   int
}

func (s *fakeSuggestions) Suggest(context.Context, string, string) []domain.Business {
	s.calls++
	return s.results
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func sampleListings() ([]domain.Business, []domain.Business) {
	seeded := []domain.Business{
		{ID: "s1", Name: "Lido Bar", Category: "Gastronomía", Department: "Asunción (Distrito Capital)", Tags: []string{"tradicional"}},
	}
	persisted := []domain.Business{
		{ID: "p1", Name: "Farmacia Catedral", Category: "Salud y Farmacias", Department: "Central", Tags: []string{"24 horas"}},
		{ID: "p2", Name: "Hotel Guaraní", Category: "Hotelería y Turismo", Department: "Asunción (Distrito Capital)", Tags: []string{"piscina"}},
	}
	return seeded, persisted
}

func TestSearchEmptyQueryReturnsFullCombinedSet(t *testing.T) {
	seeded, persisted := sampleListings()
	repo := &fakeRepo{active: persisted}
	service := NewBusinessQueryService(repo, &fakeSuggestions{}, seeded, NewHistoryStore(), testLogger())

	result := service.Search(context.Background(), "", SearchQuery{})
	require.Len(t, result.Businesses, 3)
	assert.False(t, result.AISourced)
}

func TestSearchSubstringPredicate(t *testing.T) {
	seeded, persisted := sampleListings()
	repo := &fakeRepo{active: persisted}
	service := NewBusinessQueryService(repo, &fakeSuggestions{}, seeded, NewHistoryStore(), testLogger())

	result := service.Search(context.Background(), "", SearchQuery{Query: "FARMA"})
	require.Len(t, result.Businesses, 1)
	assert.Equal(t, "Farmacia Catedral", result.Businesses[0].Name)

	// Tag match.
	result = service.Search(context.Background(), "", SearchQuery{Query: "piscina"})
	require.Len(t, result.Businesses, 1)
	assert.Equal(t, "Hotel Guaraní", result.Businesses[0].Name)
}

func TestSearchDepartmentIsExactMatch(t *testing.T) {
	seeded, persisted := sampleListings()
	repo := &fakeRepo{active: persisted}
	service := NewBusinessQueryService(repo, &fakeSuggestions{}, seeded, NewHistoryStore(), testLogger())

	result := service.Search(context.Background(), "", SearchQuery{Department: "Central"})
	require.Len(t, result.Businesses, 1)
	assert.Equal(t, "p1", result.Businesses[0].ID)

	// Partial department strings never match.
	result = service.Search(context.Background(), "", SearchQuery{Department: "Centr"})
	assert.Empty(t, result.Businesses)
}

func TestSearchAIResultsReplaceWorkingSet(t *testing.T) {
	seeded, persisted := sampleListings()
	repo := &fakeRepo{active: persisted}
	suggestions := &fakeSuggestions{results: []domain.Business{
		{ID: "ai-1", Name: "Taller Don Ramón"},
		{ID: "ai-2", Name: "Taller Mecánico Sur"},
		{ID: "ai-3", Name: "Mecánica Rápida CDE"},
	}}
	service := NewBusinessQueryService(repo, suggestions, seeded, NewHistoryStore(), testLogger())

	result := service.Search(context.Background(), "", SearchQuery{Query: "mecánico", UseAI: true})
	require.Len(t, result.Businesses, 3)
	assert.True(t, result.AISourced)
	assert.Equal(t, "ai-1", result.Businesses[0].ID)
}

func TestSearchEmptyAIResultFallsBackToLocalFilter(t *testing.T) {
	seeded, persisted := sampleListings()
	repo := &fakeRepo{active: persisted}
	suggestions := &fakeSuggestions{}
	service := NewBusinessQueryService(repo, suggestions, seeded, NewHistoryStore(), testLogger())

	result := service.Search(context.Background(), "", SearchQuery{Query: "hotel", UseAI: true})
	assert.Equal(t, 1, suggestions.calls)
	require.Len(t, result.Businesses, 1)
	assert.False(t, result.AISourced)
	assert.Equal(t, "Hotel Guaraní", result.Businesses[0].Name)
}

func TestSearchAIFlagIgnoredWithoutQuery(t *testing.T) {
	seeded, persisted := sampleListings()
	repo := &fakeRepo{active: persisted}
	suggestions := &fakeSuggestions{results: []domain.Business{{ID: "ai-1"}}}
	service := NewBusinessQueryService(repo, suggestions, seeded, NewHistoryStore(), testLogger())

	result := service.Search(context.Background(), "", SearchQuery{UseAI: true})
	assert.Zero(t, suggestions.calls)
	assert.Len(t, result.Businesses, 3)
}

func TestSearchRepositoryFailureDegradesToSeededSet(t *testing.T) {
	seeded, _ := sampleListings()
	repo := &fakeRepo{activeErr: errors.New("mongo down")}
	service := NewBusinessQueryService(repo, &fakeSuggestions{}, seeded, NewHistoryStore(), testLogger())

	result := service.Search(context.Background(), "", SearchQuery{})
	require.Len(t, result.Businesses, 1)
	assert.Equal(t, "s1", result.Businesses[0].ID)
}

func TestSearchRecordsHistoryOnlyForSignedInUsers(t *testing.T) {
	seeded, persisted := sampleListings()
	repo := &fakeRepo{active: persisted}
	history := NewHistoryStore()
	service := NewBusinessQueryService(repo, &fakeSuggestions{}, seeded, history, testLogger())

	service.Search(context.Background(), "", SearchQuery{Query: "farmacia"})
	assert.Empty(t, history.Entries("user-1"))

	service.Search(context.Background(), "user-1", SearchQuery{Query: "Farmacias"})
	service.Search(context.Background(), "user-1", SearchQuery{Query: "farmacias"})
	entries := history.Entries("user-1")
	require.Len(t, entries, 1)
	assert.Equal(t, "farmacias", entries[0].Query)

	// Empty queries never land in history.
	service.Search(context.Background(), "user-1", SearchQuery{Department: "Central"})
	assert.Len(t, history.Entries("user-1"), 1)
}

func TestHistoryStoreClearOnSignOut(t *testing.T) {
	history := NewHistoryStore()
	history.Record("user-1", "farmacias")
	require.NotEmpty(t, history.Entries("user-1"))

	history.Clear("user-1")
	assert.Empty(t, history.Entries("user-1"))
}
