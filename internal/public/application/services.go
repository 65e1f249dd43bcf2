package application

import (
	"context"
	"errors"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// BusinessRepository abstracts listing persistence.
// Absence is reported through ErrNotFound, not through nil records.
type BusinessRepository interface {
	FindActive(ctx context.Context) ([]domain.Business, error)
	FindByID(ctx context.Context, id string) (*domain.Business, error)
	FindIDByOwner(ctx context.Context, ownerID string) (string, error)
	Insert(ctx context.Context, business *domain.Business) (string, error)
	Update(ctx context.Context, business *domain.Business) error
}

// SuggestionClient produces AI-synthesized listings for a free-text query.
// Implementations fail soft: transport or parsing problems yield an empty
// slice, never an error the search flow has to handle.
type SuggestionClient interface {
	Suggest(ctx context.Context, query, department string) []domain.Business
}

// ObjectStorage uploads a gallery image and returns its public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ForwardQuery is a structured geocoding request.
type ForwardQuery struct {
	Street     string
	City       string
	Department string
}

// Geocoder resolves a structured address to a single best-match coordinate.
// A query with no match returns ErrNotFound.
type Geocoder interface {
	Forward(ctx context.Context, query ForwardQuery) (*domain.Coordinates, error)
}

// ErrNotFound marks absent records and failed geocoding matches.
var ErrNotFound = errors.New("not found")

// ErrNotOwner rejects a mutation attempted by a user who does not own the
// targeted listing.
var ErrNotOwner = errors.New("el negocio pertenece a otra cuenta")

// SearchQuery captures one search intent from the interface.
type SearchQuery struct {
	Query      string
	Department string
	UseAI      bool
}

// SearchResult is a committed result set plus its provenance.
type SearchResult struct {
	Businesses []domain.Business
	AISourced  bool
}

// BusinessQueryService describes public read use-cases.
type BusinessQueryService interface {
	Search(ctx context.Context, userID string, query SearchQuery) SearchResult
	Detail(ctx context.Context, id string) (*domain.Business, error)
	OwnedBusinessID(ctx context.Context, ownerID string) (string, error)
}
