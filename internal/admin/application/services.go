package application

import (
	"context"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// ListingRepository exposes moderation operations on listings.
type ListingRepository interface {
	FindByStatus(ctx context.Context, status string) ([]domain.Business, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Business, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.Business, error)
}

// ModerationService describes admin moderation use-cases: reviewing newly
// registered listings and granting the verified badge.
type ModerationService interface {
	Pending(ctx context.Context) ([]domain.Business, error)
	Approve(ctx context.Context, id string) (*domain.Business, error)
	Suspend(ctx context.Context, id string) (*domain.Business, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.Business, error)
}
