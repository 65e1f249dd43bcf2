package application

import (
	"context"

	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// moderationService implements ModerationService.
type moderationService struct {
	repo ListingRepository
}

func NewModerationService(repo ListingRepository) ModerationService {
	return &moderationService{repo: repo}
}

func (s *moderationService) Pending(ctx context.Context) ([]domain.Business, error) {
	return s.repo.FindByStatus(ctx, domain.StatusReview)
}

func (s *moderationService) Approve(ctx context.Context, id string) (*domain.Business, error) {
	return s.repo.SetStatus(ctx, id, domain.StatusActive)
}

func (s *moderationService) Suspend(ctx context.Context, id string) (*domain.Business, error) {
	return s.repo.SetStatus(ctx, id, domain.StatusReview)
}

func (s *moderationService) SetVerified(ctx context.Context, id string, verified bool) (*domain.Business, error) {
	return s.repo.SetVerified(ctx, id, verified)
}
