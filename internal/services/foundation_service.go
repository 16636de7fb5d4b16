package services

import (
	"context"
	"fmt"

	"grantboard/internal/models"
	"grantboard/internal/repositories"
)

// DefaultDeadlineWindowDays is the deadline window applied when the
// caller does not name one.
const DefaultDeadlineWindowDays = 90

type FoundationService struct {
	foundationRepo *repositories.FoundationRepository
}

func NewFoundationService(foundationRepo *repositories.FoundationRepository) *FoundationService {
	return &FoundationService{foundationRepo: foundationRepo}
}

func (s *FoundationService) List(ctx context.Context, filters models.FoundationFilters) ([]models.Foundation, error) {
	if filters.Status != "" && filters.Status != "all" && !models.FoundationStatus(filters.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filters.Status)
	}

	foundations, err := s.foundationRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list foundations: %w", err)
	}
	return foundations, nil
}

func (s *FoundationService) Get(ctx context.Context, id int64) (*models.Foundation, error) {
	foundation, err := s.foundationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundation: %w", err)
	}
	if foundation == nil {
		return nil, ErrFoundationNotFound
	}
	return foundation, nil
}

// Update applies a partial update and returns the refreshed record. An
// empty patch affects zero rows and is reported as not found, matching
// the boundary contract for zero-row updates.
func (s *FoundationService) Update(ctx context.Context, id int64, patch models.FoundationUpdate) (*models.Foundation, error) {
	affected, err := s.foundationRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	if affected == 0 {
		return nil, ErrFoundationNotFound
	}

	return s.Get(ctx, id)
}

func (s *FoundationService) Stats(ctx context.Context) (*models.FoundationStats, error) {
	stats, err := s.foundationRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// UpcomingDeadlines lists foundations with a deadline inside the window.
// A nil window applies the 90-day default; negative windows are
// rejected.
func (s *FoundationService) UpcomingDeadlines(ctx context.Context, windowDays *int) ([]models.Foundation, error) {
	days := DefaultDeadlineWindowDays
	if windowDays != nil {
		if *windowDays < 0 {
			return nil, fmt.Errorf("%w: window must be non-negative, got %d", ErrInvalidInput, *windowDays)
		}
		days = *windowDays
	}

	foundations, err := s.foundationRepo.UpcomingDeadlines(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming deadlines: %w", err)
	}
	return foundations, nil
}
