package services

import (
	"context"
	"fmt"
	"time"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
)

// ReviewService handles testimonial business logic
type ReviewService struct {
	store ReviewStore
	now   func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(store ReviewStore) *ReviewService {
	return &ReviewService{store: store, now: time.Now}
}

// List returns reviews newest first
func (s *ReviewService) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	return s.store.List(ctx, filter)
}

// Create assigns an id and creation time and stores the review
func (s *ReviewService) Create(ctx context.Context, in schema.ReviewInput) (*models.Review, error) {
	id, createdAt := stamp(s.now)
	review := &models.Review{
		ID:              id,
		ReviewerName:    in.ReviewerName,
		Rating:          in.Rating,
		TestimonialText: in.TestimonialText,
		IsFeatured:      in.IsFeatured,
		CreatedAt:       createdAt,
	}
	if err := s.store.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// Update applies a partial update to a review
func (s *ReviewService) Update(ctx context.Context, id string, patch schema.ReviewPatch) (*models.Review, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete removes a review, returning ErrNotFound when it does not exist
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
