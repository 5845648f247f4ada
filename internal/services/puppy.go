package services

import (
	"context"
	"fmt"
	"time"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"

	"github.com/google/uuid"
)

// stamp returns a fresh id and a creation time that survives a
// round trip through a PostgreSQL timestamptz column unchanged
func stamp(now func() time.Time) (string, time.Time) {
	return uuid.New().String(), now().UTC().Truncate(time.Microsecond)
}

// PuppyService handles puppy catalog business logic
type PuppyService struct {
	store PuppyStore
	now   func() time.Time
}

// NewPuppyService creates a new puppy service
func NewPuppyService(store PuppyStore) *PuppyService {
	return &PuppyService{store: store, now: time.Now}
}

// List returns puppies newest first
func (s *PuppyService) List(ctx context.Context, filter models.PuppyFilter) ([]models.Puppy, error) {
	return s.store.List(ctx, filter)
}

// Get returns one puppy or ErrNotFound
func (s *PuppyService) Get(ctx context.Context, id string) (*models.Puppy, error) {
	return s.store.GetByID(ctx, id)
}

// Create assigns an id and creation time and stores the puppy
func (s *PuppyService) Create(ctx context.Context, in schema.PuppyInput) (*models.Puppy, error) {
	id, createdAt := stamp(s.now)
	puppy := &models.Puppy{
		ID:               id,
		Name:             in.Name,
		Breed:            in.Breed,
		Sex:              in.Sex,
		Age:              in.Age,
		Temperament:      in.Temperament,
		Price:            in.Price,
		DepositAmount:    in.DepositAmount,
		ImageURL:         in.ImageURL,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		IsAvailable:      in.IsAvailable,
		CreatedAt:        createdAt,
	}
	if err := s.store.Create(ctx, puppy); err != nil {
		return nil, fmt.Errorf("failed to create puppy: %w", err)
	}
	return puppy, nil
}

// Update applies a partial update. Identity and creation time are never touched.
func (s *PuppyService) Update(ctx context.Context, id string, patch schema.PuppyPatch) (*models.Puppy, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete removes a puppy, returning ErrNotFound when it does not exist
func (s *PuppyService) Delete(ctx context.Context, id string) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
