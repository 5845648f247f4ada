package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/repository"
	"breeder-site-backend/internal/schema"
)

// InquiryService handles lead capture
type InquiryService struct {
	store   InquiryStore
	puppies PuppyStore
	now     func() time.Time
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(store InquiryStore, puppies PuppyStore) *InquiryService {
	return &InquiryService{store: store, puppies: puppies, now: time.Now}
}

// List returns inquiries newest first
func (s *InquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	return s.store.List(ctx)
}

// Create stores an inquiry. A selectedPuppyId that names no puppy is rejected
// with a validation error on that field.
func (s *InquiryService) Create(ctx context.Context, in schema.InquiryInput) (*models.Inquiry, error) {
	if in.SelectedPuppyID != nil {
		if _, err := s.puppies.GetByID(ctx, *in.SelectedPuppyID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, unknownPuppy()
			}
			return nil, fmt.Errorf("failed to check selected puppy: %w", err)
		}
	}

	id, createdAt := stamp(s.now)
	inquiry := &models.Inquiry{
		ID:              id,
		FullName:        in.FullName,
		Address:         in.Address,
		Email:           in.Email,
		Phone:           in.Phone,
		Message:         in.Message,
		SelectedPuppyID: in.SelectedPuppyID,
		CreatedAt:       createdAt,
	}
	if err := s.store.Create(ctx, inquiry); err != nil {
		// the puppy was deleted between the check and the insert
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, unknownPuppy()
		}
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return inquiry, nil
}

func unknownPuppy() error {
	return &schema.ValidationError{Field: "selectedPuppyId", Message: "Puppy not found"}
}
