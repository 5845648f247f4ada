package services

import (
	"context"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
)

// PuppyStore persists puppies
type PuppyStore interface {
	List(ctx context.Context, filter models.PuppyFilter) ([]models.Puppy, error)
	GetByID(ctx context.Context, id string) (*models.Puppy, error)
	Create(ctx context.Context, puppy *models.Puppy) error
	Update(ctx context.Context, id string, patch schema.PuppyPatch) (*models.Puppy, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ReviewStore persists reviews
type ReviewStore interface {
	List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id string, patch schema.ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// InquiryStore persists inquiries
type InquiryStore interface {
	List(ctx context.Context) ([]models.Inquiry, error)
	Create(ctx context.Context, inquiry *models.Inquiry) error
}

// SettingStore persists site settings
type SettingStore interface {
	List(ctx context.Context) ([]models.SiteSetting, error)
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	Upsert(ctx context.Context, key, value string) (*models.SiteSetting, error)
}

// UserStore persists users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
