package models

import "time"

// Role values accepted for User.Role
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Puppy represents a puppy listing in the catalog
type Puppy struct {
	ID               string    `json:"id" db:"id" validate:"required"`
	Name             string    `json:"name" db:"name"`
	Breed            string    `json:"breed" db:"breed"`
	Sex              string    `json:"sex" db:"sex"`
	Age              string    `json:"age" db:"age"`
	Temperament      string    `json:"temperament" db:"temperament"`
	Price            int       `json:"price" db:"price" validate:"min=0"`
	DepositAmount    int       `json:"depositAmount" db:"deposit_amount" validate:"min=0"`
	ImageURL         *string   `json:"imageUrl" db:"image_url"`
	ShortDescription string    `json:"shortDescription" db:"short_description"`
	Description      string    `json:"description" db:"description"`
	IsAvailable      bool      `json:"isAvailable" db:"is_available"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at" validate:"required"`
}

// PuppyFilter narrows a puppy listing
type PuppyFilter struct {
	AvailableOnly bool
}

// Review represents a customer testimonial
type Review struct {
	ID              string    `json:"id" db:"id" validate:"required"`
	ReviewerName    string    `json:"reviewerName" db:"reviewer_name"`
	Rating          int       `json:"rating" db:"rating" validate:"min=1,max=5"`
	TestimonialText string    `json:"testimonialText" db:"testimonial_text"`
	IsFeatured      bool      `json:"isFeatured" db:"is_featured"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" validate:"required"`
}

// ReviewFilter narrows a review listing. Limit <= 0 means no limit.
type ReviewFilter struct {
	FeaturedOnly bool
	Limit        int
}

// Inquiry represents a contact / lead submission
type Inquiry struct {
	ID              string    `json:"id" db:"id" validate:"required"`
	FullName        string    `json:"fullName" db:"full_name"`
	Address         string    `json:"address" db:"address"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	Message         string    `json:"message" db:"message"`
	SelectedPuppyID *string   `json:"selectedPuppyId" db:"selected_puppy_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" validate:"required"`
}

// User represents an operator account. PasswordHash is never serialized.
type User struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
}

// UserSummary is the client-facing view of a user
type UserSummary struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"oneof=admin user"`
}

// Summary strips the credential from a user
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SiteSetting is a key/value configuration row
type SiteSetting struct {
	Key   string `json:"key" db:"key" validate:"required"`
	Value string `json:"value" db:"value"`
}

// UploadResult is returned after an image is stored
type UploadResult struct {
	URL string `json:"url" validate:"required"`
}

// LiveEvent is pushed to connected admin dashboards
type LiveEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Data      any    `json:"data,omitempty"`
}
