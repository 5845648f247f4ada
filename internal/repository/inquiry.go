package repository

import (
	"context"
	"fmt"

	"breeder-site-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// InquiryRepository handles database operations for inquiries
type InquiryRepository struct {
	db *sqlx.DB
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// List returns inquiries newest first
func (r *InquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	query := `
		SELECT id, full_name, address, email, phone, message, selected_puppy_id, created_at
		FROM inquiries
		ORDER BY created_at DESC
	`
	inquiries := []models.Inquiry{}
	if err := r.db.SelectContext(ctx, &inquiries, query); err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, nil
}

// Create inserts an inquiry. A selected puppy that no longer exists yields ErrInvalidReference.
func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	query := `
		INSERT INTO inquiries (id, full_name, address, email, phone, message, selected_puppy_id, created_at)
		VALUES (:id, :full_name, :address, :email, :phone, :message, :selected_puppy_id, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, inquiry); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}
