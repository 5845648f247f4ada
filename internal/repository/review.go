package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"

	"github.com/jmoiron/sqlx"
)

const reviewColumns = "id, reviewer_name, rating, testimonial_text, is_featured, created_at"

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// List returns reviews newest first
func (r *ReviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	query := "SELECT " + reviewColumns + " FROM reviews"
	if filter.FeaturedOnly {
		query += " WHERE is_featured = TRUE"
	}
	query += " ORDER BY created_at DESC"

	var args []any
	if filter.Limit > 0 {
		query += " LIMIT $1"
		args = append(args, filter.Limit)
	}

	reviews := []models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review, "SELECT "+reviewColumns+" FROM reviews WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// Create inserts a review
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (id, reviewer_name, rating, testimonial_text, is_featured, created_at)
		VALUES (:id, :reviewer_name, :rating, :testimonial_text, :is_featured, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update writes the fields present in patch and returns the stored row
func (r *ReviewRepository) Update(ctx context.Context, id string, patch schema.ReviewPatch) (*models.Review, error) {
	var a assignments
	if patch.ReviewerName != nil {
		a.set("reviewer_name", *patch.ReviewerName)
	}
	if patch.Rating != nil {
		a.set("rating", *patch.Rating)
	}
	if patch.TestimonialText != nil {
		a.set("testimonial_text", *patch.TestimonialText)
	}
	if patch.IsFeatured != nil {
		a.set("is_featured", *patch.IsFeatured)
	}
	if a.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := a.query("reviews", id, reviewColumns)
	var review models.Review
	if err := r.db.GetContext(ctx, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, nil
}

// Delete removes a review and reports whether a row existed
func (r *ReviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return n > 0, nil
}
