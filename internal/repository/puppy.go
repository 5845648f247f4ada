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

const puppyColumns = "id, name, breed, sex, age, temperament, price, deposit_amount, image_url, short_description, description, is_available, created_at"

// PuppyRepository handles database operations for puppies
type PuppyRepository struct {
	db *sqlx.DB
}

// NewPuppyRepository creates a new puppy repository
func NewPuppyRepository(db *sqlx.DB) *PuppyRepository {
	return &PuppyRepository{db: db}
}

// List returns puppies newest first
func (r *PuppyRepository) List(ctx context.Context, filter models.PuppyFilter) ([]models.Puppy, error) {
	query := "SELECT " + puppyColumns + " FROM puppies"
	if filter.AvailableOnly {
		query += " WHERE is_available = TRUE"
	}
	query += " ORDER BY created_at DESC"

	puppies := []models.Puppy{}
	if err := r.db.SelectContext(ctx, &puppies, query); err != nil {
		return nil, fmt.Errorf("failed to list puppies: %w", err)
	}
	return puppies, nil
}

// GetByID retrieves a puppy by ID
func (r *PuppyRepository) GetByID(ctx context.Context, id string) (*models.Puppy, error) {
	var puppy models.Puppy
	err := r.db.GetContext(ctx, &puppy, "SELECT "+puppyColumns+" FROM puppies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get puppy: %w", err)
	}
	return &puppy, nil
}

// Create inserts a puppy whose id and created_at are already assigned
func (r *PuppyRepository) Create(ctx context.Context, puppy *models.Puppy) error {
	query := `
		INSERT INTO puppies (id, name, breed, sex, age, temperament, price, deposit_amount,
			image_url, short_description, description, is_available, created_at)
		VALUES (:id, :name, :breed, :sex, :age, :temperament, :price, :deposit_amount,
			:image_url, :short_description, :description, :is_available, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, puppy); err != nil {
		return fmt.Errorf("failed to create puppy: %w", err)
	}
	return nil
}

// Update writes the fields present in patch and returns the stored row
func (r *PuppyRepository) Update(ctx context.Context, id string, patch schema.PuppyPatch) (*models.Puppy, error) {
	var a assignments
	if patch.Name != nil {
		a.set("name", *patch.Name)
	}
	if patch.Breed != nil {
		a.set("breed", *patch.Breed)
	}
	if patch.Sex != nil {
		a.set("sex", *patch.Sex)
	}
	if patch.Age != nil {
		a.set("age", *patch.Age)
	}
	if patch.Temperament != nil {
		a.set("temperament", *patch.Temperament)
	}
	if patch.Price != nil {
		a.set("price", *patch.Price)
	}
	if patch.DepositAmount != nil {
		a.set("deposit_amount", *patch.DepositAmount)
	}
	if patch.ImageURL.Set {
		a.set("image_url", patch.ImageURL.Value)
	}
	if patch.ShortDescription != nil {
		a.set("short_description", *patch.ShortDescription)
	}
	if patch.Description != nil {
		a.set("description", *patch.Description)
	}
	if patch.IsAvailable != nil {
		a.set("is_available", *patch.IsAvailable)
	}
	if a.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := a.query("puppies", id, puppyColumns)
	var puppy models.Puppy
	if err := r.db.GetContext(ctx, &puppy, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update puppy: %w", err)
	}
	return &puppy, nil
}

// Delete removes a puppy and reports whether a row existed
func (r *PuppyRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM puppies WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete puppy: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete puppy: %w", err)
	}
	return n > 0, nil
}
