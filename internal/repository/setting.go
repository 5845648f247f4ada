package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"breeder-site-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// SettingRepository handles database operations for site settings
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// List returns every setting ordered by key
func (r *SettingRepository) List(ctx context.Context) ([]models.SiteSetting, error) {
	settings := []models.SiteSetting{}
	if err := r.db.SelectContext(ctx, &settings, "SELECT key, value FROM site_settings ORDER BY key"); err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Get retrieves one setting by key
func (r *SettingRepository) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	err := r.db.GetContext(ctx, &setting, "SELECT key, value FROM site_settings WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &setting, nil
}

// Upsert inserts the key or overwrites its value
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (*models.SiteSetting, error) {
	query := `
		INSERT INTO site_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		RETURNING key, value
	`
	var setting models.SiteSetting
	if err := r.db.GetContext(ctx, &setting, query, key, value); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return &setting, nil
}
