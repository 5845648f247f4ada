package services

import (
	"context"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
)

// SettingService exposes the site key/value settings
type SettingService struct {
	store SettingStore
}

// NewSettingService creates a new setting service
func NewSettingService(store SettingStore) *SettingService {
	return &SettingService{store: store}
}

func (s *SettingService) List(ctx context.Context) ([]models.SiteSetting, error) {
	return s.store.List(ctx)
}

// Get returns the setting stored under key
func (s *SettingService) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	return s.store.Get(ctx, key)
}

// Upsert writes a setting, overwriting an existing value for the key
func (s *SettingService) Upsert(ctx context.Context, in schema.SettingInput) (*models.SiteSetting, error) {
	return s.store.Upsert(ctx, in.Key, in.Value)
}
