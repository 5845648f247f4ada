//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
)

func setupTestDB(t *testing.T) *DB {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("breeder"),
		postgres.WithUsername("breeder"),
		postgres.WithPassword("breeder"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, Migrate(ctx, db.X))
	// second run must be a no-op
	require.NoError(t, Migrate(ctx, db.X))
	return db
}

func TestPostgres_PuppyLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	puppies := NewPuppyRepository(db.X)
	inquiries := NewInquiryRepository(db.X)

	now := time.Now().UTC().Truncate(time.Microsecond)
	maple := &models.Puppy{
		ID: "p1", Name: "Maple", Breed: "Goldendoodle", Sex: "Female", Age: "10 weeks",
		Temperament: "Calm", Price: 2400, DepositAmount: 300, ShortDescription: "s",
		Description: "d", IsAvailable: true, CreatedAt: now.Add(-time.Minute),
	}
	otis := &models.Puppy{
		ID: "p2", Name: "Otis", Breed: "Poodle", Sex: "Male", Age: "8 weeks",
		Temperament: "Playful", Price: 1800, ShortDescription: "s",
		Description: "d", IsAvailable: false, CreatedAt: now,
	}
	require.NoError(t, puppies.Create(ctx, maple))
	require.NoError(t, puppies.Create(ctx, otis))

	got, err := puppies.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(maple.CreatedAt))
	assert.Equal(t, maple.Price, got.Price)

	all, err := puppies.List(ctx, models.PuppyFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p2", all[0].ID)

	available, err := puppies.List(ctx, models.PuppyFilter{AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "p1", available[0].ID)

	url := "https://cdn.example.com/otis.jpg"
	updated, err := puppies.Update(ctx, "p2", schema.PuppyPatch{ImageURL: schema.NullableString{Set: true, Value: &url}})
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, url, *updated.ImageURL)

	puppyID := "p1"
	require.NoError(t, inquiries.Create(ctx, &models.Inquiry{
		ID: "i1", FullName: "Sam", Address: "1 Main", Email: "sam@example.com",
		Phone: "555", Message: "hi", SelectedPuppyID: &puppyID, CreatedAt: now,
	}))

	ok, err := puppies.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := inquiries.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].SelectedPuppyID)

	ok, err = puppies.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgres_SettingsAndUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	settings := NewSettingRepository(db.X)
	users := NewUserRepository(db.X)

	_, err := settings.Upsert(ctx, "hero_title", "Welcome")
	require.NoError(t, err)
	s, err := settings.Upsert(ctx, "hero_title", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", s.Value)

	list, err := settings.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	u := &models.User{ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, u))
	u.ID = "u2"
	assert.ErrorIs(t, users.Create(ctx, u), ErrConflict)
}
