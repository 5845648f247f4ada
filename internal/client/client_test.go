package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breeder-site-backend/internal/handlers"
	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/repository/memory"
	"breeder-site-backend/internal/schema"
	"breeder-site-backend/internal/services"
)

type uploads struct{}

func (uploads) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return "https://img.example.com/" + key, nil
}

type site struct {
	url      string
	requests *atomic.Int64
	admin    string
}

func newSite(t *testing.T) *site {
	t.Helper()
	store := memory.New()
	auth := services.NewAuthService(store.Users(), "client-test-secret", time.Hour)
	router := handlers.NewRouter(handlers.Services{
		Puppies:   services.NewPuppyService(store.Puppies()),
		Reviews:   services.NewReviewService(store.Reviews()),
		Inquiries: services.NewInquiryService(store.Inquiries(), store.Puppies()),
		Settings:  services.NewSettingService(store.Settings()),
		Auth:      auth,
		Uploads:   services.NewUploadService(uploads{}, 0),
		Store:     store,
	}, handlers.Options{Logger: zerolog.Nop()})

	requests := &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	token, err := auth.GenerateJWT(&models.User{ID: "admin-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	return &site{url: srv.URL, requests: requests, admin: token}
}

func maple() schema.PuppyInput {
	return schema.PuppyInput{
		Name:             "Maple",
		Breed:            "Goldendoodle",
		Sex:              "Female",
		Age:              "10 weeks",
		Temperament:      "Calm",
		Price:            2400,
		DepositAmount:    300,
		ShortDescription: "Gentle",
		Description:      "Loves naps",
		IsAvailable:      true,
	}
}

func newAdminClient(t *testing.T, s *site) *Client {
	t.Helper()
	cache, err := NewLRUCache(0)
	require.NoError(t, err)
	c := New(s.url, nil, cache)
	c.SetToken(s.admin)
	return c
}

func TestClient_PuppyLifecycle(t *testing.T) {
	s := newSite(t)
	c := newAdminClient(t, s)
	ctx := context.Background()

	created, err := c.CreatePuppy(ctx, maple())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Maple", created.Name)

	got, err := c.GetPuppy(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	price := 1999
	updated, err := c.UpdatePuppy(ctx, created.ID, schema.PuppyPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 1999, updated.Price)
	assert.Equal(t, "Goldendoodle", updated.Breed)
	assert.Equal(t, 300, updated.DepositAmount)

	got, err = c.GetPuppy(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1999, got.Price)

	require.NoError(t, c.DeletePuppy(ctx, created.ID))

	err = c.DeletePuppy(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Puppy not found", apiErr.Message)

	_, err = c.GetPuppy(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestClient_CachesUntilMutation(t *testing.T) {
	s := newSite(t)
	c := newAdminClient(t, s)
	ctx := context.Background()

	first, err := c.ListPuppies(ctx, models.PuppyFilter{})
	require.NoError(t, err)
	assert.Empty(t, first)
	before := s.requests.Load()

	_, err = c.ListPuppies(ctx, models.PuppyFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, s.requests.Load(), "second list must be served from cache")

	_, err = c.ListPuppies(ctx, models.PuppyFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Equal(t, before+1, s.requests.Load(), "different params are a different key")

	_, err = c.CreatePuppy(ctx, maple())
	require.NoError(t, err)

	list, err := c.ListPuppies(ctx, models.PuppyFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	available, err := c.ListPuppies(ctx, models.PuppyFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, available, 1)
}

func TestClient_ValidatesInputBeforeSending(t *testing.T) {
	s := newSite(t)
	c := newAdminClient(t, s)
	ctx := context.Background()
	before := s.requests.Load()

	in := maple()
	in.Price = -1
	_, err := c.CreatePuppy(ctx, in)
	verr, ok := schema.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "price", verr.Field)

	rating := 7
	_, err = c.UpdateReview(ctx, "any", schema.ReviewPatch{Rating: &rating})
	verr, ok = schema.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "rating", verr.Field)

	_, err = c.ListReviews(ctx, models.ReviewFilter{Limit: 500})
	verr, ok = schema.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "limit", verr.Field)

	assert.Equal(t, before, s.requests.Load())
}

func TestClient_Unauthorized(t *testing.T) {
	s := newSite(t)
	c := New(s.url, nil, nil)

	_, err := c.CreatePuppy(context.Background(), maple())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	_, err = c.ListInquiries(context.Background())
	assert.True(t, IsUnauthorized(err))
}

func TestClient_ReviewsSettingsInquiries(t *testing.T) {
	s := newSite(t)
	c := newAdminClient(t, s)
	ctx := context.Background()

	for _, name := range []string{"Ann", "Ben"} {
		_, err := c.CreateReview(ctx, schema.ReviewInput{ReviewerName: name, Rating: 5, TestimonialText: "Great", IsFeatured: name == "Ben"})
		require.NoError(t, err)
	}
	reviews, err := c.ListReviews(ctx, models.ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Ben", reviews[0].ReviewerName)

	featured, err := c.ListReviews(ctx, models.ReviewFilter{FeaturedOnly: true, Limit: 5})
	require.NoError(t, err)
	require.Len(t, featured, 1)

	featuredFlag := true
	_, err = c.UpdateReview(ctx, reviews[1].ID, schema.ReviewPatch{IsFeatured: &featuredFlag})
	require.NoError(t, err)
	featured, err = c.ListReviews(ctx, models.ReviewFilter{FeaturedOnly: true, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	require.NoError(t, c.DeleteReview(ctx, reviews[0].ID))
	assert.True(t, IsNotFound(c.DeleteReview(ctx, reviews[0].ID)))

	setting, err := c.UpsertSetting(ctx, schema.SettingInput{Key: "phone", Value: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", setting.Value)
	settings, err := c.ListSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SiteSetting{{Key: "phone", Value: "555-0100"}}, settings)

	one, err := c.GetSetting(ctx, "phone")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", one.Value)
	_, err = c.UpsertSetting(ctx, schema.SettingInput{Key: "phone", Value: "555-0199"})
	require.NoError(t, err)
	one, err = c.GetSetting(ctx, "phone")
	require.NoError(t, err)
	assert.Equal(t, "555-0199", one.Value, "upsert invalidates the cached setting")
	_, err = c.GetSetting(ctx, "fax")
	assert.True(t, IsNotFound(err))

	puppy, err := c.CreatePuppy(ctx, maple())
	require.NoError(t, err)

	missing := "no-such-puppy"
	_, err = c.CreateInquiry(ctx, schema.InquiryInput{
		FullName: "Sam", Address: "1 Main", Email: "sam@example.com", Phone: "555", Message: "Hi",
		SelectedPuppyID: &missing,
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "selectedPuppyId", apiErr.Field)

	inquiry, err := c.CreateInquiry(ctx, schema.InquiryInput{
		FullName: "Sam", Address: "1 Main", Email: "sam@example.com", Phone: "555", Message: "Hi",
		SelectedPuppyID: &puppy.ID,
	})
	require.NoError(t, err)

	inquiries, err := c.ListInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, inquiry.ID, inquiries[0].ID)

	require.NoError(t, c.DeletePuppy(ctx, puppy.ID))
	inquiries, err = c.ListInquiries(ctx)
	require.NoError(t, err)
	assert.Nil(t, inquiries[0].SelectedPuppyID)
}

func TestClient_Session(t *testing.T) {
	s := newSite(t)
	cache, err := NewLRUCache(8)
	require.NoError(t, err)
	c := New(s.url, nil, cache)
	ctx := context.Background()

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Nil(t, me)

	registered, err := c.Register(ctx, schema.RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, registered.Role)

	me, err = c.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, registered.ID, me.ID)

	require.NoError(t, c.Logout(ctx))
	me, err = c.Me(ctx)
	require.NoError(t, err)
	assert.Nil(t, me)

	_, err = c.Login(ctx, schema.LoginInput{Email: "ann@example.com", Password: "nope"})
	assert.True(t, IsUnauthorized(err))

	_, err = c.Register(ctx, schema.RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	_, err = c.Login(ctx, schema.LoginInput{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	me, err = c.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)
}

func TestClient_UploadImage(t *testing.T) {
	s := newSite(t)
	c := newAdminClient(t, s)

	res, err := c.UploadImage(context.Background(), "maple.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	assert.Contains(t, res.URL, "https://img.example.com/puppies/")

	_, err = c.UploadImage(context.Background(), "notes.txt", []byte("hello"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "file", apiErr.Field)
}

func TestClient_RejectsContractDrift(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		drifted bool
	}{
		{name: "unknown field", status: http.StatusOK, body: `{"id":"p1","legs":4}`, drifted: true},
		{name: "negative price", status: http.StatusOK, body: `{"id":"p1","price":-1,"depositAmount":0,"createdAt":"2026-01-01T00:00:00Z"}`, drifted: true},
		{name: "undeclared status", status: http.StatusTeapot, body: `{"message":"teapot"}`, drifted: true},
		{name: "declared not found", status: http.StatusNotFound, body: `{"message":"Puppy not found"}`},
		{name: "server failure", status: http.StatusInternalServerError, body: `{"message":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, nil, nil).GetPuppy(context.Background(), "p1")
			require.Error(t, err)

			var contractErr *ContractError
			var apiErr *APIError
			if tt.drifted {
				require.True(t, errors.As(err, &contractErr), err.Error())
				assert.Equal(t, "puppies.get", contractErr.Route)
				assert.Equal(t, tt.status, contractErr.Status)
			} else {
				require.True(t, errors.As(err, &apiErr), err.Error())
				assert.Equal(t, tt.status, apiErr.Status)
			}
		})
	}
}
