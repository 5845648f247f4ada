// Package memory keeps every entity in process memory. It backs `serve --memory`
// and the HTTP tests, and returns the same sentinel errors as the PostgreSQL
// repositories.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/repository"
	"breeder-site-backend/internal/schema"
)

type entry[T any] struct {
	seq   uint64
	value T
}

// Store holds all tables behind one lock, so the puppy delete can clear
// inquiry references the way ON DELETE SET NULL does.
type Store struct {
	mu        sync.RWMutex
	seq       uint64
	puppies   map[string]entry[models.Puppy]
	reviews   map[string]entry[models.Review]
	inquiries map[string]entry[models.Inquiry]
	settings  map[string]string
	users     map[string]models.User
}

// New creates an empty store
func New() *Store {
	return &Store{
		puppies:   make(map[string]entry[models.Puppy]),
		reviews:   make(map[string]entry[models.Review]),
		inquiries: make(map[string]entry[models.Inquiry]),
		settings:  make(map[string]string),
		users:     make(map[string]models.User),
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

// newestFirst orders by created time descending; later inserts win ties
func newestFirst[T any](entries []entry[T], createdAt func(T) time.Time) []T {
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := createdAt(entries[i].value), createdAt(entries[j].value)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.value)
	}
	return out
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// clonePuppy detaches p from the caller so neither side can write through
// the other's pointers
func clonePuppy(p models.Puppy) models.Puppy {
	p.ImageURL = cloneString(p.ImageURL)
	return p
}

func cloneInquiry(i models.Inquiry) models.Inquiry {
	i.SelectedPuppyID = cloneString(i.SelectedPuppyID)
	return i
}

// Puppies returns the puppy repository view of the store
func (s *Store) Puppies() *PuppyRepository { return &PuppyRepository{s: s} }

// Reviews returns the review repository view of the store
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{s: s} }

// Inquiries returns the inquiry repository view of the store
func (s *Store) Inquiries() *InquiryRepository { return &InquiryRepository{s: s} }

// Settings returns the setting repository view of the store
func (s *Store) Settings() *SettingRepository { return &SettingRepository{s: s} }

// Users returns the user repository view of the store
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// PuppyRepository is the in-memory puppy table
type PuppyRepository struct{ s *Store }

func (r *PuppyRepository) List(ctx context.Context, filter models.PuppyFilter) ([]models.Puppy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]entry[models.Puppy], 0, len(r.s.puppies))
	for _, e := range r.s.puppies {
		if filter.AvailableOnly && !e.value.IsAvailable {
			continue
		}
		entries = append(entries, e)
	}
	out := newestFirst(entries, func(p models.Puppy) time.Time { return p.CreatedAt })
	for i := range out {
		out[i] = clonePuppy(out[i])
	}
	return out, nil
}

func (r *PuppyRepository) GetByID(ctx context.Context, id string) (*models.Puppy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.puppies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := clonePuppy(e.value)
	return &p, nil
}

func (r *PuppyRepository) Create(ctx context.Context, puppy *models.Puppy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.puppies[puppy.ID]; exists {
		return repository.ErrConflict
	}
	r.s.puppies[puppy.ID] = entry[models.Puppy]{seq: r.s.next(), value: clonePuppy(*puppy)}
	return nil
}

func (r *PuppyRepository) Update(ctx context.Context, id string, patch schema.PuppyPatch) (*models.Puppy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.puppies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&e.value)
	e.value = clonePuppy(e.value)
	r.s.puppies[id] = e
	p := clonePuppy(e.value)
	return &p, nil
}

func (r *PuppyRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.puppies[id]; !ok {
		return false, nil
	}
	delete(r.s.puppies, id)
	for key, e := range r.s.inquiries {
		if e.value.SelectedPuppyID != nil && *e.value.SelectedPuppyID == id {
			e.value.SelectedPuppyID = nil
			r.s.inquiries[key] = e
		}
	}
	return true, nil
}

// ReviewRepository is the in-memory review table
type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]entry[models.Review], 0, len(r.s.reviews))
	for _, e := range r.s.reviews {
		if filter.FeaturedOnly && !e.value.IsFeatured {
			continue
		}
		entries = append(entries, e)
	}
	out := newestFirst(entries, func(rv models.Review) time.Time { return rv.CreatedAt })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rv := e.value
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.reviews[review.ID]; exists {
		return repository.ErrConflict
	}
	r.s.reviews[review.ID] = entry[models.Review]{seq: r.s.next(), value: *review}
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, id string, patch schema.ReviewPatch) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&e.value)
	r.s.reviews[id] = e
	rv := e.value
	return &rv, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return false, nil
	}
	delete(r.s.reviews, id)
	return true, nil
}

// InquiryRepository is the in-memory inquiry table
type InquiryRepository struct{ s *Store }

func (r *InquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]entry[models.Inquiry], 0, len(r.s.inquiries))
	for _, e := range r.s.inquiries {
		entries = append(entries, e)
	}
	out := newestFirst(entries, func(i models.Inquiry) time.Time { return i.CreatedAt })
	for i := range out {
		out[i] = cloneInquiry(out[i])
	}
	return out, nil
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if inquiry.SelectedPuppyID != nil {
		if _, ok := r.s.puppies[*inquiry.SelectedPuppyID]; !ok {
			return repository.ErrInvalidReference
		}
	}
	if _, exists := r.s.inquiries[inquiry.ID]; exists {
		return repository.ErrConflict
	}
	r.s.inquiries[inquiry.ID] = entry[models.Inquiry]{seq: r.s.next(), value: cloneInquiry(*inquiry)}
	return nil
}

// SettingRepository is the in-memory settings table
type SettingRepository struct{ s *Store }

func (r *SettingRepository) List(ctx context.Context) ([]models.SiteSetting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.SiteSetting, 0, len(r.s.settings))
	for k, v := range r.s.settings {
		out = append(out, models.SiteSetting{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.settings[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.SiteSetting{Key: key, Value: v}, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (*models.SiteSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.settings[key] = value
	return &models.SiteSetting{Key: key, Value: value}, nil
}

// UserRepository is the in-memory users table
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrConflict
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
