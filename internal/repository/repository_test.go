package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
)

func setupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func puppyRows() *sqlmock.Rows {
	return sqlmock.NewRows(strings.Split(puppyColumns, ", "))
}

func addPuppy(rows *sqlmock.Rows, id, name string, price int, available bool) *sqlmock.Rows {
	return rows.AddRow(id, name, "Goldendoodle", "Female", "10 weeks", "Calm", price, 300,
		nil, "short", "long", available, created)
}

func TestPuppyRepository_List(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + puppyColumns + " FROM puppies ORDER BY created_at DESC")).
		WillReturnRows(addPuppy(addPuppy(puppyRows(), "p2", "Otis", 2000, false), "p1", "Maple", 2400, true))

	puppies, err := repo.List(context.Background(), models.PuppyFilter{})
	require.NoError(t, err)
	require.Len(t, puppies, 2)
	assert.Equal(t, "p2", puppies[0].ID)
	assert.Nil(t, puppies[1].ImageURL)
	assert.Equal(t, 300, puppies[1].DepositAmount)
}

func TestPuppyRepository_ListAvailableOnly(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + puppyColumns + " FROM puppies WHERE is_available = TRUE ORDER BY created_at DESC")).
		WillReturnRows(puppyRows())

	puppies, err := repo.List(context.Background(), models.PuppyFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.NotNil(t, puppies)
	assert.Empty(t, puppies)
}

func TestPuppyRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + puppyColumns + " FROM puppies WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(puppyRows())

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPuppyRepository_Create(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	img := "https://cdn.example.com/maple.jpg"
	p := &models.Puppy{
		ID: "p1", Name: "Maple", Breed: "Goldendoodle", Sex: "Female", Age: "10 weeks",
		Temperament: "Calm", Price: 2400, DepositAmount: 300, ImageURL: &img,
		ShortDescription: "short", Description: "long", IsAvailable: true, CreatedAt: created,
	}

	mock.ExpectExec("INSERT INTO puppies").
		WithArgs("p1", "Maple", "Goldendoodle", "Female", "10 weeks", "Calm", 2400, 300,
			img, "short", "long", true, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), p))
}

func TestPuppyRepository_Update(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	name := "Luna"
	price := 1999
	patch := schema.PuppyPatch{Name: &name, Price: &price, ImageURL: schema.NullableString{Set: true}}

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE puppies SET name = $1, price = $2, image_url = $3 WHERE id = $4 RETURNING "+puppyColumns)).
		WithArgs("Luna", 1999, nil, "p1").
		WillReturnRows(addPuppy(puppyRows(), "p1", "Luna", 1999, true))

	p, err := repo.Update(context.Background(), "p1", patch)
	require.NoError(t, err)
	assert.Equal(t, "Luna", p.Name)
	assert.Equal(t, created, p.CreatedAt)
}

func TestPuppyRepository_UpdateMissing(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	avail := false
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE puppies SET is_available = $1 WHERE id = $2 RETURNING "+puppyColumns)).
		WithArgs(false, "gone").
		WillReturnRows(puppyRows())

	_, err := repo.Update(context.Background(), "gone", schema.PuppyPatch{IsAvailable: &avail})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPuppyRepository_EmptyPatchReadsRow(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + puppyColumns + " FROM puppies WHERE id = $1")).
		WithArgs("p1").
		WillReturnRows(addPuppy(puppyRows(), "p1", "Maple", 2400, true))

	p, err := repo.Update(context.Background(), "p1", schema.PuppyPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Maple", p.Name)
}

func TestPuppyRepository_Delete(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPuppyRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM puppies WHERE id = $1")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM puppies WHERE id = $1")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReviewRepository_ListFeaturedWithLimit(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewReviewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + reviewColumns + " FROM reviews WHERE is_featured = TRUE ORDER BY created_at DESC LIMIT $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(strings.Split(reviewColumns, ", ")).
			AddRow("r1", "Dana", 5, "Lovely pup", true, created))

	reviews, err := repo.List(context.Background(), models.ReviewFilter{FeaturedOnly: true, Limit: 3})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestReviewRepository_Update(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewReviewRepository(db)

	rating := 4
	featured := true
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE reviews SET rating = $1, is_featured = $2 WHERE id = $3 RETURNING "+reviewColumns)).
		WithArgs(4, true, "r1").
		WillReturnRows(sqlmock.NewRows(strings.Split(reviewColumns, ", ")).
			AddRow("r1", "Dana", 4, "Lovely pup", true, created))

	r, err := repo.Update(context.Background(), "r1", schema.ReviewPatch{Rating: &rating, IsFeatured: &featured})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)
	assert.True(t, r.IsFeatured)
}

func TestInquiryRepository_CreateDanglingPuppy(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewInquiryRepository(db)

	puppyID := "gone"
	mock.ExpectExec("INSERT INTO inquiries").
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := repo.Create(context.Background(), &models.Inquiry{ID: "i1", SelectedPuppyID: &puppyID, CreatedAt: created})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestSettingRepository_Upsert(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewSettingRepository(db)

	mock.ExpectQuery("INSERT INTO site_settings").
		WithArgs("contact_phone", "555-0100").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("contact_phone", "555-0100"))

	s, err := repo.Upsert(context.Background(), "contact_phone", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, &models.SiteSetting{Key: "contact_phone", Value: "555-0100"}, s)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "Ann", "ann@example.com", "hash", models.RoleAdmin).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.Create(context.Background(), &models.User{
		ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "hash", Role: models.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, role FROM users WHERE email = $1")).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role"}).
			AddRow("u1", "Ann", "ann@example.com", "hash", "admin"))

	u, err := repo.GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestMigrate(t *testing.T) {
	db, mock := setupMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("permission denied"))
	assert.ErrorContains(t, Migrate(context.Background(), db), "permission denied")
}
