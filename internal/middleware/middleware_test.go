package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/services"
)

type stubTokens map[string]*services.Session

func (s stubTokens) ValidateJWT(token string) (*services.Session, error) {
	if session, ok := s[token]; ok {
		return session, nil
	}
	return nil, errors.New("bad token")
}

var tokens = stubTokens{
	"admin-token": {UserID: "u1", Role: models.RoleAdmin},
	"user-token":  {UserID: "u2", Role: models.RoleUser},
}

func captureSession(got **services.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = SessionFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestLoadSession(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(r *http.Request)
		wantID  string
	}{
		{"anonymous", func(r *http.Request) {}, ""},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer admin-token") }, "u1"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "user-token"}) }, "u2"},
		{"invalid token is anonymous", func(r *http.Request) { r.Header.Set("Authorization", "Bearer forged") }, ""},
		{"malformed header is anonymous", func(r *http.Request) { r.Header.Set("Authorization", "admin-token") }, ""},
		{"query token is ignored", func(r *http.Request) { r.URL.RawQuery = "token=admin-token" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *services.Session
			h := LoadSession(tokens)(captureSession(&got))

			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.UserID)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := LoadSession(tokens)(RequireAdmin(ok))

	for token, want := range map[string]int{"admin-token": http.StatusOK, "user-token": http.StatusUnauthorized, "": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "token %q", token)
		if want == http.StatusUnauthorized {
			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
		}
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodOptions, "/api/puppies", nil)
	rec := httptest.NewRecorder()
	CORS(nil)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/puppies", nil)
	req.Header.Set("Origin", "https://breeder.example")
	rec = httptest.NewRecorder()
	CORS([]string{"https://breeder.example"})(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "https://breeder.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/puppies", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	CORS([]string{"https://breeder.example"})(next).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := chiMiddleware.RequestID(AccessLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews?x=1", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/api/reviews?x=1", line["url"])
	assert.EqualValues(t, 201, line["status"])
	assert.EqualValues(t, 2, line["size"])
	assert.NotEmpty(t, line["request_id"])
}

func TestQueryToken(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(r *http.Request)
		wantID  string
	}{
		{"no token", func(r *http.Request) {}, ""},
		{"query token", func(r *http.Request) { r.URL.RawQuery = "token=admin-token" }, "u1"},
		{"invalid query token", func(r *http.Request) { r.URL.RawQuery = "token=forged" }, ""},
		{"header wins", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer user-token")
			r.URL.RawQuery = "token=admin-token"
		}, "u2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *services.Session
			h := LoadSession(tokens)(QueryToken(tokens)(captureSession(&got)))

			req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
			tt.prepare(req)
			h.ServeHTTP(httptest.NewRecorder(), req)

			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.UserID)
		})
	}
}

func TestAccessLog_RedactsToken(t *testing.T) {
	var buf bytes.Buffer
	h := AccessLog(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ws?token=eyJhbGciOiJIUzI1NiJ9.secret&x=1", nil))

	assert.NotContains(t, buf.String(), "eyJhbGciOiJIUzI1NiJ9")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/api/ws?token=REDACTED&x=1", line["url"])
}
