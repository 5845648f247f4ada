package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"breeder-site-backend/internal/services"

	"github.com/rs/zerolog/hlog"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionCookie is the name of the cookie carrying the session token
const SessionCookie = "session"

// TokenParam is the query parameter accepted by QueryToken
const TokenParam = "token"

// TokenValidator turns a signed token into a session
type TokenValidator interface {
	ValidateJWT(token string) (*services.Session, error)
}

// LoadSession attaches the session of a valid cookie or bearer token to the
// request context. It never rejects: anonymous requests pass through and each
// handler decides whether it needs a session.
func LoadSession(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := tokens.ValidateJWT(token)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("Ignoring invalid session token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests without an admin session
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFrom(r.Context()).IsAdmin() {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFrom extracts the session from context, nil when anonymous
func SessionFrom(ctx context.Context) *services.Session {
	session, _ := ctx.Value(sessionKey).(*services.Session)
	return session
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *services.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// QueryToken loads a session from the token query parameter when no header or
// cookie did. Browsers cannot set headers on a websocket handshake, so mount it
// only on the live feed route: query strings end up in proxy logs.
func QueryToken(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get(TokenParam)
			if token == "" || SessionFrom(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			session, err := tokens.ValidateJWT(token)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("Ignoring invalid query token")
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
