package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"breeder-site-backend/internal/contract"
	"breeder-site-backend/internal/middleware"
	"breeder-site-backend/internal/schema"
	"breeder-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

// MaxBodyBytes caps a JSON request body
const MaxBodyBytes = 1 << 20

type access int

const (
	public access = iota
	adminOnly
)

// request is what an operation sees once its input is parsed and authorized
type request[In any] struct {
	r       *http.Request
	in      In
	session *services.Session
}

func (q request[In]) param(name string) string {
	return chi.URLParam(q.r, name)
}

// reply is a successful outcome. then runs after the response is written.
type reply struct {
	status  int
	body    any
	cookies []*http.Cookie
	then    func()
}

func ok(body any) reply      { return reply{status: http.StatusOK, body: body} }
func created(body any) reply { return reply{status: http.StatusCreated, body: body} }
func noContent() reply       { return reply{status: http.StatusNoContent} }

type operation[In any] func(ctx context.Context, q request[In]) (reply, error)

// handle runs one contract route through
// validating -> authorizing -> executing -> responding.
// Input is parsed before the session is consulted and neither stage touches
// the store. notFound is the message of a 404.
func handle[In any](route contract.Route[In], acc access, notFound string, op operation[In]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := hlog.FromRequest(r)

		var body []byte
		if route.Input != nil && r.Body != nil {
			var err error
			body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					respondJSON(w, http.StatusBadRequest, &schema.ValidationError{Message: "Request body too large"})
					return
				}
				respondJSON(w, http.StatusBadRequest, &schema.ValidationError{Message: "Failed to read request body"})
				return
			}
		}

		in, err := route.Parse(body, r.URL.Query())
		if err != nil {
			if verr, ok := schema.AsValidationError(err); ok {
				respondJSON(w, http.StatusBadRequest, verr)
				return
			}
			logger.Error().Err(err).Str("route", route.Name).Msg("Failed to parse input")
			respondJSON(w, http.StatusBadRequest, &schema.ValidationError{Message: "Invalid request"})
			return
		}

		session := middleware.SessionFrom(r.Context())
		if acc == adminOnly && !session.IsAdmin() {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := op(r.Context(), request[In]{r: r, in: in, session: session})
		if err != nil {
			fail(w, r, route.Name, notFound, err)
			return
		}

		for _, c := range res.cookies {
			http.SetCookie(w, c)
		}
		respondJSON(w, res.status, res.body)

		if res.then != nil {
			res.then()
		}
	}
}

// fail maps an operation error to its response
func fail(w http.ResponseWriter, r *http.Request, routeName, notFound string, err error) {
	if verr, ok := schema.AsValidationError(err); ok {
		respondJSON(w, http.StatusBadRequest, verr)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		if notFound == "" {
			notFound = "Not found"
		}
		respondError(w, notFound, http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		respondError(w, "Email already registered", http.StatusConflict)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, "Invalid email or password", http.StatusUnauthorized)
	default:
		hlog.FromRequest(r).Error().Err(err).Str("route", routeName).Msg("Request failed")
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// mount registers a contract route on r
func mount[In any](r chi.Router, route contract.Route[In], h http.HandlerFunc) {
	r.Method(route.Method, contract.Pattern(route.Path), h)
}
