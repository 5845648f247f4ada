package middleware

import (
	"net/http"
	"net/url"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// AccessLog attaches logger to every request context and writes one line per
// completed request. It must run after chi's RequestID.
func AccessLog(logger zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		event := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Error()
		}
		event.
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("url", redactedURI(r.URL)).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request")
	})

	return func(next http.Handler) http.Handler {
		return hlog.NewHandler(logger)(access(next))
	}
}

// redactedURI is the request URI with credential parameters masked
func redactedURI(u *url.URL) string {
	query := u.Query()
	if !query.Has(TokenParam) {
		return u.RequestURI()
	}
	query.Set(TokenParam, "REDACTED")
	redacted := *u
	redacted.RawQuery = query.Encode()
	return redacted.RequestURI()
}
