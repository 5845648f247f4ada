package handlers

import (
	"context"
	"net/http"
	"time"

	"breeder-site-backend/internal/middleware"
	"breeder-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the dependencies of the HTTP surface
type Services struct {
	Puppies   *services.PuppyService
	Reviews   *services.ReviewService
	Inquiries *services.InquiryService
	Settings  *services.SettingService
	Auth      *services.AuthService
	Uploads   *services.UploadService
	Notifier  InquiryNotifier
	Live      *services.LiveHub
	Store     Pinger
}

// Options tune the router
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	SecureCookie   bool
	// UploadDir is served at /uploads/ when set
	UploadDir string
}

// NewRouter assembles every route of the site
func NewRouter(svc Services, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.LoadSession(svc.Auth))

	NewPuppyHandler(svc.Puppies).Routes(r)
	NewReviewHandler(svc.Reviews).Routes(r)
	NewInquiryHandler(svc.Inquiries, svc.Notifier).Routes(r)
	NewSettingHandler(svc.Settings).Routes(r)
	NewAuthHandler(svc.Auth, opts.SecureCookie).Routes(r)
	NewUploadHandler(svc.Uploads).Routes(r)

	if svc.Live != nil {
		live := NewLiveFeedHandler(svc.Live, opts.AllowedOrigins)
		r.With(middleware.QueryToken(svc.Auth), middleware.RequireAdmin).Get("/api/ws", live.HandleWebSocket)
	}

	r.Get("/healthz", healthz(svc.Store))

	if opts.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

func healthz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("Health check failed")
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
