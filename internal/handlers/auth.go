package handlers

import (
	"context"
	"net/http"

	"breeder-site-backend/internal/contract"
	"breeder-site-backend/internal/middleware"
	"breeder-site-backend/internal/schema"
	"breeder-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

// AuthHandler handles session requests
type AuthHandler struct {
	authService  *services.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session
// cookie Secure, which browsers require outside localhost.
func NewAuthHandler(authService *services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Routes mounts the session operations
func (h *AuthHandler) Routes(r chi.Router) {
	routes := contract.API.Auth
	mount(r, routes.Me, handle(routes.Me, public, "", h.me))
	mount(r, routes.Login, handle(routes.Login, public, "", h.login))
	mount(r, routes.Register, handle(routes.Register, public, "", h.register))
	mount(r, routes.Logout, handle(routes.Logout, public, "", h.logout))
}

func (h *AuthHandler) me(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	user, err := h.authService.Me(ctx, q.session)
	if err != nil {
		return reply{}, err
	}
	if user == nil {
		return ok(nil), nil
	}
	return ok(user.Summary()), nil
}

func (h *AuthHandler) login(ctx context.Context, q request[schema.LoginInput]) (reply, error) {
	user, token, err := h.authService.Login(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	hlog.FromRequest(q.r).Info().Str("user_id", user.ID).Msg("User logged in")
	return h.withSession(ok(user.Summary()), token), nil
}

func (h *AuthHandler) register(ctx context.Context, q request[schema.RegisterInput]) (reply, error) {
	user, token, err := h.authService.Register(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	hlog.FromRequest(q.r).Info().Str("user_id", user.ID).Msg("User registered")
	return h.withSession(created(user.Summary()), token), nil
}

func (h *AuthHandler) logout(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	res := noContent()
	res.cookies = []*http.Cookie{h.cookie("", -1)}
	return res, nil
}

func (h *AuthHandler) withSession(res reply, token string) reply {
	res.cookies = []*http.Cookie{h.cookie(token, int(h.authService.TTL().Seconds()))}
	return res
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
