package handlers

import (
	"context"

	"breeder-site-backend/internal/contract"
	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
	"breeder-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

const puppyNotFound = "Puppy not found"

// PuppyHandler handles puppy catalog requests
type PuppyHandler struct {
	puppyService *services.PuppyService
}

// NewPuppyHandler creates a new puppy handler
func NewPuppyHandler(puppyService *services.PuppyService) *PuppyHandler {
	return &PuppyHandler{puppyService: puppyService}
}

// Routes mounts the puppy operations
func (h *PuppyHandler) Routes(r chi.Router) {
	routes := contract.API.Puppies
	mount(r, routes.List, handle(routes.List, public, "", h.list))
	mount(r, routes.Get, handle(routes.Get, public, puppyNotFound, h.get))
	mount(r, routes.Create, handle(routes.Create, adminOnly, "", h.create))
	mount(r, routes.Update, handle(routes.Update, adminOnly, puppyNotFound, h.update))
	mount(r, routes.Delete, handle(routes.Delete, adminOnly, puppyNotFound, h.delete))
}

func (h *PuppyHandler) list(ctx context.Context, q request[models.PuppyFilter]) (reply, error) {
	puppies, err := h.puppyService.List(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	return ok(puppies), nil
}

func (h *PuppyHandler) get(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	puppy, err := h.puppyService.Get(ctx, q.param("id"))
	if err != nil {
		return reply{}, err
	}
	return ok(puppy), nil
}

func (h *PuppyHandler) create(ctx context.Context, q request[schema.PuppyInput]) (reply, error) {
	puppy, err := h.puppyService.Create(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	hlog.FromRequest(q.r).Info().Str("puppy_id", puppy.ID).Str("name", puppy.Name).Msg("Puppy created")
	return created(puppy), nil
}

func (h *PuppyHandler) update(ctx context.Context, q request[schema.PuppyPatch]) (reply, error) {
	puppy, err := h.puppyService.Update(ctx, q.param("id"), q.in)
	if err != nil {
		return reply{}, err
	}
	return ok(puppy), nil
}

func (h *PuppyHandler) delete(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	id := q.param("id")
	if err := h.puppyService.Delete(ctx, id); err != nil {
		return reply{}, err
	}
	hlog.FromRequest(q.r).Info().Str("puppy_id", id).Msg("Puppy deleted")
	return noContent(), nil
}
