package handlers

import (
	"context"

	"breeder-site-backend/internal/contract"
	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
	"breeder-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

const reviewNotFound = "Review not found"

// ReviewHandler handles testimonial requests
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Routes mounts the review operations
func (h *ReviewHandler) Routes(r chi.Router) {
	routes := contract.API.Reviews
	mount(r, routes.List, handle(routes.List, public, "", h.list))
	mount(r, routes.Create, handle(routes.Create, adminOnly, "", h.create))
	mount(r, routes.Update, handle(routes.Update, adminOnly, reviewNotFound, h.update))
	mount(r, routes.Delete, handle(routes.Delete, adminOnly, reviewNotFound, h.delete))
}

func (h *ReviewHandler) list(ctx context.Context, q request[models.ReviewFilter]) (reply, error) {
	reviews, err := h.reviewService.List(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	return ok(reviews), nil
}

func (h *ReviewHandler) create(ctx context.Context, q request[schema.ReviewInput]) (reply, error) {
	review, err := h.reviewService.Create(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	return created(review), nil
}

func (h *ReviewHandler) update(ctx context.Context, q request[schema.ReviewPatch]) (reply, error) {
	review, err := h.reviewService.Update(ctx, q.param("id"), q.in)
	if err != nil {
		return reply{}, err
	}
	return ok(review), nil
}

func (h *ReviewHandler) delete(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	if err := h.reviewService.Delete(ctx, q.param("id")); err != nil {
		return reply{}, err
	}
	return noContent(), nil
}
