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

// InquiryNotifier receives inquiries after they are committed
type InquiryNotifier interface {
	InquiryCreated(inquiry models.Inquiry)
}

// InquiryHandler handles lead capture requests
type InquiryHandler struct {
	inquiryService *services.InquiryService
	notifier       InquiryNotifier
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryService *services.InquiryService, notifier InquiryNotifier) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService, notifier: notifier}
}

// Routes mounts the inquiry operations
func (h *InquiryHandler) Routes(r chi.Router) {
	routes := contract.API.Inquiries
	mount(r, routes.List, handle(routes.List, adminOnly, "", h.list))
	mount(r, routes.Create, handle(routes.Create, public, "", h.create))
}

func (h *InquiryHandler) list(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	inquiries, err := h.inquiryService.List(ctx)
	if err != nil {
		return reply{}, err
	}
	return ok(inquiries), nil
}

func (h *InquiryHandler) create(ctx context.Context, q request[schema.InquiryInput]) (reply, error) {
	inquiry, err := h.inquiryService.Create(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	hlog.FromRequest(q.r).Info().Str("inquiry_id", inquiry.ID).Msg("Inquiry received")

	res := created(inquiry)
	if h.notifier != nil {
		committed := *inquiry
		res.then = func() { h.notifier.InquiryCreated(committed) }
	}
	return res, nil
}
