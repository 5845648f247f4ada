package handlers

import (
	"context"

	"breeder-site-backend/internal/contract"
	"breeder-site-backend/internal/schema"
	"breeder-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// SettingHandler handles site setting requests
type SettingHandler struct {
	settingService *services.SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// Routes mounts the setting operations
func (h *SettingHandler) Routes(r chi.Router) {
	routes := contract.API.Settings
	mount(r, routes.List, handle(routes.List, public, "", h.list))
	mount(r, routes.Get, handle(routes.Get, public, "Setting not found", h.get))
	mount(r, routes.Update, handle(routes.Update, adminOnly, "", h.upsert))
}

func (h *SettingHandler) list(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	settings, err := h.settingService.List(ctx)
	if err != nil {
		return reply{}, err
	}
	return ok(settings), nil
}

func (h *SettingHandler) get(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	setting, err := h.settingService.Get(ctx, q.param("key"))
	if err != nil {
		return reply{}, err
	}
	return ok(setting), nil
}

func (h *SettingHandler) upsert(ctx context.Context, q request[schema.SettingInput]) (reply, error) {
	setting, err := h.settingService.Upsert(ctx, q.in)
	if err != nil {
		return reply{}, err
	}
	return ok(setting), nil
}
