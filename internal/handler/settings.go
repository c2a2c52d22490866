package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/ws"
)

// SettingsStore defines the database methods needed by settings handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (database.Setting, error)
	UpdateSetting(ctx context.Context, arg database.UpdateSettingParams) (database.Setting, error)
	UpsertSetting(ctx context.Context, arg database.UpdateSettingParams) error
}

// SettingsHandler handles the pickup availability gate.
type SettingsHandler struct {
	store SettingsStore
	hub   Broadcaster
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store SettingsStore, hub Broadcaster) *SettingsHandler {
	return &SettingsHandler{store: store, hub: hub}
}

// RegisterPublicRoutes registers the storefront-facing read endpoint.
func (h *SettingsHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/settings/pickup", h.Get)
}

// RegisterAdminRoutes registers the staff-facing write endpoint.
// Expected to be mounted inside the authenticated /admin subrouter.
func (h *SettingsHandler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/settings/pickup", h.Update)
}

// --- Request / Response types ---

type pickupSettingResponse struct {
	PickupEnabled bool       `json:"pickup_enabled"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type updatePickupRequest struct {
	PickupEnabled *bool `json:"pickup_enabled"`
}

// --- Handlers ---

// Get handles GET /settings/pickup. A missing row means ordering has
// never been toggled, which reads as open.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.store.GetSetting(r.Context(), enum.SettingPickupEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, pickupSettingResponse{PickupEnabled: true})
			return
		}
		log.Printf("ERROR: get pickup setting: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, pickupSettingResponse{
		PickupEnabled: setting.Value,
		UpdatedAt:     &setting.UpdatedAt,
	})
}

// Update handles PUT /admin/settings/pickup and pushes the new state to
// every connected storefront.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updatePickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.PickupEnabled == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pickup_enabled is required"})
		return
	}

	params := database.UpdateSettingParams{
		Key:   enum.SettingPickupEnabled,
		Value: *req.PickupEnabled,
	}

	setting, err := h.store.UpdateSetting(r.Context(), params)
	if errors.Is(err, pgx.ErrNoRows) {
		// First toggle ever: create the row, then write the value.
		if err := h.store.UpsertSetting(r.Context(), params); err != nil {
			log.Printf("ERROR: create pickup setting: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		setting, err = h.store.UpdateSetting(r.Context(), params)
	}
	if err != nil {
		log.Printf("ERROR: update pickup setting: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := pickupSettingResponse{
		PickupEnabled: setting.Value,
		UpdatedAt:     &setting.UpdatedAt,
	}
	if err := h.hub.BroadcastJSON(ws.TopicSettings, "setting.updated", resp); err != nil {
		log.Printf("ERROR: broadcast setting.updated: %v", err)
	}
	writeJSON(w, http.StatusOK, resp)
}
