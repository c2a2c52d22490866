package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/menu"
	"github.com/mamafavourite/api/internal/ws"
)

// MenuStore defines the database methods needed by menu handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]database.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, arg database.SetMenuItemAvailabilityParams) (database.MenuItem, error)
	GetSetting(ctx context.Context, key string) (database.Setting, error)
}

// MenuHandler handles the menu endpoints.
type MenuHandler struct {
	store MenuStore
	hub   Broadcaster
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore, hub Broadcaster) *MenuHandler {
	return &MenuHandler{store: store, hub: hub}
}

// RegisterPublicRoutes registers the storefront-facing read endpoint.
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/menu", h.List)
}

// RegisterAdminRoutes registers the staff-facing availability toggle.
// Expected to be mounted inside the authenticated /admin subrouter.
func (h *MenuHandler) RegisterAdminRoutes(r chi.Router) {
	r.Patch("/menu/{id}/availability", h.SetAvailability)
}

// --- Request / Response types ---

type menuItemResponse struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       string     `json:"price"`
	Category    string     `json:"category"`
	IsAvailable bool       `json:"is_available"`
}

type menuResponse struct {
	PickupEnabled bool               `json:"pickup_enabled"`
	Items         []menuItemResponse `json:"items"`
}

type setAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

// --- Handlers ---

// List handles GET /menu. The payload carries the pickup gate state so
// a storefront needs a single request to render. An empty menu_items
// table falls back to the compiled-in menu.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	pickupEnabled := true
	if setting, err := h.store.GetSetting(r.Context(), enum.SettingPickupEnabled); err == nil {
		pickupEnabled = setting.Value
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("ERROR: get pickup setting: %v", err)
	}

	items, err := h.store.ListMenuItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := menuResponse{PickupEnabled: pickupEnabled}
	if len(items) == 0 {
		resp.Items = fallbackMenu()
	} else {
		resp.Items = make([]menuItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = toMenuItemResponse(item)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetAvailability handles PATCH /admin/menu/{id}/availability.
func (h *MenuHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	var req setAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.IsAvailable == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "is_available is required"})
		return
	}

	item, err := h.store.SetMenuItemAvailability(r.Context(), database.SetMenuItemAvailabilityParams{
		ID:          id,
		IsAvailable: *req.IsAvailable,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: set menu item availability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toMenuItemResponse(item)
	if err := h.hub.BroadcastJSON(ws.TopicSettings, "menu.updated", resp); err != nil {
		log.Printf("ERROR: broadcast menu.updated: %v", err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func toMenuItemResponse(item database.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:          &item.ID,
		Name:        item.Name,
		Price:       database.NumericToString(item.Price),
		Category:    item.Category,
		IsAvailable: item.IsAvailable,
	}
	if item.Description.Valid {
		resp.Description = item.Description.String
	}
	return resp
}

// fallbackMenu converts the compiled-in menu for responses served
// before the menu_items table is seeded.
func fallbackMenu() []menuItemResponse {
	def := menu.Default()
	items := make([]menuItemResponse, len(def))
	for i, it := range def {
		items[i] = menuItemResponse{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Category:    it.Category,
			IsAvailable: true,
		}
	}
	return items
}

