package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/handler"
)

// --- Mock store ---

type mockSettingsStore struct {
	settings map[string]database.Setting
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{settings: make(map[string]database.Setting)}
}

func (m *mockSettingsStore) GetSetting(_ context.Context, key string) (database.Setting, error) {
	setting, ok := m.settings[key]
	if !ok {
		return database.Setting{}, pgx.ErrNoRows
	}
	return setting, nil
}

func (m *mockSettingsStore) UpdateSetting(_ context.Context, arg database.UpdateSettingParams) (database.Setting, error) {
	setting, ok := m.settings[arg.Key]
	if !ok {
		return database.Setting{}, pgx.ErrNoRows
	}
	setting.Value = arg.Value
	setting.UpdatedAt = time.Now()
	m.settings[arg.Key] = setting
	return setting, nil
}

func (m *mockSettingsStore) UpsertSetting(_ context.Context, arg database.UpdateSettingParams) error {
	if _, ok := m.settings[arg.Key]; !ok {
		m.settings[arg.Key] = database.Setting{Key: arg.Key, Value: arg.Value, UpdatedAt: time.Now()}
	}
	return nil
}

// --- Helpers ---

func setupSettingsRouter(store *mockSettingsStore, hub *mockBroadcaster) *chi.Mux {
	h := handler.NewSettingsHandler(store, hub)
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	r.Route("/admin", h.RegisterAdminRoutes)
	return r
}

// --- Tests ---

func TestPickupSetting_MissingRowReadsOpen(t *testing.T) {
	router := setupSettingsRouter(newMockSettingsStore(), &mockBroadcaster{})

	rr := doRequest(t, router, "GET", "/settings/pickup", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rr)
	if resp["pickup_enabled"] != true {
		t.Errorf("pickup_enabled: got %v, want true", resp["pickup_enabled"])
	}
}

func TestPickupSetting_ReadsStoredValue(t *testing.T) {
	store := newMockSettingsStore()
	store.settings["pickup_enabled"] = database.Setting{Key: "pickup_enabled", Value: false, UpdatedAt: time.Now()}
	router := setupSettingsRouter(store, &mockBroadcaster{})

	rr := doRequest(t, router, "GET", "/settings/pickup", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rr)
	if resp["pickup_enabled"] != false {
		t.Errorf("pickup_enabled: got %v, want false", resp["pickup_enabled"])
	}
}

func TestPickupSetting_UpdateBroadcasts(t *testing.T) {
	store := newMockSettingsStore()
	store.settings["pickup_enabled"] = database.Setting{Key: "pickup_enabled", Value: true, UpdatedAt: time.Now()}
	hub := &mockBroadcaster{}
	router := setupSettingsRouter(store, hub)

	rr := doRequest(t, router, "PUT", "/admin/settings/pickup",
		map[string]bool{"pickup_enabled": false})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["pickup_enabled"] != false {
		t.Errorf("pickup_enabled: got %v, want false", resp["pickup_enabled"])
	}
	if len(hub.events) != 1 || hub.events[0].Type != "setting.updated" || hub.events[0].Topic != "settings" {
		t.Errorf("broadcasts: got %+v, want one setting.updated on settings", hub.events)
	}
}

func TestPickupSetting_FirstToggleCreatesRow(t *testing.T) {
	store := newMockSettingsStore()
	router := setupSettingsRouter(store, &mockBroadcaster{})

	rr := doRequest(t, router, "PUT", "/admin/settings/pickup",
		map[string]bool{"pickup_enabled": false})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if setting, ok := store.settings["pickup_enabled"]; !ok || setting.Value {
		t.Errorf("setting row: got %+v, want persisted false", setting)
	}
}

func TestPickupSetting_UpdateRequiresField(t *testing.T) {
	router := setupSettingsRouter(newMockSettingsStore(), &mockBroadcaster{})

	rr := doRequest(t, router, "PUT", "/admin/settings/pickup", map[string]string{})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
