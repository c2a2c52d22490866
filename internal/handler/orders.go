package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/localtime"
	"github.com/mamafavourite/api/internal/ws"
)

// OrderStore defines the database methods needed by admin order handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	AcknowledgeOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
}

// OrderHandler handles the admin order endpoints.
type OrderHandler struct {
	store  OrderStore
	hub    Broadcaster
	alerts Alerter
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, hub Broadcaster, alerts Alerter) *OrderHandler {
	return &OrderHandler{store: store, hub: hub, alerts: alerts}
}

// RegisterRoutes registers admin order endpoints on the given Chi router.
// Expected to be mounted inside the authenticated /admin subrouter.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Get("/orders/{id}", h.Get)
	r.Patch("/orders/{id}/status", h.UpdateStatus)
	r.Post("/orders/{id}/acknowledge", h.Acknowledge)
}

// allowedTransitions maps a current status to the statuses staff may
// move it to. Paid and pay-at-pickup orders enter the same kitchen flow.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusConfirmed, enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusConfirmed: {enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPaid:      {enum.OrderStatusConfirmed, enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing: {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:     {enum.OrderStatusCompleted, enum.OrderStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// --- Request / Response types ---

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// --- Handlers ---

// List handles GET /admin/orders.
// ?scope=today (default) limits to the restaurant's local day;
// ?scope=all returns everything. ?status filters by order status.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params := database.ListOrdersParams{}

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "today"
	}
	switch scope {
	case "today":
		start, end := localtime.TodayWindow()
		params.StartDate = pgtype.Timestamptz{Time: start, Valid: true}
		params.EndDate = pgtype.Timestamptz{Time: end, Valid: true}
	case "all":
		// no window
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scope must be today or all"})
		return
	}

	if s := r.URL.Query().Get("status"); s != "" {
		if !enum.IsValidOrderStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
			return
		}
		params.Status = pgtype.Text{String: s, Valid: true}
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 200 {
		limit = 200
	}
	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	params.Limit = int32(limit)
	params.Offset = int32(offset)

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := orderListResponse{
		Orders: make([]orderResponse, len(orders)),
		Limit:  limit,
		Offset: offset,
	}
	for i, order := range orders {
		resp.Orders[i] = toOrderResponse(order)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /admin/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /admin/orders/{id}/status.
// The update is a compare-and-swap on the current status so two staff
// devices racing the same order can't skip a step.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !enum.IsValidOrderStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	current, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if !transitionAllowed(current.Status, req.Status) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "cannot move order from " + current.Status + " to " + req.Status,
		})
		return
	}

	order, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:         id,
		Status:     req.Status,
		PrevStatus: current.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Someone else moved the order between our read and write.
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order status changed, refresh and retry"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcastOrder("order.updated", order)
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Acknowledge handles POST /admin/orders/{id}/acknowledge.
// Acknowledging is idempotent: re-acknowledging a seen order is a no-op
// success so multiple staff devices can race freely.
func (h *OrderHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.AcknowledgeOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: acknowledge order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.alerts.Acknowledge(order.ID.String())
	h.broadcastOrder("order.acknowledged", order)
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// broadcastOrder mirrors the checkout handler's broadcast so dashboard
// clients see admin-side changes too.
func (h *OrderHandler) broadcastOrder(eventType string, order database.Order) {
	if err := h.hub.BroadcastJSON(ws.TopicOrders, eventType, toOrderResponse(order)); err != nil {
		log.Printf("ERROR: broadcast %s: %v", eventType, err)
	}
}
