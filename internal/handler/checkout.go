package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/service"
	"github.com/mamafavourite/api/internal/ws"
)

// CheckoutServicer defines the service methods needed by checkout handlers.
// Satisfied by *service.CheckoutService; narrow interface for testability.
type CheckoutServicer interface {
	PlaceOrder(ctx context.Context, req service.CheckoutRequest) (database.Order, error)
	CreateCardSession(ctx context.Context, req service.CheckoutRequest) (service.CardSession, error)
	VerifyPayment(ctx context.Context, sessionID string) (service.VerifyResult, error)
}

// Broadcaster pushes events to connected websocket clients.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastJSON(topic, eventType string, payload interface{}) error
}

// Alerter tracks unacknowledged orders for audible staff alerts.
// Satisfied by *alert.Engine.
type Alerter interface {
	AddOrder(id string)
	Acknowledge(id string)
}

// CheckoutHandler handles the customer-facing checkout endpoints.
type CheckoutHandler struct {
	svc    CheckoutServicer
	hub    Broadcaster
	alerts Alerter
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc CheckoutServicer, hub Broadcaster, alerts Alerter) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, hub: hub, alerts: alerts}
}

// RegisterRoutes registers checkout endpoints on the given Chi router.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout/orders", h.PlaceOrder)
	r.Post("/checkout/session", h.CreateSession)
	r.Post("/checkout/verify", h.Verify)
}

// --- Request / Response types ---

type checkoutRequest struct {
	CustomerName        string             `json:"customer_name"`
	CustomerEmail       string             `json:"customer_email"`
	CustomerPhone       string             `json:"customer_phone"`
	PickupTime          string             `json:"pickup_time"`
	SpecialInstructions string             `json:"special_instructions"`
	Items               []service.CartItem `json:"items"`
}

func (req checkoutRequest) toService() service.CheckoutRequest {
	return service.CheckoutRequest{
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		PickupTime:          req.PickupTime,
		SpecialInstructions: req.SpecialInstructions,
		Items:               req.Items,
	}
}

type orderResponse struct {
	ID                  uuid.UUID          `json:"id"`
	OrderNumber         string             `json:"order_number"`
	CustomerName        string             `json:"customer_name"`
	CustomerEmail       string             `json:"customer_email"`
	CustomerPhone       string             `json:"customer_phone"`
	Items               []service.CartItem `json:"items"`
	Subtotal            string             `json:"subtotal"`
	Tax                 string             `json:"tax"`
	Total               string             `json:"total"`
	Status              string             `json:"status"`
	PickupTime          string             `json:"pickup_time"`
	SpecialInstructions *string            `json:"special_instructions"`
	Acknowledged        bool               `json:"acknowledged"`
	CreatedAt           time.Time          `json:"created_at"`
}

type cardSessionResponse struct {
	URL         string `json:"url"`
	SessionID   string `json:"session_id"`
	OrderNumber string `json:"order_number"`
}

type verifyRequest struct {
	SessionID string `json:"session_id"`
}

type verifyResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message,omitempty"`
	AlreadyProcessed bool   `json:"already_processed,omitempty"`
	OrderNumber      string `json:"order_number,omitempty"`
	CustomerName     string `json:"customer_name,omitempty"`
	CustomerEmail    string `json:"customer_email,omitempty"`
	PickupTime       string `json:"pickup_time,omitempty"`
	Total            string `json:"total,omitempty"`
}

// --- Handlers ---

// PlaceOrder handles POST /checkout/orders (pay at pickup).
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.PlaceOrder(r.Context(), req.toService())
	if err != nil {
		h.writeCheckoutError(w, "place order", err)
		return
	}

	h.broadcastOrder("order.created", order)
	h.alerts.AddOrder(order.ID.String())
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// CreateSession handles POST /checkout/session (hosted card payment).
// Nothing is persisted here; the order exists only in session metadata
// until verification confirms payment.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sess, err := h.svc.CreateCardSession(r.Context(), req.toService())
	if err != nil {
		h.writeCheckoutError(w, "create card session", err)
		return
	}

	writeJSON(w, http.StatusCreated, cardSessionResponse{
		URL:         sess.URL,
		SessionID:   sess.SessionID,
		OrderNumber: sess.OrderNumber,
	})
}

// Verify handles POST /checkout/verify. Safe to call repeatedly for the
// same session; only the first successful call persists and broadcasts.
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.VerifyPayment(r.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionIDRequired):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrSessionNoMetadata):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: verify payment: %v", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "payment verification failed, please try again"})
		}
		return
	}

	if result.Created {
		h.broadcastOrder("order.created", result.Order)
		h.alerts.AddOrder(result.Order.ID.String())
	}

	resp := verifyResponse{
		Success:          result.Success,
		Message:          result.Message,
		AlreadyProcessed: result.AlreadyProcessed,
		OrderNumber:      result.OrderNumber,
		CustomerName:     result.CustomerName,
		CustomerEmail:    result.CustomerEmail,
		PickupTime:       result.PickupTime,
	}
	if result.Success {
		resp.Total = result.Total.StringFixed(2)
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrPickupClosed):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": err.Error(),
			"code":  "gate_closed",
		})
	case service.IsValidationError(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not process the order, please try again"})
	}
}

func (h *CheckoutHandler) broadcastOrder(eventType string, order database.Order) {
	if err := h.hub.BroadcastJSON(ws.TopicOrders, eventType, toOrderResponse(order)); err != nil {
		log.Printf("ERROR: broadcast %s: %v", eventType, err)
	}
}

func toOrderResponse(order database.Order) orderResponse {
	var items []service.CartItem
	if len(order.Items) > 0 {
		if err := json.Unmarshal(order.Items, &items); err != nil {
			log.Printf("ERROR: decode order items for %s: %v", order.OrderNumber, err)
		}
	}

	var instructions *string
	if order.SpecialInstructions.Valid {
		instructions = &order.SpecialInstructions.String
	}

	return orderResponse{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		CustomerName:        order.CustomerName,
		CustomerEmail:       order.CustomerEmail,
		CustomerPhone:       order.CustomerPhone,
		Items:               items,
		Subtotal:            database.NumericToString(order.Subtotal),
		Tax:                 database.NumericToString(order.Tax),
		Total:               database.NumericToString(order.Total),
		Status:              order.Status,
		PickupTime:          order.PickupTime,
		SpecialInstructions: instructions,
		Acknowledged:        order.Acknowledged,
		CreatedAt:           order.CreatedAt,
	}
}
