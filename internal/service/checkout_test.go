package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/notify"
	"github.com/mamafavourite/api/internal/payment"
)

// --- Mocks ---

type mockStore struct {
	createOrderFn      func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	getOrderByNumberFn func(ctx context.Context, orderNumber string) (database.Order, error)
	getSettingFn       func(ctx context.Context, key string) (database.Setting, error)
}

func (m *mockStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, arg)
	}
	return orderFromParams(arg), nil
}

func (m *mockStore) GetOrderByNumber(ctx context.Context, orderNumber string) (database.Order, error) {
	if m.getOrderByNumberFn != nil {
		return m.getOrderByNumberFn(ctx, orderNumber)
	}
	return database.Order{}, pgx.ErrNoRows
}

func (m *mockStore) GetSetting(ctx context.Context, key string) (database.Setting, error) {
	if m.getSettingFn != nil {
		return m.getSettingFn(ctx, key)
	}
	return database.Setting{Key: key, Value: true}, nil
}

type mockProvider struct {
	createFn   func(ctx context.Context, in payment.CreateSessionInput) (payment.Session, error)
	retrieveFn func(ctx context.Context, id string) (payment.Session, error)
}

func (m *mockProvider) CreateSession(ctx context.Context, in payment.CreateSessionInput) (payment.Session, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return payment.Session{ID: "cs_test", URL: "https://pay.example/cs_test"}, nil
}

func (m *mockProvider) RetrieveSession(ctx context.Context, id string) (payment.Session, error) {
	if m.retrieveFn != nil {
		return m.retrieveFn(ctx, id)
	}
	return payment.Session{}, errors.New("not configured")
}

type mockDispatcher struct {
	calls []notify.OrderNotification
	err   error
}

func (m *mockDispatcher) DispatchOrder(ctx context.Context, n notify.OrderNotification) error {
	m.calls = append(m.calls, n)
	return m.err
}

// orderFromParams echoes insert params back as a row, the way the
// RETURNING clause would.
func orderFromParams(arg database.CreateOrderParams) database.Order {
	return database.Order{
		ID:                  uuid.New(),
		OrderNumber:         arg.OrderNumber,
		CustomerName:        arg.CustomerName,
		CustomerEmail:       arg.CustomerEmail,
		CustomerPhone:       arg.CustomerPhone,
		Items:               arg.Items,
		Subtotal:            arg.Subtotal,
		Tax:                 arg.Tax,
		Total:               arg.Total,
		Status:              arg.Status,
		PickupTime:          arg.PickupTime,
		SpecialInstructions: arg.SpecialInstructions,
		CreatedAt:           time.Now(),
	}
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "(519) 555-0123",
		PickupTime:    "30 minutes",
		Items: []CartItem{
			{ID: "jerk-dinner", Name: "Jerk Chicken Dinner", Price: decimal.RequireFromString("18.50"), Quantity: 1},
		},
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"}
}

// --- PlaceOrder ---

func TestPlaceOrderComputesTotalsAndStatus(t *testing.T) {
	store := &mockStore{}
	dispatcher := &mockDispatcher{}
	svc := NewCheckoutService(store, &mockProvider{}, dispatcher)

	order, err := svc.PlaceOrder(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if order.Status != enum.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.Acknowledged {
		t.Error("new order must start unacknowledged")
	}
	if got := database.NumericToString(order.Subtotal); got != "18.50" {
		t.Errorf("subtotal = %s, want 18.50", got)
	}
	if got := database.NumericToString(order.Tax); got != "2.41" {
		t.Errorf("tax = %s, want 2.41", got)
	}
	if got := database.NumericToString(order.Total); got != "20.91" {
		t.Errorf("total = %s, want 20.91", got)
	}
	if order.OrderNumber == "" {
		t.Error("expected an order number")
	}
	if len(dispatcher.calls) != 1 {
		t.Fatalf("dispatch calls = %d, want 1", len(dispatcher.calls))
	}
	if dispatcher.calls[0].OrderNumber != order.OrderNumber {
		t.Error("notification carries wrong order number")
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CheckoutRequest)
		want   error
	}{
		{"missing name", func(r *CheckoutRequest) { r.CustomerName = " " }, ErrMissingName},
		{"missing email", func(r *CheckoutRequest) { r.CustomerEmail = "" }, ErrMissingEmail},
		{"missing phone", func(r *CheckoutRequest) { r.CustomerPhone = "" }, ErrMissingPhone},
		{"bad pickup time", func(r *CheckoutRequest) { r.PickupTime = "whenever" }, ErrInvalidPickupTime},
		{"empty cart", func(r *CheckoutRequest) { r.Items = nil }, ErrEmptyItems},
		{"zero quantity", func(r *CheckoutRequest) { r.Items[0].Quantity = 0 }, ErrInvalidQuantity},
		{"negative price", func(r *CheckoutRequest) { r.Items[0].Price = decimal.RequireFromString("-1") }, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{
				createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
					t.Fatal("no insert may happen on validation failure")
					return database.Order{}, nil
				},
			}
			svc := NewCheckoutService(store, &mockProvider{}, &mockDispatcher{})

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.PlaceOrder(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !IsValidationError(err) {
				t.Errorf("%v should classify as a validation error", err)
			}
		})
	}
}

func TestPlaceOrderRefusedWhenGateClosed(t *testing.T) {
	store := &mockStore{
		getSettingFn: func(ctx context.Context, key string) (database.Setting, error) {
			return database.Setting{Key: key, Value: false}, nil
		},
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			t.Fatal("no insert may happen while the gate is closed")
			return database.Order{}, nil
		},
	}
	svc := NewCheckoutService(store, &mockProvider{}, &mockDispatcher{})

	_, err := svc.PlaceOrder(context.Background(), validRequest())
	if !errors.Is(err, ErrPickupClosed) {
		t.Errorf("err = %v, want ErrPickupClosed", err)
	}
}

func TestPlaceOrderMissingSettingMeansOpen(t *testing.T) {
	store := &mockStore{
		getSettingFn: func(ctx context.Context, key string) (database.Setting, error) {
			return database.Setting{}, pgx.ErrNoRows
		},
	}
	svc := NewCheckoutService(store, &mockProvider{}, &mockDispatcher{})

	if _, err := svc.PlaceOrder(context.Background(), validRequest()); err != nil {
		t.Fatalf("place order with no settings row: %v", err)
	}
}

func TestPlaceOrderSurvivesNotificationFailure(t *testing.T) {
	dispatcher := &mockDispatcher{err: errors.New("smtp down")}
	svc := NewCheckoutService(&mockStore{}, &mockProvider{}, dispatcher)

	order, err := svc.PlaceOrder(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("notification failure must not fail the order: %v", err)
	}
	if order.OrderNumber == "" {
		t.Error("expected a persisted order despite notification failure")
	}
}

func TestPlaceOrderRetriesOnNumberConflict(t *testing.T) {
	var attempts []string
	store := &mockStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			attempts = append(attempts, arg.OrderNumber)
			if len(attempts) == 1 {
				return database.Order{}, uniqueViolation()
			}
			return orderFromParams(arg), nil
		},
	}
	svc := NewCheckoutService(store, &mockProvider{}, &mockDispatcher{})

	order, err := svc.PlaceOrder(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	if attempts[0] == attempts[1] {
		t.Error("retry must use a fresh order number")
	}
	if order.OrderNumber != attempts[1] {
		t.Error("returned order must carry the winning number")
	}
}

// --- CreateCardSession ---

func TestCreateCardSessionWritesNoOrder(t *testing.T) {
	var captured payment.CreateSessionInput
	provider := &mockProvider{
		createFn: func(ctx context.Context, in payment.CreateSessionInput) (payment.Session, error) {
			captured = in
			return payment.Session{ID: "cs_123", URL: "https://pay.example/cs_123"}, nil
		},
	}
	store := &mockStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			t.Fatal("card path must not insert an order")
			return database.Order{}, nil
		},
	}
	dispatcher := &mockDispatcher{}
	svc := NewCheckoutService(store, provider, dispatcher)

	sess, err := svc.CreateCardSession(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create card session: %v", err)
	}

	if sess.URL != "https://pay.example/cs_123" || sess.SessionID != "cs_123" {
		t.Errorf("unexpected session response: %+v", sess)
	}
	if sess.OrderNumber == "" {
		t.Error("expected a generated order number")
	}
	if len(dispatcher.calls) != 0 {
		t.Error("card path must not notify before payment completes")
	}

	// One line per item plus the synthetic tax line, in cents.
	if len(captured.LineItems) != 2 {
		t.Fatalf("line items = %d, want 2", len(captured.LineItems))
	}
	if captured.LineItems[0].AmountCent != 1850 {
		t.Errorf("item amount = %d cents, want 1850", captured.LineItems[0].AmountCent)
	}
	tax := captured.LineItems[1]
	if tax.Name != "HST (13%)" || tax.AmountCent != 241 || tax.Quantity != 1 {
		t.Errorf("tax line = %+v, want HST (13%%) 241 x1", tax)
	}

	// Metadata must reconstruct the order on its own.
	meta := captured.Metadata
	if meta["orderNumber"] != sess.OrderNumber {
		t.Error("metadata order number mismatch")
	}
	for _, key := range []string{"customerName", "customerEmail", "customerPhone", "pickupTime", "items", "subtotal", "tax", "total"} {
		if meta[key] == "" {
			t.Errorf("metadata missing %q", key)
		}
	}
	if meta["total"] != "20.91" {
		t.Errorf("metadata total = %s, want 20.91", meta["total"])
	}
}

func TestCreateCardSessionProviderFailure(t *testing.T) {
	provider := &mockProvider{
		createFn: func(ctx context.Context, in payment.CreateSessionInput) (payment.Session, error) {
			return payment.Session{}, errors.New("stripe unreachable")
		},
	}
	svc := NewCheckoutService(&mockStore{}, provider, &mockDispatcher{})

	_, err := svc.CreateCardSession(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected provider failure to surface")
	}
	if IsValidationError(err) {
		t.Error("provider failure is not a validation error")
	}
}

func TestCreateCardSessionRefusedWhenGateClosed(t *testing.T) {
	store := &mockStore{
		getSettingFn: func(ctx context.Context, key string) (database.Setting, error) {
			return database.Setting{Key: key, Value: false}, nil
		},
	}
	provider := &mockProvider{
		createFn: func(ctx context.Context, in payment.CreateSessionInput) (payment.Session, error) {
			t.Fatal("no session may be created while the gate is closed")
			return payment.Session{}, nil
		},
	}
	svc := NewCheckoutService(store, provider, &mockDispatcher{})

	_, err := svc.CreateCardSession(context.Background(), validRequest())
	if !errors.Is(err, ErrPickupClosed) {
		t.Errorf("err = %v, want ErrPickupClosed", err)
	}
}
