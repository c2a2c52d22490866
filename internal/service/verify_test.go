package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/payment"
)

func paidSession(id, orderNumber string) payment.Session {
	return payment.Session{
		ID:            id,
		PaymentStatus: payment.StatusPaid,
		Metadata: map[string]string{
			"orderNumber":   orderNumber,
			"customerName":  "Jane",
			"customerEmail": "jane@example.com",
			"customerPhone": "(519) 555-0123",
			"pickupTime":    "30 minutes",
			"items":         `[{"id":"jerk-dinner","name":"Jerk Chicken Dinner","price":"18.50","quantity":1}]`,
			"subtotal":      "18.50",
			"tax":           "2.41",
			"total":         "20.91",
		},
	}
}

func TestVerifyRequiresSessionID(t *testing.T) {
	svc := NewCheckoutService(&mockStore{}, &mockProvider{}, &mockDispatcher{})

	_, err := svc.VerifyPayment(context.Background(), "")
	if !errors.Is(err, ErrSessionIDRequired) {
		t.Errorf("err = %v, want ErrSessionIDRequired", err)
	}
}

func TestVerifyUnpaidSessionWritesNothing(t *testing.T) {
	provider := &mockProvider{
		retrieveFn: func(ctx context.Context, id string) (payment.Session, error) {
			return payment.Session{ID: id, PaymentStatus: payment.StatusUnpaid}, nil
		},
	}
	store := &mockStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			t.Fatal("unpaid session must not insert an order")
			return database.Order{}, nil
		},
	}
	dispatcher := &mockDispatcher{}
	svc := NewCheckoutService(store, provider, dispatcher)

	res, err := svc.VerifyPayment(context.Background(), "cs_unpaid")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if res.Success {
		t.Error("unpaid session must not verify as success")
	}
	if res.Message != "Payment not completed" {
		t.Errorf("message = %q", res.Message)
	}
	if len(dispatcher.calls) != 0 {
		t.Error("unpaid session must not notify")
	}
}

func TestVerifyMissingMetadata(t *testing.T) {
	provider := &mockProvider{
		retrieveFn: func(ctx context.Context, id string) (payment.Session, error) {
			return payment.Session{ID: id, PaymentStatus: payment.StatusPaid}, nil
		},
	}
	svc := NewCheckoutService(&mockStore{}, provider, &mockDispatcher{})

	_, err := svc.VerifyPayment(context.Background(), "cs_nometa")
	if !errors.Is(err, ErrSessionNoMetadata) {
		t.Errorf("err = %v, want ErrSessionNoMetadata", err)
	}
}

func TestVerifyPersistsOnceAndNotifiesOnce(t *testing.T) {
	const orderNumber = "MFK-TEST1234-ABCD"

	var inserted []database.Order
	store := &mockStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			order := orderFromParams(arg)
			inserted = append(inserted, order)
			return order, nil
		},
		getOrderByNumberFn: func(ctx context.Context, n string) (database.Order, error) {
			for _, o := range inserted {
				if o.OrderNumber == n {
					return o, nil
				}
			}
			return database.Order{}, pgx.ErrNoRows
		},
	}
	provider := &mockProvider{
		retrieveFn: func(ctx context.Context, id string) (payment.Session, error) {
			return paidSession(id, orderNumber), nil
		},
	}
	dispatcher := &mockDispatcher{}
	svc := NewCheckoutService(store, provider, dispatcher)

	first, err := svc.VerifyPayment(context.Background(), "cs_paid")
	if err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if !first.Success || !first.Created || first.AlreadyProcessed {
		t.Errorf("first call: %+v, want success+created", first)
	}
	if first.Order.Status != enum.OrderStatusPaid {
		t.Errorf("status = %s, want paid", first.Order.Status)
	}
	if first.OrderNumber != orderNumber {
		t.Errorf("order number = %s", first.OrderNumber)
	}
	if !first.Total.Equal(decimal.RequireFromString("20.91")) {
		t.Errorf("total = %s, want 20.91", first.Total)
	}

	// Re-verifying the same session, any number of times, changes nothing.
	for i := 0; i < 3; i++ {
		again, err := svc.VerifyPayment(context.Background(), "cs_paid")
		if err != nil {
			t.Fatalf("verify #%d: %v", i+2, err)
		}
		if !again.Success || !again.AlreadyProcessed || again.Created {
			t.Errorf("repeat call: %+v, want success+alreadyProcessed", again)
		}
		if again.OrderNumber != first.OrderNumber || !again.Total.Equal(first.Total) {
			t.Error("repeat call must return the same order details")
		}
	}

	if len(inserted) != 1 {
		t.Errorf("inserts = %d, want exactly 1", len(inserted))
	}
	if len(dispatcher.calls) != 1 {
		t.Errorf("dispatch calls = %d, want exactly 1", len(dispatcher.calls))
	}
}

// Two verifications race past the existence check; the unique constraint
// picks the winner and the loser still reports success without a second
// notification.
func TestVerifyConflictLoserStillSucceeds(t *testing.T) {
	const orderNumber = "MFK-RACE5678-WXYZ"
	winner := database.Order{
		OrderNumber:   orderNumber,
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		Status:        enum.OrderStatusPaid,
		PickupTime:    "30 minutes",
		Total:         database.DecimalToNumeric(decimal.RequireFromString("20.91")),
	}

	lookups := 0
	store := &mockStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			return database.Order{}, uniqueViolation()
		},
		getOrderByNumberFn: func(ctx context.Context, n string) (database.Order, error) {
			lookups++
			if lookups == 1 {
				// Pre-insert check: nothing there yet.
				return database.Order{}, pgx.ErrNoRows
			}
			return winner, nil
		},
	}
	provider := &mockProvider{
		retrieveFn: func(ctx context.Context, id string) (payment.Session, error) {
			return paidSession(id, orderNumber), nil
		},
	}
	dispatcher := &mockDispatcher{}
	svc := NewCheckoutService(store, provider, dispatcher)

	res, err := svc.VerifyPayment(context.Background(), "cs_race")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !res.Success || !res.AlreadyProcessed || res.Created {
		t.Errorf("race loser: %+v, want success+alreadyProcessed", res)
	}
	if res.OrderNumber != orderNumber {
		t.Errorf("order number = %s", res.OrderNumber)
	}
	if len(dispatcher.calls) != 0 {
		t.Error("race loser must not notify")
	}
}

func TestVerifyNotificationFailureStillSucceeds(t *testing.T) {
	provider := &mockProvider{
		retrieveFn: func(ctx context.Context, id string) (payment.Session, error) {
			return paidSession(id, "MFK-NOTI9999-QQQQ"), nil
		},
	}
	dispatcher := &mockDispatcher{err: errors.New("resend down")}
	svc := NewCheckoutService(&mockStore{}, provider, dispatcher)

	res, err := svc.VerifyPayment(context.Background(), "cs_noti")
	if err != nil {
		t.Fatalf("notification failure must not fail verification: %v", err)
	}
	if !res.Success || !res.Created {
		t.Errorf("result: %+v, want success+created", res)
	}
}
