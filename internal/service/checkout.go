package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/notify"
	"github.com/mamafavourite/api/internal/payment"
)

// CheckoutService handles both payment paths and verification.
type CheckoutService struct {
	store    Store
	provider payment.Provider
	notifier notify.Dispatcher
}

func NewCheckoutService(store Store, provider payment.Provider, notifier notify.Dispatcher) *CheckoutService {
	return &CheckoutService{store: store, provider: provider, notifier: notifier}
}

// PlaceOrder is the pay-at-pickup path: validates, prices server-side,
// inserts the order as pending, then dispatches notifications
// best-effort. The insert must succeed before any side effect runs.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (database.Order, error) {
	if err := req.validate(); err != nil {
		return database.Order{}, err
	}

	open, err := pickupOpen(ctx, s.store)
	if err != nil {
		return database.Order{}, err
	}
	if !open {
		return database.Order{}, ErrPickupClosed
	}

	quote := req.quote()

	// Retry with a fresh number on the unlikely generator collision.
	var order database.Order
	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		order, err = s.store.CreateOrder(ctx, database.CreateOrderParams{
			OrderNumber:         newOrderNumber(),
			CustomerName:        req.CustomerName,
			CustomerEmail:       req.CustomerEmail,
			CustomerPhone:       req.CustomerPhone,
			Items:               marshalItems(req.Items),
			Subtotal:            database.DecimalToNumeric(quote.Subtotal),
			Tax:                 database.DecimalToNumeric(quote.Tax),
			Total:               database.DecimalToNumeric(quote.Total),
			Status:              enum.OrderStatusPending,
			PickupTime:          req.PickupTime,
			SpecialInstructions: optionalText(req.SpecialInstructions),
		})
		if err == nil {
			lastErr = nil
			break
		}
		if isOrderNumberConflict(err) {
			lastErr = err
			continue
		}
		return database.Order{}, fmt.Errorf("create order: %w", err)
	}
	if lastErr != nil {
		return database.Order{}, fmt.Errorf("create order: %w", lastErr)
	}

	// The order is durable; notification failure must not surface.
	if err := s.notifier.DispatchOrder(ctx, notificationFor(order, req.Items)); err != nil {
		log.Printf("ERROR: dispatch notifications for %s: %v", order.OrderNumber, err)
	}

	return order, nil
}

// CardSession is the response of the hosted-payment path.
type CardSession struct {
	URL         string
	SessionID   string
	OrderNumber string
}

// CreateCardSession builds a hosted checkout session carrying the whole
// order in its metadata. No order row is written here; creation is
// deferred to VerifyPayment so abandoned payments leave no state.
func (s *CheckoutService) CreateCardSession(ctx context.Context, req CheckoutRequest) (CardSession, error) {
	if err := req.validate(); err != nil {
		return CardSession{}, err
	}

	open, err := pickupOpen(ctx, s.store)
	if err != nil {
		return CardSession{}, err
	}
	if !open {
		return CardSession{}, ErrPickupClosed
	}

	quote := req.quote()
	orderNumber := newOrderNumber()

	lineItems := make([]payment.LineItem, 0, len(req.Items)+1)
	for _, item := range req.Items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Name,
			AmountCent: toCents(item.Price),
			Quantity:   int64(item.Quantity),
		})
	}
	// Tax rides as its own line so the hosted page total matches ours.
	lineItems = append(lineItems, payment.LineItem{
		Name:       "HST (13%)",
		AmountCent: toCents(quote.Tax),
		Quantity:   1,
	})

	sess, err := s.provider.CreateSession(ctx, payment.CreateSessionInput{
		LineItems:     lineItems,
		CustomerEmail: req.CustomerEmail,
		Metadata:      encodeMetadata(orderNumber, req, quote),
	})
	if err != nil {
		return CardSession{}, fmt.Errorf("create payment session: %w", err)
	}

	return CardSession{
		URL:         sess.URL,
		SessionID:   sess.ID,
		OrderNumber: orderNumber,
	}, nil
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func toCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func notificationFor(order database.Order, items []CartItem) notify.OrderNotification {
	nItems := make([]notify.Item, len(items))
	for i, item := range items {
		nItems[i] = notify.Item{Name: item.Name, Price: item.Price, Quantity: item.Quantity}
	}
	return notify.OrderNotification{
		OrderNumber:         order.OrderNumber,
		CustomerName:        order.CustomerName,
		CustomerEmail:       order.CustomerEmail,
		CustomerPhone:       order.CustomerPhone,
		Items:               nItems,
		Subtotal:            database.NumericToDecimal(order.Subtotal),
		Tax:                 database.NumericToDecimal(order.Tax),
		Total:               database.NumericToDecimal(order.Total),
		PickupTime:          order.PickupTime,
		SpecialInstructions: order.SpecialInstructions.String,
	}
}
