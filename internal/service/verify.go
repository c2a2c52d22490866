package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/payment"
)

// VerifyResult is the outcome of a verification call. When Success is
// false the payment simply has not completed; that is not an error and
// the customer may retry checkout.
type VerifyResult struct {
	Success          bool
	Message          string
	AlreadyProcessed bool
	Created          bool

	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	PickupTime    string
	Total         decimal.Decimal

	// Order is set on the first successful persistence so callers can
	// broadcast the insert.
	Order database.Order
}

// VerifyPayment converts a completed payment session into exactly one
// persisted order and triggers notifications exactly once. It is safe to
// call any number of times for the same session: the order number in the
// session metadata is the idempotency key, enforced by the unique
// constraint on orders.order_number.
func (s *CheckoutService) VerifyPayment(ctx context.Context, sessionID string) (VerifyResult, error) {
	if sessionID == "" {
		return VerifyResult{}, ErrSessionIDRequired
	}

	sess, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("retrieve payment session: %w", err)
	}

	if sess.PaymentStatus != payment.StatusPaid {
		return VerifyResult{Success: false, Message: "Payment not completed"}, nil
	}

	so, err := decodeMetadata(sess.Metadata)
	if err != nil {
		return VerifyResult{}, err
	}

	// Fast idempotency path: a previous verification already persisted
	// this order. Return the same payload without inserting or notifying.
	existing, err := s.store.GetOrderByNumber(ctx, so.OrderNumber)
	if err == nil {
		return successResult(existing, true, false), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return VerifyResult{}, fmt.Errorf("lookup order %s: %w", so.OrderNumber, err)
	}

	order, err := s.store.CreateOrder(ctx, database.CreateOrderParams{
		OrderNumber:         so.OrderNumber,
		CustomerName:        so.Request.CustomerName,
		CustomerEmail:       so.Request.CustomerEmail,
		CustomerPhone:       so.Request.CustomerPhone,
		Items:               marshalItems(so.Request.Items),
		Subtotal:            database.DecimalToNumeric(so.Quote.Subtotal),
		Tax:                 database.DecimalToNumeric(so.Quote.Tax),
		Total:               database.DecimalToNumeric(so.Quote.Total),
		Status:              enum.OrderStatusPaid,
		PickupTime:          so.Request.PickupTime,
		SpecialInstructions: optionalText(so.Request.SpecialInstructions),
	})
	if err != nil {
		// A concurrent verification won the insert race. That is the
		// already-processed branch, not a failure: fetch what it wrote.
		if isOrderNumberConflict(err) {
			winner, fetchErr := s.store.GetOrderByNumber(ctx, so.OrderNumber)
			if fetchErr != nil {
				return VerifyResult{}, fmt.Errorf("fetch order after conflict: %w", fetchErr)
			}
			return successResult(winner, true, false), nil
		}
		return VerifyResult{}, fmt.Errorf("save order %s: %w", so.OrderNumber, err)
	}

	// First and only persistence of this session: notify, best-effort.
	if err := s.notifier.DispatchOrder(ctx, notificationFor(order, so.Request.Items)); err != nil {
		log.Printf("ERROR: dispatch notifications for %s: %v", order.OrderNumber, err)
	}

	return successResult(order, false, true), nil
}

func successResult(order database.Order, alreadyProcessed, created bool) VerifyResult {
	return VerifyResult{
		Success:          true,
		AlreadyProcessed: alreadyProcessed,
		Created:          created,
		OrderNumber:      order.OrderNumber,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		PickupTime:       order.PickupTime,
		Total:            database.NumericToDecimal(order.Total),
		Order:            order,
	}
}
