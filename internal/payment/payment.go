// Package payment wraps the hosted-checkout provider. The service layer
// talks to the Provider interface only; the Stripe-backed implementation
// lives in stripe.go.
package payment

import "context"

// PaymentStatus values reported by the provider for a checkout session.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// LineItem is one priced line on the hosted payment page. Amounts are in
// cents; the tax line is passed the same way as item lines.
type LineItem struct {
	Name       string
	AmountCent int64
	Quantity   int64
}

// CreateSessionInput carries everything the provider needs to build a
// hosted session. Metadata is the order-reconstructing payload that
// verification reads back; the provider must return it verbatim.
type CreateSessionInput struct {
	LineItems     []LineItem
	CustomerEmail string
	Metadata      map[string]string
}

// Session is the provider's view of a checkout session.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

// Provider creates and retrieves hosted checkout sessions.
type Provider interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (Session, error)
	RetrieveSession(ctx context.Context, id string) (Session, error)
}
