// Package service holds the order business logic: pay-at-pickup
// checkout, hosted card sessions, and idempotent payment verification.
package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/pricing"
)

const maxOrderNumberRetries = 3

// Errors returned by the checkout service.
var (
	ErrEmptyItems        = errors.New("items are required")
	ErrMissingName       = errors.New("customer name is required")
	ErrMissingEmail      = errors.New("customer email is required")
	ErrMissingPhone      = errors.New("customer phone is required")
	ErrInvalidPickupTime = errors.New("invalid pickup_time")
	ErrInvalidQuantity   = errors.New("quantity must be > 0")
	ErrInvalidPrice      = errors.New("price must be > 0")
	ErrPickupClosed      = errors.New("online ordering is currently closed")
	ErrSessionIDRequired = errors.New("session id is required")
	ErrSessionNoMetadata = errors.New("session metadata is missing order data")
)

// Store defines the DB methods checkout and verification need.
// Satisfied by *database.Queries.
type Store interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (database.Order, error)
	GetSetting(ctx context.Context, key string) (database.Setting, error)
}

// CartItem is one line of a submitted cart. Price is the unit price.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

// CheckoutRequest is the validated input for either payment path.
type CheckoutRequest struct {
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	PickupTime          string
	SpecialInstructions string
	Items               []CartItem
}

func (req *CheckoutRequest) validate() error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return ErrMissingPhone
	}
	if !enum.IsValidPickupTime(req.PickupTime) {
		return ErrInvalidPickupTime
	}
	if len(req.Items) == 0 {
		return ErrEmptyItems
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
		if !item.Price.IsPositive() {
			return fmt.Errorf("items[%d]: %w", i, ErrInvalidPrice)
		}
	}
	return nil
}

func (req *CheckoutRequest) quote() pricing.Quote {
	lines := make([]pricing.Line, len(req.Items))
	for i, item := range req.Items {
		lines[i] = pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity}
	}
	return pricing.QuoteLines(lines)
}

// IsValidationError reports whether err should map to a 400 response.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyItems) ||
		errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrMissingPhone) ||
		errors.Is(err, ErrInvalidPickupTime) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrSessionIDRequired)
}

// isOrderNumberConflict checks for a unique constraint violation on the
// order number (pgconn error code 23505).
func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newOrderNumber builds a collision-resistant human-readable identifier:
// millisecond timestamp in base36 plus four random base36 characters.
// The DB unique constraint is the real collision guard.
func newOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("MFK-%s-%s", ts, buf)
}

// pickupOpen reads the gate; a missing settings row means ordering is
// open, matching the storefront default.
func pickupOpen(ctx context.Context, store Store) (bool, error) {
	setting, err := store.GetSetting(ctx, enum.SettingPickupEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return true, nil
		}
		return false, fmt.Errorf("get pickup setting: %w", err)
	}
	return setting.Value, nil
}

func marshalItems(items []CartItem) []byte {
	data, _ := json.Marshal(items)
	return data
}
