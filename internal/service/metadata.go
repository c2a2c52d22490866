package service

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/mamafavourite/api/internal/pricing"
)

// Session metadata is the single source of truth for what was ordered:
// the client cannot be trusted to resubmit order details after payment,
// so everything needed to reconstruct the order rides on the session.

const (
	metaOrderNumber         = "orderNumber"
	metaCustomerName        = "customerName"
	metaCustomerEmail       = "customerEmail"
	metaCustomerPhone       = "customerPhone"
	metaPickupTime          = "pickupTime"
	metaSpecialInstructions = "specialInstructions"
	metaItems               = "items"
	metaSubtotal            = "subtotal"
	metaTax                 = "tax"
	metaTotal               = "total"
)

func encodeMetadata(orderNumber string, req CheckoutRequest, quote pricing.Quote) map[string]string {
	return map[string]string{
		metaOrderNumber:         orderNumber,
		metaCustomerName:        req.CustomerName,
		metaCustomerEmail:       req.CustomerEmail,
		metaCustomerPhone:       req.CustomerPhone,
		metaPickupTime:          req.PickupTime,
		metaSpecialInstructions: req.SpecialInstructions,
		metaItems:               string(marshalItems(req.Items)),
		metaSubtotal:            quote.Subtotal.StringFixed(2),
		metaTax:                 quote.Tax.StringFixed(2),
		metaTotal:               quote.Total.StringFixed(2),
	}
}

// sessionOrder is a checkout decoded back out of session metadata.
type sessionOrder struct {
	OrderNumber string
	Request     CheckoutRequest
	Quote       pricing.Quote
}

func decodeMetadata(meta map[string]string) (sessionOrder, error) {
	orderNumber := meta[metaOrderNumber]
	if orderNumber == "" {
		return sessionOrder{}, ErrSessionNoMetadata
	}

	var items []CartItem
	if raw := meta[metaItems]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return sessionOrder{}, ErrSessionNoMetadata
		}
	}

	return sessionOrder{
		OrderNumber: orderNumber,
		Request: CheckoutRequest{
			CustomerName:        meta[metaCustomerName],
			CustomerEmail:       meta[metaCustomerEmail],
			CustomerPhone:       meta[metaCustomerPhone],
			PickupTime:          meta[metaPickupTime],
			SpecialInstructions: meta[metaSpecialInstructions],
			Items:               items,
		},
		Quote: pricing.Quote{
			Subtotal: parseMoney(meta[metaSubtotal]),
			Tax:      parseMoney(meta[metaTax]),
			Total:    parseMoney(meta[metaTotal]),
		},
	}, nil
}

func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
