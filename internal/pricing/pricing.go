// Package pricing is the single place order money math happens.
// Every consumer (checkout, payment sessions, emails) quotes through here
// so subtotal, tax and total can never drift apart.
package pricing

import "github.com/shopspring/decimal"

// HST is Ontario's harmonized sales tax rate applied to every order.
var HST = decimal.NewFromFloat(0.13)

// Line is one cart entry as priced: unit price times quantity.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int32
}

// Quote is a fully computed order amount. Total = Subtotal + Tax always
// holds; Tax is rounded to cents before the addition.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Tax computes the HST owed on a subtotal, rounded half-up to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(HST).Round(2)
}

// QuoteLines sums the lines and applies tax.
func QuoteLines(lines []Line) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)))
	}
	return QuoteSubtotal(subtotal)
}

// QuoteSubtotal applies tax to an already-summed subtotal.
func QuoteSubtotal(subtotal decimal.Decimal) Quote {
	tax := Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
