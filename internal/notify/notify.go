// Package notify sends the customer confirmation and the staff alert for
// a new order. Dispatch is best-effort: callers log failures and move on,
// because the order row is already durable by the time this runs.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one ordered line as it appears in the emails.
type Item struct {
	Name     string
	Price    decimal.Decimal
	Quantity int32
}

// OrderNotification is everything the two emails need.
type OrderNotification struct {
	OrderNumber         string
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	Items               []Item
	Subtotal            decimal.Decimal
	Tax                 decimal.Decimal
	Total               decimal.Decimal
	PickupTime          string
	SpecialInstructions string
}

// Dispatcher sends order notifications.
type Dispatcher interface {
	DispatchOrder(ctx context.Context, n OrderNotification) error
}

func itemRows(items []Item) string {
	var b strings.Builder
	for _, it := range items {
		line := it.Price.Mul(decimal.NewFromInt32(it.Quantity))
		fmt.Fprintf(&b,
			`<tr><td style="padding:8px;border-bottom:1px solid #eee;">%dx %s</td>`+
				`<td style="padding:8px;border-bottom:1px solid #eee;text-align:right;">$%s</td></tr>`,
			it.Quantity, html.EscapeString(it.Name), line.StringFixed(2))
	}
	return b.String()
}

func instructionsBlock(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf(
		`<div style="background:#fff9c4;padding:12px;margin:16px 0;"><strong>Special Instructions:</strong> %s</div>`,
		html.EscapeString(s))
}

func customerEmailHTML(n OrderNotification) string {
	return fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<h1 style="color:#ea580c;">Mama Favourite Kitchen</h1>
<p>Hi %s,</p>
<p>Thank you for your order! We're preparing your food.</p>
<p><strong>Order #%s</strong><br>Pickup Time: %s</p>
<table style="width:100%%;border-collapse:collapse;">%s
<tr><td style="padding:8px;">Subtotal</td><td style="padding:8px;text-align:right;">$%s</td></tr>
<tr><td style="padding:8px;">Tax (13%% HST)</td><td style="padding:8px;text-align:right;">$%s</td></tr>
<tr style="font-weight:bold;"><td style="padding:8px;color:#ea580c;">Total</td><td style="padding:8px;text-align:right;color:#ea580c;">$%s</td></tr>
</table>
%s
<p>Pickup Location:<br>45 Cork St E, Guelph, ON N1H 2W7<br>(519) 824-5741</p>
</body></html>`,
		html.EscapeString(n.CustomerName), n.OrderNumber, html.EscapeString(n.PickupTime),
		itemRows(n.Items), n.Subtotal.StringFixed(2), n.Tax.StringFixed(2), n.Total.StringFixed(2),
		instructionsBlock(n.SpecialInstructions))
}

func chefEmailHTML(n OrderNotification) string {
	return fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<h1 style="background:#ea580c;color:#fff;padding:16px;">NEW ORDER #%s</h1>
<p style="font-size:18px;"><strong>Pickup: %s</strong></p>
<p><strong>Name:</strong> %s<br><strong>Phone:</strong> %s<br><strong>Email:</strong> %s</p>
<table style="width:100%%;border-collapse:collapse;">%s</table>
%s
<p style="font-size:20px;font-weight:bold;">Total: $%s</p>
</body></html>`,
		n.OrderNumber, html.EscapeString(n.PickupTime), html.EscapeString(n.CustomerName),
		html.EscapeString(n.CustomerPhone), html.EscapeString(n.CustomerEmail),
		itemRows(n.Items), instructionsBlock(n.SpecialInstructions), n.Total.StringFixed(2))
}
