package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendDispatcher sends the two emails through Resend.
type ResendDispatcher struct {
	client    *resend.Client
	fromEmail string
	chefEmail string
}

func NewResendDispatcher(apiKey, fromEmail, chefEmail string) *ResendDispatcher {
	return &ResendDispatcher{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		chefEmail: chefEmail,
	}
}

// DispatchOrder sends the customer confirmation and the chef alert. Both
// are attempted even when the first fails; errors are joined so the
// caller can log one line.
func (d *ResendDispatcher) DispatchOrder(ctx context.Context, n OrderNotification) error {
	var errs []error

	_, err := d.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("Mama Favourite Kitchen <%s>", d.fromEmail),
		To:      []string{n.CustomerEmail},
		Subject: fmt.Sprintf("Order Confirmation #%s", n.OrderNumber),
		Html:    customerEmailHTML(n),
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("customer email: %w", err))
	}

	_, err = d.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("Order Alerts <%s>", d.fromEmail),
		To:      []string{d.chefEmail},
		Subject: fmt.Sprintf("NEW ORDER #%s - Pickup %s", n.OrderNumber, n.PickupTime),
		Html:    chefEmailHTML(n),
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("chef email: %w", err))
	}

	return errors.Join(errs...)
}
