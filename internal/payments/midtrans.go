package payments

import (
	"fmt"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/eduflex/backend/internal/config"
)

// CheckoutSession is what the payment gateway hands back for a started checkout
type CheckoutSession struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// CheckoutOrder describes the single course being purchased
type CheckoutOrder struct {
	UserID        int
	CourseID      int
	CourseTitle   string
	AmountCents   int64
	CustomerName  string
	CustomerEmail string
}

type snapProvider struct {
	client     snap.Client
	successURL string
	cancelURL  string
}

// NewSnapProvider creates a Midtrans Snap checkout provider
func NewSnapProvider(cfg config.CheckoutConfig) *snapProvider {
	var client snap.Client
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	client.New(cfg.ServerKey, env)

	return &snapProvider{
		client:     client,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// buildRequest assembles the Snap payload for one course purchase. The
// finish callback sends the buyer back to the success page, and the
// metadata carries the identifiers the payment webhook needs to grant
// the enrollment.
func (p *snapProvider) buildRequest(orderID string, order CheckoutOrder) *snap.Request {
	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: order.AmountCents,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: order.CustomerName,
			Email: order.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       fmt.Sprintf("course-%d", order.CourseID),
				Price:    order.AmountCents,
				Qty:      1,
				Name:     truncate(order.CourseTitle, 50),
				Category: "course",
			},
		},
		Callbacks: &snap.Callbacks{
			Finish: p.successURL,
		},
		Metadata: map[string]any{
			"course_id":  order.CourseID,
			"user_id":    order.UserID,
			"cancel_url": p.cancelURL,
		},
	}
}

// CreateSession starts a hosted checkout for one course. Order IDs are
// generated here so a retried request never reuses a gateway order.
func (p *snapProvider) CreateSession(order CheckoutOrder) (*CheckoutSession, error) {
	if order.AmountCents <= 0 {
		return nil, fmt.Errorf("invalid checkout amount: %d", order.AmountCents)
	}

	orderID := fmt.Sprintf("course-%d-%s", order.CourseID, uuid.NewString())

	resp, err := p.client.CreateTransaction(p.buildRequest(orderID, order))
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout transaction: %w", err)
	}

	if resp.RedirectURL == "" {
		return nil, fmt.Errorf("checkout gateway returned no redirect url for order %s", orderID)
	}

	return &CheckoutSession{
		OrderID:     orderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// Midtrans caps item names at 50 characters
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
