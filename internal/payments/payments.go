// Package payments wraps the external checkout provider. The core only ever
// consumes "is this session paid" plus the hosted-checkout URL.
package payments

import "context"

type LineItem struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	UnitAmountCents int64  `json:"unit_amount_cents"`
	Quantity        int    `json:"quantity"`
}

type CreateSessionRequest struct {
	ClientReference string     `json:"client_reference_id"`
	Currency        string     `json:"currency"`
	LineItems       []LineItem `json:"line_items"`
	SuccessURL      string     `json:"success_url"`
	CancelURL       string     `json:"cancel_url"`
}

type Session struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Paid bool   `json:"paid"`
}

type Provider interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error)
	RetrieveSession(ctx context.Context, id string) (Session, error)
}
