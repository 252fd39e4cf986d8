package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

// Client talks to the payment gateway's session API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreateSession(ctx context.Context, reqBody CreateSessionRequest) (Session, error) {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return Session{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/checkout/sessions", bytes.NewReader(b))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) RetrieveSession(ctx context.Context, id string) (Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/checkout/sessions/"+id, nil)
	if err != nil {
		return Session{}, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (Session, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: payments: %v", orders.ErrExternalProvider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Session{}, orders.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Session{}, fmt.Errorf("%w: payments: status %d", orders.ErrExternalProvider, resp.StatusCode)
	}
	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return Session{}, fmt.Errorf("%w: payments: %v", orders.ErrExternalProvider, err)
	}
	return s, nil
}
