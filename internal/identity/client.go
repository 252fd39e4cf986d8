package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

// Client is the HTTP directory implementation against the identity service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.get(ctx, c.BaseURL+"/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var out User
	if err := c.get(ctx, c.BaseURL+"/users/"+id, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: identity: %v", orders.ErrExternalProvider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return orders.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: identity: status %d", orders.ErrExternalProvider, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: identity: %v", orders.ErrExternalProvider, err)
	}
	return nil
}
