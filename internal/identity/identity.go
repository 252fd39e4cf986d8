// Package identity is the contract with the external auth provider. The API
// itself never verifies credentials; it trusts the identity the auth layer in
// front of it established.
package identity

import (
	"context"
	"net/http"
)

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u User) FullName() string {
	if u.FirstName == "" {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Authenticator extracts the authenticated actor from a request. Empty ID
// means unauthenticated.
type Authenticator interface {
	UserID(r *http.Request) string
}

// Directory lists and resolves user profiles for display paths.
type Directory interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (User, error)
}

// HeaderAuth trusts the user header stamped by the auth proxy in front of the
// API (the proxy strips the header from client traffic).
type HeaderAuth struct{ Header string }

func (a HeaderAuth) UserID(r *http.Request) string {
	h := a.Header
	if h == "" {
		h = "X-User-Id"
	}
	return r.Header.Get(h)
}
