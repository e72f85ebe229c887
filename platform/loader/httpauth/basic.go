package httpauth

import (
	"context"
	"net/http"
)

// BasicAuth sets an RFC 7617 Authorization header. An empty Username
// leaves the request untouched.
type BasicAuth struct {
	Username string
	Password string
}

func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{Username: username, Password: password}
}

func (b *BasicAuth) Authenticate(req *http.Request) error {
	if b.Username != "" {
		req.SetBasicAuth(b.Username, b.Password)
	}
	return nil
}

func (b *BasicAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, b.Authenticate)
}

func (b *BasicAuth) Name() string { return "Basic" }
