// Package httpauth applies authentication to requests made by the HTTP
// source loader.
package httpauth

import (
	"context"
	"net/http"
)

// Authenticator adds credentials to a request in place.
type Authenticator interface {
	Authenticate(req *http.Request) error
	AuthenticateWithContext(ctx context.Context, req *http.Request) error
	Name() string
}

// applyAuthWithContext fails if ctx is already done, otherwise runs authFn.
func applyAuthWithContext(ctx context.Context, req *http.Request, authFn func(*http.Request) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return authFn(req)
}
