package loader

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/robbyt/go-bindexpr/platform/loader/httpauth"
)

const userAgent = "go-bindexpr/http-loader"

// HTTPOptions configures FromHTTP. Start from DefaultHTTPOptions.
type HTTPOptions struct {
	// Timeout bounds each request.
	Timeout time.Duration

	// TLSConfig replaces the default TLS configuration when set.
	TLSConfig *tls.Config

	// InsecureSkipVerify disables certificate verification. For tests only.
	InsecureSkipVerify bool

	// Authenticator is applied to every request.
	Authenticator httpauth.Authenticator

	// Headers are set on every request before authentication.
	Headers map[string]string
}

// DefaultHTTPOptions returns a 30 second timeout, verified TLS and no
// authentication.
func DefaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Timeout:       30 * time.Second,
		Authenticator: httpauth.NewNoAuth(),
		Headers:       make(map[string]string),
	}
}

// WithTimeout returns a copy with Timeout set.
func (o *HTTPOptions) WithTimeout(d time.Duration) *HTTPOptions {
	c := o.clone()
	c.Timeout = d
	return c
}

// WithAuthenticator returns a copy with Authenticator set.
func (o *HTTPOptions) WithAuthenticator(a httpauth.Authenticator) *HTTPOptions {
	c := o.clone()
	c.Authenticator = a
	return c
}

// WithHeader returns a copy with one more header.
func (o *HTTPOptions) WithHeader(key, value string) *HTTPOptions {
	c := o.clone()
	c.Headers[key] = value
	return c
}

func (o *HTTPOptions) clone() *HTTPOptions {
	c := *o
	c.Headers = maps.Clone(o.Headers)
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	return &c
}

// FromHTTP fetches a source over HTTP or HTTPS.
type FromHTTP struct {
	url       string
	sourceURL *url.URL
	options   *HTTPOptions
	client    *http.Client
}

// NewFromHTTP returns a loader for rawURL with DefaultHTTPOptions.
func NewFromHTTP(rawURL string) (*FromHTTP, error) {
	return NewFromHTTPWithOptions(rawURL, DefaultHTTPOptions())
}

// NewFromHTTPWithOptions returns a loader for rawURL. A nil options value
// means DefaultHTTPOptions.
func NewFromHTTPWithOptions(rawURL string, options *HTTPOptions) (*FromHTTP, error) {
	sourceURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}
	if sourceURL.Scheme != "http" && sourceURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, rawURL)
	}
	if options == nil {
		options = DefaultHTTPOptions()
	}
	if options.Authenticator == nil {
		options = options.WithAuthenticator(httpauth.NewNoAuth())
	}

	client := &http.Client{Timeout: options.Timeout}
	if options.InsecureSkipVerify || options.TLSConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if options.TLSConfig != nil {
			transport.TLSClientConfig = options.TLSConfig
		} else {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		client.Transport = transport
	}

	return &FromHTTP{
		url:       rawURL,
		sourceURL: sourceURL,
		options:   options,
		client:    client,
	}, nil
}

func (l *FromHTTP) String() string {
	return fmt.Sprintf("loader.FromHTTP{URL: %s, Auth: %s}", l.url, l.options.Authenticator.Name())
}

// GetReader issues a GET request. Responses outside the 2xx range fail
// with ErrSourceNotAvailable.
func (l *FromHTTP) GetReader(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range l.options.Headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if err := l.options.Authenticator.AuthenticateWithContext(ctx, req); err != nil {
		return nil, fmt.Errorf("%s authentication failed: %w", l.options.Authenticator.Name(), err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrSourceNotAvailable, resp.StatusCode, resp.Status)
	}
	return resp.Body, nil
}

func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}
