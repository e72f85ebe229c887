// Package loader fetches the source of Starlark modules and WASM plugins
// from memory, disk or HTTP.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"
)

// Loader opens a source. Each call to GetReader returns a fresh reader that
// the caller closes.
type Loader interface {
	GetReader(ctx context.Context) (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

// ReadAll reads the whole source of l. An empty source is an error.
func ReadAll(ctx context.Context, l Loader) ([]byte, error) {
	r, err := l.GetReader(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", l.GetSourceURL(), err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInputEmpty, l.GetSourceURL())
	}
	return b, nil
}
