package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-bindexpr/internal/helpers"
)

// FromBytes serves content held in memory.
type FromBytes struct {
	content   []byte
	sourceURL *url.URL
}

// NewFromBytes returns a loader for content. Empty content, or text that is
// only whitespace, is rejected.
func NewFromBytes(content []byte) (*FromBytes, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is empty", ErrSourceNotAvailable)
	}
	if !hasBinaryCharacters(content) && len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("%w: content contains only whitespace", ErrSourceNotAvailable)
	}

	u, err := url.Parse("bytes://inline/" + helpers.ShortID(string(content), 8))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}
	return &FromBytes{content: content, sourceURL: u}, nil
}

// NewFromString returns a loader for s.
func NewFromString(s string) (*FromBytes, error) {
	return NewFromBytes([]byte(s))
}

func (l *FromBytes) String() string {
	return fmt.Sprintf("loader.FromBytes{Bytes: %d}", len(l.content))
}

func (l *FromBytes) GetReader(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

func (l *FromBytes) GetSourceURL() *url.URL {
	return l.sourceURL
}

// hasBinaryCharacters reports whether data holds NUL or control bytes other
// than common whitespace.
func hasBinaryCharacters(data []byte) bool {
	for _, b := range data {
		if b == 0 || (b < 32 && b != '\n' && b != '\r' && b != '\t') {
			return true
		}
	}
	return false
}
