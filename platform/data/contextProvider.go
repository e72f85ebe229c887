package data

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/robbyt/go-bindexpr/platform/constants"
)

// ContextProvider keeps scope data in a context.Context under a key.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider returns a ContextProvider storing data under contextKey.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{
		contextKey: contextKey,
	}
}

// GetData returns the map stored in ctx, or an empty map if there is none.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, ErrEmptyContextKey
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]any), nil
	}

	d, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected map[string]any, got %T", ErrInvalidData, value)
	}
	return d, nil
}

// AddDataToContext merges the maps into the data already in ctx and returns
// the derived context. Nested maps are merged recursively and later values
// replace earlier ones. Entries with empty keys are skipped and reported in
// the joined error; the remaining entries are still stored.
func (p *ContextProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, ErrEmptyContextKey
	}

	var errz []error
	toStore := make(map[string]any)

	if existing, ok := ctx.Value(p.contextKey).(map[string]any); ok {
		maps.Copy(toStore, existing)
	}

	for _, dataMap := range data {
		for key, value := range dataMap {
			if key == "" {
				errz = append(errz, ErrEmptyKey)
				continue
			}
			processed, err := copyValue(value)
			if err != nil {
				errz = append(errz, fmt.Errorf("processing value for key %q: %w", key, err))
				continue
			}
			mergeInto(toStore, key, processed)
		}
	}

	return context.WithValue(ctx, p.contextKey, toStore), errors.Join(errz...)
}

// copyValue copies nested maps so stored data does not alias the caller's
// maps. Other values are stored as is.
func copyValue(value any) (any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return value, nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		if k == "" {
			return nil, fmt.Errorf("%w in nested maps", ErrEmptyKey)
		}
		c, err := copyValue(v)
		if err != nil {
			return nil, fmt.Errorf("processing nested value for key %q: %w", k, err)
		}
		result[k] = c
	}
	return result, nil
}

func mergeInto(target map[string]any, key string, value any) {
	if newMap, ok := value.(map[string]any); ok {
		if existing, ok := target[key].(map[string]any); ok {
			merged := maps.Clone(existing)
			for k, v := range newMap {
				mergeInto(merged, k, v)
			}
			target[key] = merged
			return
		}
	}
	target[key] = value
}
