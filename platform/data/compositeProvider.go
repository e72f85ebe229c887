package data

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// CompositeProvider layers several providers. Later providers override
// values from earlier ones.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider returns a provider querying providers in order. Nil
// entries are ignored.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{
		providers: providers,
	}
}

// GetData deep merges the data of every provider. It stops at the first
// provider error.
func (p *CompositeProvider) GetData(ctx context.Context) (map[string]any, error) {
	result := make(map[string]any)

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		d, err := provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("error from provider %d: %w", i, err)
		}
		result = deepMerge(result, d)
	}

	return result, nil
}

// deepMerge merges src into a copy of dst. Nested maps merge recursively;
// any other value from src replaces the one in dst.
func deepMerge(dst, src map[string]any) map[string]any {
	result := maps.Clone(dst)

	for k, srcVal := range src {
		dstMap, dstIsMap := result[k].(map[string]any)
		srcMap, srcIsMap := srcVal.(map[string]any)
		if dstIsMap && srcIsMap {
			result[k] = deepMerge(dstMap, srcMap)
			continue
		}
		result[k] = srcVal
	}

	return result
}

// AddDataToContext offers the data to every provider in order. Static
// providers refusing runtime data are skipped. It fails only when no
// provider accepted the data.
func (p *CompositeProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	finalCtx := ctx

	var errs, staticErrs []error
	accepted, dynamic := 0, 0

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		_, isStatic := provider.(*StaticProvider)
		if !isStatic {
			dynamic++
		}

		nextCtx, err := provider.AddDataToContext(finalCtx, data...)
		if err != nil {
			wrapped := fmt.Errorf("error from provider %d: %w", i, err)
			if isStatic && errors.Is(err, ErrStaticProviderNoRuntimeUpdates) {
				staticErrs = append(staticErrs, wrapped)
			} else {
				errs = append(errs, wrapped)
			}
			continue
		}

		finalCtx = nextCtx
		if !isStatic {
			accepted++
		}
	}

	if dynamic == 0 && len(staticErrs) > 0 {
		return ctx, errors.Join(staticErrs...)
	}
	if dynamic > 0 && accepted == 0 && len(errs) > 0 {
		return ctx, errors.Join(errs...)
	}
	return finalCtx, nil
}
