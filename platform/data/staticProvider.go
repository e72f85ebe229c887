package data

import (
	"context"
	"maps"
)

// StaticProvider returns the same data for every evaluation. It suits
// constants known when the evaluator is built.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider returns a StaticProvider for data. A nil map is treated
// as empty.
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{data: data}
}

// GetData returns a shallow copy of the static data.
func (p *StaticProvider) GetData(ctx context.Context) (map[string]any, error) {
	return maps.Clone(p.data), nil
}

// AddDataToContext rejects runtime data. With no data it returns ctx
// unchanged and no error.
func (p *StaticProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	for _, d := range data {
		if len(d) > 0 {
			return ctx, ErrStaticProviderNoRuntimeUpdates
		}
	}
	return ctx, nil
}
