// Package data supplies the scope data that expressions are evaluated
// against.
package data

import (
	"context"
)

// Getter retrieves the scope data for one evaluation.
type Getter interface {
	GetData(ctx context.Context) (map[string]any, error)
}

// Setter stores data for a later evaluation in a context. Preparing data and
// evaluating may happen in different places; the context carries the data
// between them.
type Setter interface {
	// AddDataToContext returns a context enriched with the given maps. Later
	// maps win over earlier ones for duplicate keys.
	//
	// Example:
	//  ctx, err := eval.AddDataToContext(ctx, map[string]any{"user": user})
	//  if err != nil {
	//      return err
	//  }
	//  result, err := eval.Eval(ctx)
	AddDataToContext(ctx context.Context, data ...map[string]any) (context.Context, error)
}

// Provider is both a Getter and a Setter.
type Provider interface {
	Getter
	Setter
}
