// Package platform declares the interfaces shared by expression evaluators
// and the code that drives them.
package platform

import (
	"context"

	"github.com/robbyt/go-bindexpr/platform/data"
)

// EvalOnly evaluates a prepared expression.
type EvalOnly interface {
	// Eval evaluates the expression the evaluator was built with. Scope data
	// comes from the evaluator's data provider, so per-request values are
	// placed in ctx beforehand with AddDataToContext.
	Eval(ctx context.Context) (Response, error)
}

// Evaluator pairs evaluation with data preparation. The two steps may run
// in different places, linked only by the context.
type Evaluator interface {
	EvalOnly
	data.Setter
}

// Response is the result of one evaluation.
type Response interface {
	// Type classifies the result value.
	Type() data.Types

	// Inspect returns a printable form of the result.
	Inspect() string

	// Interface returns the result as a Go value.
	Interface() any

	// GetExpressionID returns the ID of the evaluator that produced it.
	GetExpressionID() string

	// GetExecTime returns how long the evaluation took.
	GetExecTime() string
}
