// Package bindexpr evaluates compiled binding expressions against data
// supplied by providers.
//
// Expressions are trees of ast nodes built by a parser or by hand; property
// access is compiled to accessors from one of the hosts packages. The
// constructors here wire an expression to the usual data providers.
package bindexpr

import (
	"log/slog"

	"github.com/robbyt/go-bindexpr/ast"
	"github.com/robbyt/go-bindexpr/evaluator"
)

// FromExpression creates an evaluator whose scope is the data added to
// each context with AddDataToContext.
func FromExpression(expr *ast.SourceWrapped, handler slog.Handler) (*evaluator.Evaluator, error) {
	return evaluator.New(expr, withHandler(handler)...)
}

// FromExpressionWithData creates an evaluator whose scope is staticData
// merged with the data added to each context. Context data wins on
// conflicting keys.
func FromExpressionWithData(
	expr *ast.SourceWrapped,
	staticData map[string]any,
	handler slog.Handler,
) (*evaluator.Evaluator, error) {
	return evaluator.New(expr, append(withHandler(handler), evaluator.WithStaticData(staticData))...)
}

func withHandler(handler slog.Handler) []evaluator.Option {
	if handler == nil {
		return nil
	}
	return []evaluator.Option{evaluator.WithLogHandler(handler)}
}
