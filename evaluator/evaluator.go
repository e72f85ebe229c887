// Package evaluator runs a compiled expression against scope data supplied
// by a data provider.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-bindexpr/ast"
	"github.com/robbyt/go-bindexpr/platform"
	"github.com/robbyt/go-bindexpr/platform/data"
)

const idLength = 12

// Evaluator evaluates one expression. It holds no per-evaluation state and
// is safe for concurrent use.
type Evaluator struct {
	id       string
	expr     *ast.SourceWrapped
	provider data.Provider

	logHandler slog.Handler
	logger     *slog.Logger
}

var _ platform.Evaluator = (*Evaluator)(nil)

// New returns an Evaluator for expr. Without WithDataProvider or
// WithStaticData the scope data is read from the context.
func New(expr *ast.SourceWrapped, opts ...Option) (*Evaluator, error) {
	if expr == nil || expr.AST == nil {
		return nil, ErrNilExpression
	}

	e := &Evaluator{expr: expr}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	e.applyDefaults()
	if err := e.validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluator configuration: %w", err)
	}
	e.setupLogger()
	e.logger = e.logger.With("exprID", e.id)

	return e, nil
}

func (e *Evaluator) String() string {
	return fmt.Sprintf("Evaluator{ID: %s, Expression: %s}", e.id, e.expr)
}

// ID returns the identifier reported in responses.
func (e *Evaluator) ID() string { return e.id }

// Expression returns the wrapped expression.
func (e *Evaluator) Expression() *ast.SourceWrapped { return e.expr }

// loadScope returns the provider data used as the scope by Eval.
func (e *Evaluator) loadScope(ctx context.Context) (map[string]any, error) {
	logger := e.logger.WithGroup("loadScope")

	scope, err := e.provider.GetData(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get scope data from provider", "error", err)
		return nil, err
	}
	if len(scope) == 0 {
		logger.DebugContext(ctx, "empty scope data returned from provider")
	}
	return scope, nil
}

// Eval evaluates the expression with the provider data as its scope.
func (e *Evaluator) Eval(ctx context.Context) (platform.Response, error) {
	logger := e.logger.WithGroup("Eval")

	scope, err := e.loadScope(ctx)
	if err != nil {
		return nil, wrapError(e.expr, fmt.Errorf("failed to get scope data: %w", err))
	}
	return e.eval(ctx, logger, scope)
}

// EvalScope evaluates the expression against scope, bypassing the provider.
// The scope may be a binding frame such as the *ast.Locals returned by
// Bindings.
func (e *Evaluator) EvalScope(ctx context.Context, scope any) (platform.Response, error) {
	return e.eval(ctx, e.logger.WithGroup("EvalScope"), scope)
}

func (e *Evaluator) eval(ctx context.Context, logger *slog.Logger, scope any) (platform.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapError(e.expr, fmt.Errorf("evaluation cancelled: %w", err))
	}

	start := time.Now()
	value, err := e.expr.Eval(scope)
	execTime := time.Since(start)
	if err != nil {
		logger.DebugContext(ctx, "evaluation failed", "error", err)
		return nil, wrapError(e.expr, err)
	}

	logger.DebugContext(ctx, "evaluation complete", "result", value, "execTime", execTime)
	return newEvalResult(e.logHandler, value, execTime, e.id), nil
}

// Assign writes value through the expression into scope and returns the
// stored value.
func (e *Evaluator) Assign(ctx context.Context, scope, value any) (any, error) {
	logger := e.logger.WithGroup("Assign")

	if !e.expr.IsAssignable() {
		return nil, wrapError(e.expr, ErrNotAssignable)
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapError(e.expr, fmt.Errorf("assignment cancelled: %w", err))
	}

	stored, err := e.expr.Assign(scope, value)
	if err != nil {
		logger.DebugContext(ctx, "assignment failed", "error", err)
		return nil, wrapError(e.expr, err)
	}
	return stored, nil
}

// AddDataToContext stores data for a later Eval through the provider.
func (e *Evaluator) AddDataToContext(ctx context.Context, d ...map[string]any) (context.Context, error) {
	return data.AddDataToContextHelper(ctx, e.logger.WithGroup("AddDataToContext"), e.provider, d...)
}

// Bindings creates the frame of a structural directive over scope. Variable
// bindings declare their name with a nil value for the directive to fill in;
// expression bindings are evaluated against scope and bound under their key.
func (e *Evaluator) Bindings(
	ctx context.Context,
	scope any,
	bindings []*ast.TemplateBinding,
) (*ast.Locals, error) {
	logger := e.logger.WithGroup("Bindings")

	values := make(map[string]any, len(bindings))
	for _, b := range bindings {
		if b == nil {
			continue
		}
		if b.KeyIsVar {
			if b.Name == "" {
				return nil, fmt.Errorf("%w: key %q", ErrBindingName, b.Key)
			}
			values[b.Name] = nil
			continue
		}
		if b.Expression == nil || b.Expression.AST == nil {
			return nil, fmt.Errorf("%w: key %q", ErrNilExpression, b.Key)
		}
		v, err := b.Expression.Eval(scope)
		if err != nil {
			logger.DebugContext(ctx, "binding failed", "key", b.Key, "error", err)
			return nil, wrapError(b.Expression, err)
		}
		values[b.Key] = v
	}

	return ast.NewLocals(scope, values), nil
}
