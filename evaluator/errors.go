package evaluator

import (
	"errors"
	"fmt"

	"github.com/robbyt/go-bindexpr/ast"
)

var (
	ErrNilExpression = errors.New("expression is nil")
	ErrNotAssignable = errors.New("expression is not assignable")
	ErrBindingName   = errors.New("variable binding has no name")
)

// EvalError reports a failed evaluation together with the source and
// location of the expression.
type EvalError struct {
	Expression *ast.SourceWrapped
	Err        error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Expression)
}

func (e *EvalError) Unwrap() error { return e.Err }

func wrapError(expr *ast.SourceWrapped, err error) error {
	if err == nil {
		return nil
	}
	var already *EvalError
	if errors.As(err, &already) {
		return err
	}
	return &EvalError{Expression: expr, Err: err}
}
