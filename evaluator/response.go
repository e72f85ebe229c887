package evaluator

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/robbyt/go-bindexpr/internal/helpers"
	"github.com/robbyt/go-bindexpr/platform"
	"github.com/robbyt/go-bindexpr/platform/data"
)

// execResult is the platform.Response of an Evaluator.
type execResult struct {
	value    any
	execTime time.Duration
	exprID   string
	logger   *slog.Logger
}

var _ platform.Response = (*execResult)(nil)

func newEvalResult(handler slog.Handler, value any, execTime time.Duration, exprID string) *execResult {
	_, logger := helpers.SetupLogger(handler, "bindexpr", "execResult")
	return &execResult{
		value:    value,
		execTime: execTime,
		exprID:   exprID,
		logger:   logger,
	}
}

func (r *execResult) String() string {
	return fmt.Sprintf("ExecResult{Type: %s, Value: %s, ExecTime: %s, ExpressionID: %s}",
		r.Type(), r.Inspect(), r.GetExecTime(), r.GetExpressionID())
}

func (r *execResult) Type() data.Types {
	t := data.TypeOf(r.value)
	if t == data.OBJECT {
		r.logger.Debug("result is a host object", "type", fmt.Sprintf("%T", r.value))
	}
	return t
}

func (r *execResult) Inspect() string {
	switch v := r.value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(r.value)
}

func (r *execResult) Interface() any { return r.value }

func (r *execResult) GetExpressionID() string { return r.exprID }

func (r *execResult) GetExecTime() string { return r.execTime.String() }
