package evaluator

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robbyt/go-bindexpr/internal/helpers"
	"github.com/robbyt/go-bindexpr/platform/constants"
	"github.com/robbyt/go-bindexpr/platform/data"
)

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithLogHandler sets the log handler. It replaces any logger set earlier.
func WithLogHandler(handler slog.Handler) Option {
	return func(e *Evaluator) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		e.logHandler = handler
		e.logger = nil
		return nil
	}
}

// WithLogger sets the logger. It replaces any handler set earlier.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		e.logger = logger
		e.logHandler = nil
		return nil
	}
}

// WithDataProvider sets where Eval loads its scope data from.
func WithDataProvider(provider data.Provider) Option {
	return func(e *Evaluator) error {
		if provider == nil {
			return fmt.Errorf("data provider cannot be nil")
		}
		e.provider = provider
		return nil
	}
}

// WithStaticData layers fixed data under the per-request context data.
// Values added with AddDataToContext override it.
func WithStaticData(staticData map[string]any) Option {
	return func(e *Evaluator) error {
		e.provider = data.NewCompositeProvider(
			data.NewStaticProvider(staticData),
			data.NewContextProvider(constants.EvalData),
		)
		return nil
	}
}

// WithID sets the identifier reported in responses. By default it is
// derived from the expression source and location.
func WithID(id string) Option {
	return func(e *Evaluator) error {
		if id == "" {
			return fmt.Errorf("id cannot be empty")
		}
		e.id = id
		return nil
	}
}

// setupLogger is idempotent.
func (e *Evaluator) setupLogger() {
	if e.logger != nil {
		e.logHandler = e.logger.Handler()
		return
	}
	e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "bindexpr", "Evaluator")
}

func (e *Evaluator) applyDefaults() {
	if e.logHandler == nil && e.logger == nil {
		e.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	if e.provider == nil {
		e.provider = data.NewContextProvider(constants.EvalData)
	}
	if e.id == "" {
		e.id = helpers.ShortID(e.expr.String(), idLength)
	}
}

func (e *Evaluator) validate() error {
	if e.expr == nil || e.expr.AST == nil {
		return ErrNilExpression
	}
	if e.logHandler == nil && e.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	if e.provider == nil {
		return data.ErrNoProvider
	}
	return nil
}
