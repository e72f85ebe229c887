package starlark

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-bindexpr/internal/helpers"
	"github.com/robbyt/go-bindexpr/platform/loader"
)

// Load executes a Starlark module and returns its globals for use as a
// scope. The json, math, time and struct modules are predeclared alongside
// predeclared. The globals are left unfrozen so assignments reach them.
// Output from print is logged at info level.
func Load(
	ctx context.Context,
	handler slog.Handler,
	filename string,
	src any,
	predeclared starlarkLib.StringDict,
) (starlarkLib.StringDict, error) {
	_, logger := helpers.SetupLogger(handler, "starlark", "Load")
	logger = logger.With("filename", filename)

	globals := standardModules()
	maps.Copy(globals, predeclared)

	_, prog, err := starlarkLib.SourceProgramOptions(&syntax.FileOptions{}, filename, src, globals.Has)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	thread := &starlarkLib.Thread{
		Name: threadName,
		Print: func(thread *starlarkLib.Thread, msg string) {
			logger.InfoContext(ctx, msg, "thread", thread.Name)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	out, err := prog.Init(thread, globals)
	if err != nil {
		logger.ErrorContext(ctx, "module execution failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	logger.DebugContext(ctx, "module loaded", "globals", len(out))
	return out, nil
}

// LoadFrom reads a module from l and executes it like Load, naming it by
// the loader's source URL.
func LoadFrom(
	ctx context.Context,
	handler slog.Handler,
	l loader.Loader,
	predeclared starlarkLib.StringDict,
) (starlarkLib.StringDict, error) {
	src, err := loader.ReadAll(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return Load(ctx, handler, l.GetSourceURL().String(), src, predeclared)
}
