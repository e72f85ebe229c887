package extism

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	extismSDK "github.com/extism/go-sdk"

	"github.com/robbyt/go-bindexpr/hosts/extism/adapters"
)

// Func calls one plugin export. Arguments are sent as a JSON array and the
// output is decoded as JSON, with integral numbers as int64 and others as
// float64. Output that is not JSON is returned as a string. Every call gets
// a fresh plugin instance, so a Func is safe for concurrent use.
type Func struct {
	plugin         adapters.CompiledPlugin
	export         string
	instanceConfig extismSDK.PluginInstanceConfig
	timeout        time.Duration
	logger         *slog.Logger
}

// NewFunc checks that plugin exports export and returns a Func calling it.
func NewFunc(ctx context.Context, plugin adapters.CompiledPlugin, export string, opts ...Option) (*Func, error) {
	if plugin == nil {
		return nil, ErrNilPlugin
	}
	if export == "" {
		return nil, ErrEmptyExport
	}
	cfg, logger, err := newConfig("Func", opts...)
	if err != nil {
		return nil, err
	}

	f := &Func{
		plugin:         plugin,
		export:         export,
		instanceConfig: extismSDK.PluginInstanceConfig{ModuleConfig: cfg.moduleConfig},
		timeout:        cfg.timeout,
		logger:         logger.With("export", export),
	}

	instance, err := plugin.Instance(ctx, f.instanceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin instance: %w", err)
	}
	defer f.closeInstance(ctx, instance)

	if !instance.FunctionExists(export) {
		return nil, fmt.Errorf("%w: %q", ErrFunctionNotFound, export)
	}
	return f, nil
}

func (f *Func) String() string {
	return "extism.Func(" + f.export + ")"
}

// Call implements ast.Callable.
func (f *Func) Call(args []any) (any, error) {
	return f.CallContext(context.Background(), args)
}

// CallContext calls the export with args; ctx bounds the call.
func (f *Func) CallContext(ctx context.Context, args []any) (any, error) {
	if args == nil {
		args = []any{}
	}
	input, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeArgs, err)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	instance, err := f.plugin.Instance(ctx, f.instanceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin instance: %w", err)
	}
	defer f.closeInstance(ctx, instance)

	start := time.Now()
	exit, output, err := instance.CallWithContext(ctx, f.export, input)
	execTime := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: execution cancelled: %w", ErrCallFailed, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", ErrCallFailed, err)
	}
	if exit != 0 {
		return nil, fmt.Errorf("%w: %q returned exit code %d: %s", ErrCallFailed, f.export, exit, output)
	}

	result := decodeOutput(output)
	f.logger.DebugContext(ctx, "call complete", "result", result, "execTime", execTime)
	return result, nil
}

func (f *Func) closeInstance(ctx context.Context, instance adapters.PluginInstance) {
	if err := instance.Close(ctx); err != nil {
		f.logger.WarnContext(ctx, "failed to close plugin instance", "error", err)
	}
}

func decodeOutput(output []byte) any {
	if len(bytes.TrimSpace(output)) == 0 {
		return nil
	}
	var result any
	d := json.NewDecoder(bytes.NewReader(output))
	d.UseNumber()
	if err := d.Decode(&result); err != nil {
		return string(output)
	}
	return normalizeNumbers(result)
}

// normalizeNumbers replaces json.Number values with int64 when integral and
// float64 otherwise.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, elem := range val {
			val[k] = normalizeNumbers(elem)
		}
	case []any:
		for i, elem := range val {
			val[i] = normalizeNumbers(elem)
		}
	}
	return v
}
