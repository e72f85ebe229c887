// Package extism exposes exports of compiled Extism WASM plugins as
// callables that expressions can invoke.
package extism

import (
	"context"
	"encoding/base64"
	"fmt"

	extismSDK "github.com/extism/go-sdk"

	"github.com/robbyt/go-bindexpr/hosts/extism/adapters"
	"github.com/robbyt/go-bindexpr/platform/loader"
)

// Compile compiles raw WASM bytes into a plugin that can be instantiated
// once per call. The caller closes the plugin when done.
func Compile(ctx context.Context, wasmBytes []byte, opts ...Option) (adapters.CompiledPlugin, error) {
	if len(wasmBytes) == 0 {
		return nil, ErrContentNil
	}
	cfg, logger, err := newConfig("Compile", opts...)
	if err != nil {
		return nil, err
	}

	manifest := extismSDK.Manifest{
		Wasm: []extismSDK.Wasm{
			extismSDK.WasmData{Data: wasmBytes},
		},
	}
	pluginConfig := extismSDK.PluginConfig{
		EnableWasi:    cfg.enableWASI,
		RuntimeConfig: cfg.runtimeConfig,
	}

	plugin, err := extismSDK.NewCompiledPlugin(ctx, manifest, pluginConfig, cfg.hostFunctions)
	if err != nil {
		logger.ErrorContext(ctx, "compile failed", "error", err, "size", len(wasmBytes))
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	logger.DebugContext(ctx, "plugin compiled", "size", len(wasmBytes), "wasi", cfg.enableWASI)
	return adapters.NewCompiledPluginAdapter(plugin), nil
}

// CompileBase64 decodes base64 encoded WASM content and compiles it.
func CompileBase64(ctx context.Context, content string, opts ...Option) (adapters.CompiledPlugin, error) {
	wasmBytes, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBinary, err)
	}
	return Compile(ctx, wasmBytes, opts...)
}

// CompileFrom reads WASM bytes from l and compiles them.
func CompileFrom(ctx context.Context, l loader.Loader, opts ...Option) (adapters.CompiledPlugin, error) {
	wasmBytes, err := loader.ReadAll(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to read wasm source: %w", err)
	}
	return Compile(ctx, wasmBytes, opts...)
}
