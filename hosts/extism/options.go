package extism

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"time"

	extismSDK "github.com/extism/go-sdk"
	"github.com/tetratelabs/wazero"

	"github.com/robbyt/go-bindexpr/internal/helpers"
)

// Option configures Compile and NewFunc.
type Option func(*config) error

type config struct {
	logHandler    slog.Handler
	logger        *slog.Logger
	enableWASI    bool
	runtimeConfig wazero.RuntimeConfig
	moduleConfig  wazero.ModuleConfig
	hostFunctions []extismSDK.HostFunction
	timeout       time.Duration
}

// WithLogHandler sets the handler used to build the logger. It replaces
// any logger set with WithLogger.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *config) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		c.logger = nil
		return nil
	}
}

// WithLogger sets the logger directly. It replaces any handler set with
// WithLogHandler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		c.logHandler = nil
		return nil
	}
}

// WithWASIEnabled enables or disables WASI support. It is enabled by default.
func WithWASIEnabled(enabled bool) Option {
	return func(c *config) error {
		c.enableWASI = enabled
		return nil
	}
}

// WithRuntimeConfig sets the wazero runtime configuration used to compile.
func WithRuntimeConfig(rc wazero.RuntimeConfig) Option {
	return func(c *config) error {
		if rc == nil {
			return fmt.Errorf("runtime config cannot be nil")
		}
		c.runtimeConfig = rc
		return nil
	}
}

// WithModuleConfig sets the wazero module configuration for each plugin
// instance.
func WithModuleConfig(mc wazero.ModuleConfig) Option {
	return func(c *config) error {
		if mc == nil {
			return fmt.Errorf("module config cannot be nil")
		}
		c.moduleConfig = mc
		return nil
	}
}

// WithHostFunctions sets the host functions exposed to the plugin.
func WithHostFunctions(funcs []extismSDK.HostFunction) Option {
	return func(c *config) error {
		c.hostFunctions = funcs
		return nil
	}
}

// WithTimeout bounds each call made through a Func.
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("timeout cannot be negative: %s", d)
		}
		c.timeout = d
		return nil
	}
}

func newConfig(group string, opts ...Option) (*config, *slog.Logger, error) {
	c := &config{enableWASI: true}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}

	if c.logger != nil {
		return c, c.logger.WithGroup(group), nil
	}
	_, logger := helpers.SetupLogger(c.logHandler, "extism", group)
	return c, logger, nil
}

func (c *config) applyDefaults() {
	if c.logHandler == nil && c.logger == nil {
		c.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	if c.runtimeConfig == nil {
		c.runtimeConfig = wazero.NewRuntimeConfig()
	}
	if c.moduleConfig == nil {
		c.moduleConfig = wazero.NewModuleConfig().
			WithSysWalltime().
			WithSysNanotime().
			WithRandSource(rand.Reader)
	}
	if c.hostFunctions == nil {
		c.hostFunctions = []extismSDK.HostFunction{}
	}
}

func (c *config) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
