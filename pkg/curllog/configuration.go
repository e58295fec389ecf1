package curllog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/oshokin/curl-logger/pkg/curl"
)

// MessagePrefix introduces every logged command.
const MessagePrefix = "HTTP request as cURL command:\n"

// Static error definitions for better error handling.
var (
	// ErrNilSink indicates that logging is enabled but no sink is configured.
	ErrNilSink = errors.New("curl logging is enabled but sink is nil")
	// ErrSinkWrite indicates that the sink rejected a message.
	ErrSinkWrite = errors.New("failed to write curl command to sink")
)

// Configuration holds the curl logging settings.
type Configuration struct {
	// Enabled turns logging on or off. SetEnvironment overwrites it.
	Enabled bool
	// Environment is the deployment tag the defaults were derived from.
	Environment Environment
	// Sink receives the commands.
	Sink Sink
}

// NewConfiguration returns settings derived from env:
// logging is enabled only for development and test.
// An empty env means DefaultEnvironment.
func NewConfiguration(env Environment) Configuration {
	if env == "" {
		env = DefaultEnvironment
	}

	cfg := Configuration{Sink: DefaultSink()}
	cfg.SetEnvironment(env)

	return cfg
}

// SetEnvironment stores env and re-derives Enabled from it,
// discarding any value set before.
func (c *Configuration) SetEnvironment(env Environment) {
	c.Environment = ParseEnvironment(string(env))
	c.Enabled = c.Environment.LoggingEnabledByDefault()
}

// Emit writes an already formatted message to the sink if logging is enabled.
// Sink errors are returned to the caller.
func (c Configuration) Emit(ctx context.Context, message string) error {
	if !c.Enabled {
		return nil
	}

	if c.Sink == nil {
		return ErrNilSink
	}

	if err := c.Sink.Info(ensureRequestID(ctx), message); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	return nil
}

// Log formats spec with f and writes it to the sink if logging is enabled.
// A nil f means curl.DefaultFormatter.
func (c Configuration) Log(ctx context.Context, f *curl.Formatter, spec curl.Spec) error {
	if !c.Enabled {
		return nil
	}

	if f == nil {
		f = curl.DefaultFormatter
	}

	command, err := f.FormatSpec(spec)
	if err != nil {
		return fmt.Errorf("failed to format request: %w", err)
	}

	return c.Emit(ctx, Message(command))
}

// Message wraps a command the way it is written to the sink.
func Message(command string) string {
	return MessagePrefix + command
}

var (
	//nolint:gochecknoglobals // Process-wide settings, see package documentation.
	current atomic.Pointer[Configuration]

	//nolint:gochecknoglobals // Serializes Configure calls.
	configureMu sync.Mutex
)

// Current returns a copy of the process-wide configuration.
// Until Configure is called it is NewConfiguration(DefaultEnvironment).
func Current() Configuration {
	if cfg := current.Load(); cfg != nil {
		return *cfg
	}

	return NewConfiguration(DefaultEnvironment)
}

// Configure applies fn to a copy of the current configuration and publishes
// the result. It is meant to be called once at startup.
func Configure(fn func(cfg *Configuration)) {
	configureMu.Lock()
	defer configureMu.Unlock()

	cfg := Current()
	fn(&cfg)
	current.Store(&cfg)
}

// Reset restores the process-wide configuration to its initial state.
func Reset() {
	configureMu.Lock()
	defer configureMu.Unlock()

	current.Store(nil)
}

// Log formats and writes spec using the process-wide configuration.
func Log(ctx context.Context, f *curl.Formatter, spec curl.Spec) error {
	return Current().Log(ctx, f, spec)
}
