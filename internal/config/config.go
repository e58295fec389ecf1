package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/curl-logger/internal/constants"
	"github.com/oshokin/curl-logger/internal/logger"
	"github.com/oshokin/curl-logger/internal/utils"
	"github.com/oshokin/curl-logger/pkg/curl"
	"github.com/oshokin/curl-logger/pkg/curllog"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Environment is the deployment tag curl logging defaults are derived from.
	Environment string `mapstructure:"environment" yaml:"environment"`
	// CurlLoggingOverride overrides the environment default when set.
	CurlLoggingOverride *bool `mapstructure:"curl_logging_enabled" yaml:"curl_logging_enabled,omitempty"`
	// BaseURI is the base relative request URIs are resolved against.
	BaseURI string `mapstructure:"base_uri" yaml:"base_uri"`
	// Proxy is the default proxy for requests that do not name one.
	Proxy curl.Proxy `mapstructure:"proxy" yaml:"proxy"`
	// DefaultHeaders are added to every request that does not carry them.
	DefaultHeaders map[string]string `mapstructure:"default_headers" yaml:"default_headers"`
	// MaxLogLength is the maximum size of a logged command (e.g., "1MB", "64KB").
	MaxLogLength string `mapstructure:"max_log_length" yaml:"max_log_length"`
	// Timeout is the request timeout (e.g., "30s", "1m").
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
	// ParsedEnvironment is the normalized environment tag.
	ParsedEnvironment curllog.Environment `yaml:"-"`
	// ParsedMaxLogLength is the parsed maximum log length in bytes.
	ParsedMaxLogLength uint64 `yaml:"-"`
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".curl-logger.yaml"

	// EnvPrefix prefixes environment variables that override file settings,
	// e.g. CURL_LOGGER_ENVIRONMENT or CURL_LOGGER_PROXY_ADDRESS.
	EnvPrefix = "CURL_LOGGER"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultMaxLogLength is the default maximum size of a logged command.
	DefaultMaxLogLength = "1MB"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = "60s"

	// maxPort is the largest valid TCP port.
	maxPort = 65535
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidBaseURI indicates that the base URI is not an absolute http(s) URI.
	ErrInvalidBaseURI = errors.New("base_uri must be an absolute http or https URI")
	// ErrInvalidProxyPort indicates that the proxy port is out of range.
	ErrInvalidProxyPort = errors.New("proxy port must be between 1 and 65535")
	// ErrEmptyProxyAddress indicates proxy settings without an address.
	ErrEmptyProxyAddress = errors.New("proxy address cannot be empty")
	// ErrInvalidMaxLogLength indicates that the maximum log length is not positive.
	ErrInvalidMaxLogLength = errors.New("max_log_length must be positive")
	// ErrInvalidTimeout indicates that the timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrConfigFileExists indicates that WriteDefaultConfig would overwrite a file.
	ErrConfigFileExists = errors.New("configuration file already exists")
)

// LoadConfig loads configuration settings from a YAML file and the environment.
// An empty configFilename means DefaultConfigFilename, which may be absent:
// defaults and environment variables are used then.
// The result is not validated, call ValidateConfig before using it.
func LoadConfig(configFilename string) (*Config, error) {
	isDefaultFile := configFilename == ""
	if isDefaultFile {
		configFilename = DefaultConfigFilename
	}

	v := newViper()

	exists, err := utils.IsFileExist(configFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}

	if exists || !isDefaultFile {
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := defaultConfig()

	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("environment", defaults.Environment)
	v.SetDefault("base_uri", defaults.BaseURI)
	v.SetDefault("proxy.address", defaults.Proxy.Address)
	v.SetDefault("proxy.port", defaults.Proxy.Port)
	v.SetDefault("proxy.user", defaults.Proxy.User)
	v.SetDefault("proxy.password", defaults.Proxy.Password)
	v.SetDefault("max_log_length", defaults.MaxLogLength)
	v.SetDefault("timeout", defaults.Timeout)

	// Has no default, so AutomaticEnv would not see it.
	_ = v.BindEnv("curl_logging_enabled")

	return v
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		Environment:    string(curllog.DefaultEnvironment),
		BaseURI:        curl.DefaultBaseURI,
		DefaultHeaders: map[string]string{},
		MaxLogLength:   DefaultMaxLogLength,
		Timeout:        DefaultTimeout,
	}
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	logLevel := strings.TrimSpace(cfg.LogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(logLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	// Any tag is accepted, only development and test enable curl logging by default.
	cfg.ParsedEnvironment = curllog.ParseEnvironment(cfg.Environment)
	if cfg.ParsedEnvironment == "" {
		cfg.ParsedEnvironment = curllog.DefaultEnvironment
	}

	if cfg.BaseURI == "" {
		cfg.BaseURI = curl.DefaultBaseURI
	}

	baseURI, err := url.Parse(cfg.BaseURI)
	if err != nil || (baseURI.Scheme != "http" && baseURI.Scheme != "https") || baseURI.Host == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidBaseURI, cfg.BaseURI)
	}

	if cfg.Proxy.IsSet() {
		if strings.TrimSpace(cfg.Proxy.Address) == "" {
			return ErrEmptyProxyAddress
		}

		if cfg.Proxy.Port <= 0 || cfg.Proxy.Port > maxPort {
			return fmt.Errorf("%w: %d", ErrInvalidProxyPort, cfg.Proxy.Port)
		}
	}

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength == "" {
		maxLogLength = DefaultMaxLogLength
	}

	cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
	if err != nil {
		return fmt.Errorf("failed to parse max log length: %w", err)
	}

	if cfg.ParsedMaxLogLength == 0 {
		return ErrInvalidMaxLogLength
	}

	timeout := strings.TrimSpace(cfg.Timeout)
	if timeout == "" {
		timeout = DefaultTimeout
	}

	cfg.ParsedTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// CurlLoggingEnabled reports whether curl logging is on:
// the explicit override if present, the environment default otherwise.
func (c *Config) CurlLoggingEnabled() bool {
	if c.CurlLoggingOverride != nil {
		return *c.CurlLoggingOverride
	}

	return c.ParsedEnvironment.LoggingEnabledByDefault()
}

// ProxySettings returns the configured default proxy, or nil when none is set.
func (c *Config) ProxySettings() *curl.Proxy {
	if !c.Proxy.IsSet() {
		return nil
	}

	proxy := c.Proxy

	return &proxy
}

// defaultFileComments documents the keys of a generated configuration file.
//
//nolint:gochecknoglobals // Read-only lookup table.
var defaultFileComments = map[string]string{
	"log_level":       "# Logging verbosity: debug, info, warn, error.",
	"environment":     "# Deployment environment: development, test, staging, production.\n# Curl logging is on by default only in development and test.",
	"base_uri":        "# Base URI relative request URIs are resolved against.",
	"proxy":           "# Default proxy for requests that do not name one. Leave it empty to disable.",
	"default_headers": "# Headers added to every request that does not carry them.",
	"max_log_length":  "# Maximum size of a logged command, e.g. 64KB or 1MB. Longer ones are truncated.",
	"timeout":         "# Request timeout, e.g. 30s or 1m.",
}

// WriteDefaultConfig writes a commented configuration file with default values to path.
// An empty path means DefaultConfigFilename. Existing files are never overwritten.
func WriteDefaultConfig(path string) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	exists, err := utils.IsFileExist(path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrConfigFileExists, path)
	}

	content, err := marshalDefaultConfig()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err = os.WriteFile(path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func marshalDefaultConfig() ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(defaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to encode default config: %w", err)
	}

	// Keys and values alternate in a mapping node.
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if comment, ok := defaultFileComments[keyNode.Value]; ok {
			keyNode.HeadComment = comment
		}
	}

	content, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return content, nil
}
