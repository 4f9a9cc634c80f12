// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads gamebridge settings from a YAML file.
//
// Every setting has a default, so a missing file is not an error. The file
// path comes from the --config flag or the GAMEBRIDGE_CONFIG environment
// variable.
//
// Example gamebridge.yaml:
//
//	match_mode: first
//	auxiliary_executables: [SAM.Game.exe]
//	overrides:
//	  480: Spacewar.exe
//	install_dirs:
//	  480: C:\Games\Spacewar
//	retry:
//	  max_attempts: 10
//	  interval: 250ms
//	enumeration:
//	  command_timeout: 30s
//	log:
//	  debug: true
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/jongio/gamebridge/bridge"
	"github.com/jongio/gamebridge/cmdutil"
	"github.com/jongio/gamebridge/exescan"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/matcher"
	"github.com/jongio/gamebridge/proctable"
	"github.com/jongio/gamebridge/retry"
	"github.com/jongio/gamebridge/sdk"
	"github.com/jongio/gamebridge/security"
	"github.com/jongio/gamebridge/wininfo"
)

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = "GAMEBRIDGE_CONFIG"

// DefaultMetricsPort is the port used by the metrics server when none is set.
const DefaultMetricsPort = 9090

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all gamebridge settings.
type Config struct {
	MatchMode            string            `yaml:"match_mode"`
	AuxiliaryExecutables []string          `yaml:"auxiliary_executables"`
	Overrides            map[uint32]string `yaml:"overrides"`
	InstallDirs          map[uint32]string `yaml:"install_dirs"`
	Retry                RetryConfig       `yaml:"retry"`
	Scan                 ScanConfig        `yaml:"scan"`
	Enumeration          EnumerationConfig `yaml:"enumeration"`
	SDK                  SDKConfig         `yaml:"sdk"`
	Log                  LogConfig         `yaml:"log"`
	Metrics              MetricsConfig     `yaml:"metrics"`
}

// RetryConfig configures retried client queries.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Interval    time.Duration `yaml:"interval"`
}

// ScanConfig configures the install directory scanner.
type ScanConfig struct {
	// MaxDepth limits recursion; 0 is unlimited.
	MaxDepth int `yaml:"max_depth"`
	// AllowedExtensions replaces the default extension allow-list used on
	// Unix-like systems.
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// EnumerationConfig configures process table enumeration.
type EnumerationConfig struct {
	// CommandTimeout bounds the listing command; 0 waits indefinitely.
	CommandTimeout time.Duration `yaml:"command_timeout"`
	// RatePerSecond throttles enumerations; 0 disables throttling.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// SDKConfig configures the circuit breaker around the client.
type SDKConfig struct {
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Debug      bool `yaml:"debug"`
	Structured bool `yaml:"structured"`
	// Dir, when set, sends logs to gamebridge.log in that directory.
	Dir string `yaml:"dir"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MatchMode:            string(matcher.ModeAll),
		AuxiliaryExecutables: []string{bridge.DefaultAuxiliaryExecutable},
		Overrides:            map[uint32]string{},
		InstallDirs:          map[uint32]string{},
		Retry: RetryConfig{
			MaxAttempts: retry.DefaultMaxAttempts,
			Interval:    retry.DefaultInterval,
		},
		Scan: ScanConfig{
			AllowedExtensions: append([]string(nil), exescan.DefaultAllowedExtensions...),
		},
		Enumeration: EnumerationConfig{Burst: 1},
		SDK: SDKConfig{
			BreakerFailures: sdk.DefaultBreakerFailures,
			BreakerTimeout:  sdk.DefaultBreakerTimeout,
		},
		Metrics: MetricsConfig{Port: DefaultMetricsPort},
	}
}

// ResolvePath returns flagValue when set, otherwise GAMEBRIDGE_CONFIG.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfig)
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults. A named file that does not exist is
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if err := security.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	// #nosec G304 -- path validated by security.ValidatePath
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if errors.Is(security.ValidateFilePermissions(path), security.ErrInsecureFilePermissions) {
		logutil.Warn("config file is writable by other users", "path", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and reports the first problem found.
func (c *Config) Validate() error {
	if _, err := matcher.ParseMode(c.MatchMode); err != nil {
		return fmt.Errorf("%w: match_mode: %w", ErrInvalidConfig, err)
	}

	for _, name := range c.AuxiliaryExecutables {
		if err := security.ValidateExecutableName(name); err != nil {
			return fmt.Errorf("%w: auxiliary_executables: %w", ErrInvalidConfig, err)
		}
	}

	for appID, name := range c.Overrides {
		if err := security.ValidateExecutableName(name); err != nil {
			return fmt.Errorf("%w: overrides[%d]: %w", ErrInvalidConfig, appID, err)
		}
	}

	switch {
	case c.Retry.MaxAttempts < 1:
		return fmt.Errorf("%w: retry.max_attempts must be at least 1, got %d", ErrInvalidConfig, c.Retry.MaxAttempts)
	case c.Retry.Interval < 0:
		return fmt.Errorf("%w: retry.interval must not be negative", ErrInvalidConfig)
	case c.Scan.MaxDepth < 0:
		return fmt.Errorf("%w: scan.max_depth must not be negative", ErrInvalidConfig)
	case c.Enumeration.CommandTimeout < 0:
		return fmt.Errorf("%w: enumeration.command_timeout must not be negative", ErrInvalidConfig)
	case c.Enumeration.RatePerSecond < 0:
		return fmt.Errorf("%w: enumeration.rate_per_second must not be negative", ErrInvalidConfig)
	case c.Enumeration.RatePerSecond > 0 && c.Enumeration.Burst < 1:
		return fmt.Errorf("%w: enumeration.burst must be at least 1 when throttling", ErrInvalidConfig)
	case c.SDK.BreakerTimeout < 0:
		return fmt.Errorf("%w: sdk.breaker_timeout must not be negative", ErrInvalidConfig)
	case c.Metrics.Port < 0 || c.Metrics.Port > 65535:
		return fmt.Errorf("%w: metrics.port out of range: %d", ErrInvalidConfig, c.Metrics.Port)
	}

	return nil
}

// Mode returns the parsed match mode. Call Validate first.
func (c *Config) Mode() matcher.Mode {
	mode, err := matcher.ParseMode(c.MatchMode)
	if err != nil {
		return matcher.ModeAll
	}
	return mode
}

// RetryPolicy returns the retry.Policy described by the config.
func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: c.Retry.MaxAttempts, Interval: c.Retry.Interval}
}

// BreakerConfig returns the circuit breaker settings for sdk.NewGuarded.
func (c *Config) BreakerConfig() sdk.BreakerConfig {
	return sdk.BreakerConfig{Failures: c.SDK.BreakerFailures, Timeout: c.SDK.BreakerTimeout}
}

// BridgeOptions assembles bridge.Options for client from the config.
func (c *Config) BridgeOptions(client sdk.Client) bridge.Options {
	runner := cmdutil.NewExecRunner(c.Enumeration.CommandTimeout)

	var limiter *rate.Limiter
	if c.Enumeration.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.Enumeration.RatePerSecond), c.Enumeration.Burst)
	}

	return bridge.Options{
		Client: client,
		Scanner: exescan.New(exescan.Options{
			Classifier: exescan.ForOS(runtime.GOOS, c.Scan.AllowedExtensions),
			MaxDepth:   c.Scan.MaxDepth,
		}),
		Lister:               proctable.NewCommandLister(runner, nil),
		Windows:              wininfo.New(runner),
		MatchMode:            c.Mode(),
		NameLimit:            proctable.NameLimit(runtime.GOOS),
		AuxiliaryExecutables: append([]string{}, c.AuxiliaryExecutables...),
		Overrides:            c.Overrides,
		Limiter:              limiter,
		Metrics:              c.Metrics.Enabled,
	}
}
