// Copyright 2025 Certen Protocol
//
// Package config loads commit-verifier settings from a YAML file with
// ${VAR_NAME} / ${VAR_NAME:-default} environment variable substitution,
// adapted from the anchor service's configuration loader.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// SignBytesMode selects which convention canonical.SignBytes uses to
// frame the canonical vote encoding.
type SignBytesMode string

const (
	// ModeCometLengthPrefix is mainline CometBFT's own convention:
	// CanonicalizeVote + protoio.MarshalDelimited (varint length prefix).
	ModeCometLengthPrefix SignBytesMode = "cometbft-length-prefix"
	// ModeFixedPrefix0x71 prepends a single 0x71 byte ahead of the plain
	// (non-delimited) canonical vote encoding, for fixtures produced
	// against that convention instead of mainline CometBFT.
	ModeFixedPrefix0x71 SignBytesMode = "fixed-prefix-0x71"
)

// Config holds all settings the verifier CLI and library need.
type Config struct {
	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "json" or "text"

	// Verification behavior
	SignBytesMode SignBytesMode `yaml:"sign_bytes_mode"`
	Parallel      bool          `yaml:"parallel"`
	MaxWorkers    int           `yaml:"max_workers"`

	// Metrics
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the metrics server

	// Timeouts (library callers decide whether to honor these; the core
	// verifier itself performs no I/O and needs none)
	ImportTimeout Duration `yaml:"import_timeout"`
}

// Duration wraps time.Duration for YAML unmarshaling as a string like "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		SignBytesMode: ModeCometLengthPrefix,
		Parallel:      false,
		MaxWorkers:    8,
		MetricsAddr:   "",
		ImportTimeout: Duration(10 * time.Second),
	}
}

// Load reads configuration from a YAML file, substituting ${VAR}/${VAR:-default}
// environment references, and filling unset fields from Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	expanded := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.SignBytesMode {
	case ModeCometLengthPrefix, ModeFixedPrefix0x71:
	default:
		return fmt.Errorf("sign_bytes_mode: unknown mode %q", c.SignBytesMode)
	}
	if c.Parallel && c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers: must be >= 1 when parallel is enabled")
	}
	return nil
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 4 {
			defaultValue = groups[3]
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
