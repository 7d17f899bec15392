// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package config loads service configuration using Koanf v2 with layered
// sources: built-in defaults, an optional YAML file, then environment
// variables. Precedence is ENV > file > defaults.
//
// Environment variables use the TALEWEAVER_ prefix with "__" separating
// nesting levels, so field names may themselves contain underscores:
//
//	TALEWEAVER_SERVER__PORT=8080
//	TALEWEAVER_ENGINE__MAX_RECOMMENDATIONS=20
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/taleweaver/recommend/internal/recommend"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/taleweaver/config.yaml",
	"/etc/taleweaver/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "TALEWEAVER_CONFIG_PATH"

// envPrefix is the prefix for all configuration environment variables.
const envPrefix = "TALEWEAVER_"

// Config is the root service configuration.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `koanf:"server"`

	// Logging configures log output.
	Logging LoggingConfig `koanf:"logging"`

	// Engine configures the recommendation engine.
	Engine recommend.Config `koanf:"engine"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Host is the bind address.
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// ReadTimeout bounds request read time.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response write time.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed cross-origin request origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the allowed requests per window per client IP.
	// Zero disables rate limiting.
	RateLimitReqs int `koanf:"rate_limit_reqs" validate:"min=0"`

	// RateLimitWindow is the rate limit window length.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller information in log lines.
	Caller bool `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8710,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Engine: *recommend.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the full configuration, including the engine section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return nil
}

// envTransform maps TALEWEAVER_SERVER__PORT to server.port. A double
// underscore separates nesting levels so field names can keep single
// underscores.
func envTransform(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// findConfigFile returns the first existing config file path, or empty.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists paths parsed as comma-separated slices when they
// arrive as strings from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated env strings to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}
