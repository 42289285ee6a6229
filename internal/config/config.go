// Package config loads the nestjson rule file.
//
// The file is given explicitly (--config); there is no discovery. Format is
// chosen by extension: .yaml/.yml is YAML, .json/.jsonc is JSON extended with
// comments and trailing commas.
//
//	rules:
//	  - path: payload
//	    mode: unnest
//	  - path: events.*.attrs[]
//	    mode: unnest
//	keep_going: true
//	log_level: debug
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/nestedjson/transform"
)

// Format of a config file.
type Format string

const (
	YAML  Format = "yaml"
	JSONC Format = "jsonc"
)

// Config is the full CLI configuration.
type Config struct {
	// Rules run in order against every input document.
	Rules []Rule `yaml:"rules" json:"rules"`

	// KeepGoing passes a failing line through unchanged instead of stopping.
	KeepGoing bool `yaml:"keep_going" json:"keep_going"`

	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Logger selects the logging backend: zap or logrus. Default: zap
	Logger string `yaml:"logger" json:"logger"`

	// MaxInnerBytes bounds each inner document; 0 disables the bound.
	MaxInnerBytes int `yaml:"max_inner_bytes" json:"max_inner_bytes"`
}

// Rule mirrors transform.Rule with a textual mode.
type Rule struct {
	Path string `yaml:"path" json:"path"`
	Mode string `yaml:"mode" json:"mode"`
}

// Default returns a config with no rules and default settings.
func Default() *Config {
	return &Config{LogLevel: "info", Logger: "zap"}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json", ".jsonc":
		return JSONC, nil
	}
	return "", fmt.Errorf("unsupported config extension %q (want .yaml, .yml, .json or .jsonc)", filepath.Ext(path))
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case JSONC:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	return cfg, nil
}

// Validate checks values that Parse cannot.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Rules) == 0 {
		errs = append(errs, errors.New("no rules configured"))
	}
	for i, r := range c.Rules {
		if strings.TrimSpace(r.Path) == "" {
			errs = append(errs, fmt.Errorf("rules[%d]: path is required", i))
		}
		if _, err := transform.ParseMode(r.Mode); err != nil {
			errs = append(errs, fmt.Errorf("rules[%d]: %w", i, err))
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	switch c.Logger {
	case "zap", "logrus":
	default:
		errs = append(errs, fmt.Errorf("logger: unknown backend %q", c.Logger))
	}
	if c.MaxInnerBytes < 0 {
		errs = append(errs, errors.New("max_inner_bytes must not be negative"))
	}
	return errors.Join(errs...)
}

// TransformRules converts the configured rules. Call Validate first.
func (c *Config) TransformRules() ([]transform.Rule, error) {
	out := make([]transform.Rule, 0, len(c.Rules))
	for i, r := range c.Rules {
		m, err := transform.ParseMode(r.Mode)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		out = append(out, transform.Rule{Path: r.Path, Mode: m})
	}
	return out, nil
}
