/*
Package config holds the configuration of the style engine.

Configuration is read from YAML. Defaults are embedded into the binary;
a configuration file only needs to name the values it changes. Unknown keys
are rejected. After loading, configuration values are sanitized and
validated.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/css/parse"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/schuko/tracing"
	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaults []byte

type (
	TracingConfig struct {
		Level string `yaml:"level" validate:"oneof=error info debug"`
	}

	MetricsConfig struct {
		EmSize      float64 `yaml:"em_size" validate:"gt=0"`
		DeviceScale float64 `yaml:"device_scale" validate:"gt=0"`
	}

	ShadowConfig struct {
		Color string `yaml:"color" validate:"required"`
		Blend string `yaml:"blend" validate:"required"`
	}

	FontsConfig struct {
		Family string `yaml:"family" validate:"required"`
	}

	ResourcesConfig struct {
		Documents string `yaml:"documents"`
		Temp      string `yaml:"temp"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Tracing   TracingConfig   `yaml:"tracing"`
		Metrics   MetricsConfig   `yaml:"metrics"`
		Shadow    ShadowConfig    `yaml:"shadow"`
		Fonts     FontsConfig     `yaml:"fonts"`
		Resources ResourcesConfig `yaml:"resources"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		cfg.Tracing.Level = strings.ToLower(strings.TrimSpace(cfg.Tracing.Level))
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(styleChecks)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// styleChecks makes sure the shadow defaults are values the engine
// understands.
func styleChecks(sl validator.StructLevel) {
	var cfg Config
	switch c := sl.Current().Interface().(type) {
	case Config:
		cfg = c
	case *Config:
		cfg = *c
	default:
		return
	}
	if _, err := parse.Color(cfg.Shadow.Color); err != nil {
		sl.ReportError(cfg.Shadow.Color, "Color", "color", "css_color", "")
	}
	if _, ok := shadow.ParseBlendMode(cfg.Shadow.Blend); !ok {
		sl.ReportError(cfg.Shadow.Blend, "Blend", "blend", "blend_mode", "")
	}
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := unmarshalConfig(defaults, &Config{}, true)
	if err != nil {
		panic(fmt.Sprintf("embedded configuration is broken: %v", err))
	}
	return cfg
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the embedded defaults and performs
// validation. An empty path yields the defaults.
func LoadConfiguration(path string) (*Config, error) {
	haveFile := len(path) > 0
	cfg, err := unmarshalConfig(defaults, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, cfg)
}

// Parse superimposes YAML data on top of cfg and validates the result.
// If cfg is nil, the defaults are used.
func Parse(data []byte, cfg *Config) (*Config, error) {
	if cfg == nil {
		var err error
		if cfg, err = unmarshalConfig(defaults, &Config{}, false); err != nil {
			return nil, err
		}
	}
	cfg, err := unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return cfg, nil
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// TraceLevel returns the configured trace level.
func (cfg *Config) TraceLevel() tracing.TraceLevel {
	switch cfg.Tracing.Level {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// CSSMetrics returns the configured metrics.
func (cfg *Config) CSSMetrics() css.Metrics {
	return css.Metrics{EmSize: cfg.Metrics.EmSize, DeviceScale: cfg.Metrics.DeviceScale}
}

// ShadowDefaults returns the configured shadow defaults. Both have been
// validated when cfg was loaded.
func (cfg *Config) ShadowDefaults() shadow.Defaults {
	var d shadow.Defaults
	if c, err := parse.Color(cfg.Shadow.Color); err == nil {
		d.Tint = &c
	}
	if b, ok := shadow.ParseBlendMode(cfg.Shadow.Blend); ok {
		d.Blend = &b
	}
	return d
}
