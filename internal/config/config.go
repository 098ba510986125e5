// Package config loads faberc's project and user configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// StrictnessMode controls how the checker's warnings are treated.
type StrictnessMode string

const (
	// StrictOff lets warnings pass through without failing the build.
	StrictOff StrictnessMode = "off"
	// StrictWarn fails the build on any warning-level diagnostic.
	StrictWarn StrictnessMode = "warn"
	// StrictAll fails the build on any warning-level diagnostic, exactly as
	// StrictWarn does; no other check depends on it.
	StrictAll StrictnessMode = "all"
)

// IsValid reports whether the strictness mode is one faberc recognizes.
func (s StrictnessMode) IsValid() bool {
	switch s {
	case StrictOff, StrictWarn, StrictAll:
		return true
	default:
		return false
	}
}

// Config is the complete faberc project configuration.
type Config struct {
	Build  BuildConfig  `toml:"build"`
	Output OutputConfig `toml:"output"`
}

// BuildConfig controls how a source unit is compiled.
type BuildConfig struct {
	// DefaultTarget selects which backend runs when --target is omitted.
	// Valid values are whatever compiler.Targets() reports: "cpp", "rs",
	// "py", "zig", "ts", "fab".
	DefaultTarget string `toml:"default_target"`

	// Strictness selects how checker warnings are handled.
	Strictness StrictnessMode `toml:"strictness"`
}

// OutputConfig controls where and how generated sources are written.
type OutputConfig struct {
	// Dir is the directory generated files are written under. Empty means
	// alongside the input file.
	Dir string `toml:"dir"`

	// Overwrite allows clobbering an existing output file without -f.
	Overwrite bool `toml:"overwrite"`
}

// DefaultConfig returns faberc's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			DefaultTarget: "fab",
			Strictness:    StrictWarn,
		},
		Output: OutputConfig{
			Dir:       "",
			Overwrite: false,
		},
	}
}

// Load merges configuration from, in increasing precedence:
//  1. built-in defaults
//  2. ~/.faber/config.toml
//  3. ./faber.toml
//  4. overrides (CLI flags already parsed by the caller)
func Load(overrides *Config) (*Config, error) {
	cfg := DefaultConfig()

	userConfigPath := filepath.Join(os.Getenv("HOME"), ".faber", "config.toml")
	if err := loadConfigFile(userConfigPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	projectConfigPath := "faber.toml"
	if err := loadConfigFile(projectConfigPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	if overrides != nil {
		if overrides.Build.DefaultTarget != "" {
			cfg.Build.DefaultTarget = overrides.Build.DefaultTarget
		}
		if overrides.Build.Strictness != "" {
			cfg.Build.Strictness = overrides.Build.Strictness
		}
		if overrides.Output.Dir != "" {
			cfg.Output.Dir = overrides.Output.Dir
		}
		if overrides.Output.Overwrite {
			cfg.Output.Overwrite = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// Validate checks the configuration for nonsensical values.
func (c *Config) Validate() error {
	if c.Build.Strictness != "" && !c.Build.Strictness.IsValid() {
		return fmt.Errorf("invalid build.strictness: %q (must be 'off', 'warn', or 'all')", c.Build.Strictness)
	}
	return nil
}
