// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator for config structs.
var validate = validator.New()

type EditGateConfig struct {
	// Log controls structured logging.
	Log LogConfig `yaml:"log"`

	// Gate tunes the evaluation itself.
	Gate GateConfig `yaml:"gate"`

	// Toolchains enables/disables linters and overrides their timeouts,
	// keyed by toolchain name (rust, python, javascript, go).
	Toolchains map[string]ToolchainConfig `yaml:"toolchains"`

	// Watch tunes the continuous-gate surface.
	Watch WatchConfig `yaml:"watch"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"` // e.g. info
	Dir   string `yaml:"dir"`                                         // "" disables file logging; "default" -> ~/.editgate/logs
	JSON  bool   `yaml:"json"`
	Quiet bool   `yaml:"quiet"`
}

// ResolveDir maps the "default" sentinel to the standard log location.
func (l LogConfig) ResolveDir() string {
	if l.Dir == "default" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".editgate", "logs")
	}
	return l.Dir
}

type GateConfig struct {
	Concurrent       bool     `yaml:"concurrent"`
	MaxLintErrors    int      `yaml:"max_lint_errors" validate:"min=1,max=100"`
	MaxFindingsShown int      `yaml:"max_findings_shown" validate:"min=1,max=50"`
	ExcludedPaths    []string `yaml:"excluded_paths"` // extra substrings excluded like the hook dir
}

type ToolchainConfig struct {
	Enabled        bool `yaml:"enabled"`
	TimeoutSeconds int  `yaml:"timeout_seconds" validate:"omitempty,min=1,max=600"`
}

type WatchConfig struct {
	DebounceMs         int `yaml:"debounce_ms" validate:"min=50,max=10000"`
	MaxChecksPerSecond int `yaml:"max_checks_per_second" validate:"min=1,max=50"`
}

// Normalize fills fields a partial YAML entry may omit. A toolchain listed
// only to flip Enabled keeps the built-in timeout.
func (c *EditGateConfig) Normalize() {
	defaults := DefaultConfig().Toolchains
	for name, tc := range c.Toolchains {
		if tc.TimeoutSeconds == 0 {
			if d, ok := defaults[name]; ok {
				tc.TimeoutSeconds = d.TimeoutSeconds
			} else {
				tc.TimeoutSeconds = 30
			}
			c.Toolchains[name] = tc
		}
	}
}

// Validate checks the loaded config against the struct constraints.
func (c EditGateConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for name, tc := range c.Toolchains {
		if err := validate.Struct(tc); err != nil {
			return fmt.Errorf("invalid toolchain config %q: %w", name, err)
		}
	}
	return nil
}

func DefaultConfig() EditGateConfig {
	return EditGateConfig{
		Log: LogConfig{
			Level: "info",
			Dir:   "",
			JSON:  false,
			Quiet: true,
		},
		Gate: GateConfig{
			Concurrent:       true,
			MaxLintErrors:    10,
			MaxFindingsShown: 5,
			ExcludedPaths:    []string{},
		},
		Toolchains: map[string]ToolchainConfig{
			"rust":       {Enabled: true, TimeoutSeconds: 30},
			"python":     {Enabled: true, TimeoutSeconds: 10},
			"javascript": {Enabled: true, TimeoutSeconds: 30},
			"go":         {Enabled: true, TimeoutSeconds: 30},
		},
		Watch: WatchConfig{
			DebounceMs:         400,
			MaxChecksPerSecond: 2,
		},
	}
}
