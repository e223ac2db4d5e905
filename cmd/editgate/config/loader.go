// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the EditGate configuration singleton.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// Global is a singleton instance. After Load it always holds a valid
	// configuration: the file's contents, or the defaults when the file is
	// missing, unreadable, or invalid.
	Global EditGateConfig
	once   sync.Once
)

// Path returns the config file location (~/.editgate/editgate.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".editgate", "editgate.yaml"), nil
}

// Load ensures the config is loaded into the Global variable.
//
// # Description
//
//	Loads once per process. A missing file is created with defaults on
//	first run. On ANY failure Global falls back to DefaultConfig() and the
//	error is returned for logging; callers on the hook path must treat the
//	error as a warning, never a stop.
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal()
		if err != nil {
			Global = DefaultConfig()
		}
	})
	return err
}

func loadInternal() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	// create it if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefault(configPath); err != nil {
			return err
		}
	}
	// read the file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read the config file: %w", err)
	}
	// parse the config in to the Global struct
	cfg := DefaultConfig()
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse the config file: %w", err)
	}
	cfg.Normalize()
	if err = cfg.Validate(); err != nil {
		return err
	}
	Global = cfg
	return nil
}

// WriteDefault writes the default configuration to path, creating the
// directory as needed. Used on first run and by the init command.
func WriteDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
