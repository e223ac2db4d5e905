// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Mode defines how CLI output is rendered.
type Mode string

const (
	// ModeStyled enables colors and icons for interactive terminals.
	ModeStyled Mode = "styled"

	// ModePlain outputs unstyled text suitable for scripting, CI, and logs.
	ModePlain Mode = "plain"
)

var (
	currentMode = ModeStyled
	modeMu      sync.RWMutex
)

// GetMode returns the current output mode.
func GetMode() Mode {
	modeMu.RLock()
	defer modeMu.RUnlock()
	return currentMode
}

// SetMode updates the output mode.
func SetMode(m Mode) {
	modeMu.Lock()
	defer modeMu.Unlock()
	currentMode = m
}

// ParseMode converts a string to a Mode. Unknown values map to ModeStyled.
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "plain", "p", "machine":
		return ModePlain
	default:
		return ModeStyled
	}
}

// InitMode initializes the mode from environment and terminal state.
//
// EDITGATE_PLAIN=1 forces plain output; otherwise a non-TTY stdout selects
// plain so piped output stays clean.
func InitMode() {
	if os.Getenv("EDITGATE_PLAIN") != "" {
		SetMode(ModePlain)
		return
	}
	if !IsTerminal() {
		SetMode(ModePlain)
		return
	}
	SetMode(ModeStyled)
}

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsInteractive reports whether interactive prompts are appropriate.
func IsInteractive() bool {
	return GetMode() == ModeStyled && IsTerminal()
}
