// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package project locates project roots by marker files and reads basic
// project metadata.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// MaxAscents bounds the upward walk from the starting directory. The walk
// also stops at the filesystem root, whichever comes first.
const MaxAscents = 10

// FindRoot walks upward from filePath looking for a directory containing one
// of the marker files.
//
// # Description
//
//	Starts at the directory containing filePath and checks each directory for
//	the markers in order; any marker present makes that directory the root.
//	Ascends at most MaxAscents times and stops at the filesystem root (a
//	directory whose parent equals itself). The walk is strictly upward and
//	touches nothing on disk beyond existence checks.
//
// # Inputs
//
//   - filePath: Path to a file inside the candidate project.
//   - markers: Marker filenames in priority order (e.g. "go.mod").
//
// # Outputs
//
//   - string: The root directory, empty when not found.
//   - bool: True when a root was found within the bound.
func FindRoot(filePath string, markers []string) (string, bool) {
	if len(markers) == 0 {
		return "", false
	}

	abs, err := filepath.Abs(filePath)
	if err != nil {
		return "", false
	}
	current := filepath.Dir(abs)

	for i := 0; i < MaxAscents; i++ {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current, true
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", false
}

// GoModulePath returns the module path declared in root's go.mod.
//
// # Description
//
//	Reads and parses <root>/go.mod. Used by the doctor surface to show which
//	module a resolved Go root belongs to; never called on the hook path.
//
// # Inputs
//
//   - root: Directory containing a go.mod file.
//
// # Outputs
//
//   - string: The declared module path.
//   - error: Non-nil if the file is missing, unreadable, or malformed.
func GoModulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}

	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return "", fmt.Errorf("parse go.mod: %w", err)
	}
	if f.Module == nil {
		return "", fmt.Errorf("go.mod in %s has no module directive", root)
	}

	return f.Module.Mod.Path, nil
}
