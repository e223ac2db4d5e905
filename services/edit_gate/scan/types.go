// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package scan

// ExcerptLimit is the maximum excerpt length in characters. Excerpts are
// trimmed of surrounding whitespace before truncation.
const ExcerptLimit = 60

// Finding is a single stub indicator detected in file content.
//
// A Finding is created per (line, matching pattern) pair, so one line may
// produce several findings. Findings are ephemeral: they exist only for the
// duration of one gate evaluation.
type Finding struct {
	// LineNumber is the 1-based line the pattern matched on.
	LineNumber int `json:"line_number"`

	// Label is the human-readable pattern label (e.g. "bare pass statement").
	Label string `json:"label"`

	// Excerpt is the matched line, whitespace-trimmed and truncated to
	// ExcerptLimit characters.
	Excerpt string `json:"excerpt"`
}

// StubPattern pairs a textual pattern with its human-readable label.
//
// Patterns are matched case-insensitively against individual lines. Anchored
// patterns ("^...$") see the line without its trailing newline, so the anchors
// bind to the whole line.
type StubPattern struct {
	// Pattern is the regular expression source, compiled case-insensitively.
	Pattern string `json:"pattern"`

	// Label describes the matched construct to the editing agent.
	Label string `json:"label"`
}
