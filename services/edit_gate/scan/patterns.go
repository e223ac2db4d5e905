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

// StubPatterns returns the ordered stub pattern table.
//
// # Description
//
//	The table covers the common "this is not done yet" signatures across
//	language conventions: marker comments (TODO/FIXME/XXX/HACK), placeholder
//	statements (bare pass, bare ellipsis), not-implemented macros and
//	exceptions, "implement later" comments in hash and slash comment styles,
//	zero-body function definitions in colon-indent and brace-body styles, and
//	stub-marked null returns.
//
//	Order matters: when several patterns match one line, findings are emitted
//	in table order. The table is fixed at build time; runtime configuration
//	can not extend it.
//
// # Outputs
//
//   - []StubPattern: The ordered table. Callers must not mutate it.
func StubPatterns() []StubPattern {
	return []StubPattern{
		{Pattern: `\bTODO\b`, Label: "TODO comment"},
		{Pattern: `\bFIXME\b`, Label: "FIXME comment"},
		{Pattern: `\bXXX\b`, Label: "XXX marker"},
		{Pattern: `\bHACK\b`, Label: "HACK marker"},
		{Pattern: `^\s*pass\s*$`, Label: "bare pass statement"},
		{Pattern: `^\s*\.\.\.\s*$`, Label: "ellipsis placeholder"},
		{Pattern: `\bunimplemented!\s*\(\s*\)`, Label: "unimplemented!() macro"},
		{Pattern: `\btodo!\s*\(\s*\)`, Label: "todo!() macro"},
		{Pattern: `\bpanic!\s*\(\s*"not implemented`, Label: "panic not implemented"},
		{Pattern: `raise\s+NotImplementedError\s*\(\s*\)`, Label: "bare NotImplementedError"},
		{Pattern: `#\s*implement\s*(later|this|here)`, Label: "implement later comment"},
		{Pattern: `//\s*implement\s*(later|this|here)`, Label: "implement later comment"},
		{Pattern: `def\s+\w+\s*\([^)]*\)\s*:\s*(pass|\.\.\.)\s*$`, Label: "empty function"},
		{Pattern: `fn\s+\w+\s*\([^)]*\)\s*\{\s*\}`, Label: "empty function body"},
		{Pattern: `return\s+None\s*#.*stub`, Label: "stub return"},
	}
}
