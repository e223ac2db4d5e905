// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scan detects incomplete-implementation markers in source files.
package scan

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// documentedNotImplementedRe recognizes a NotImplementedError raised with a
// non-empty quoted message. Such a call documents intentionally unimplemented
// behavior and is not treated as a stub. Matched case-sensitively, unlike the
// pattern table.
var documentedNotImplementedRe = regexp.MustCompile(`NotImplementedError\s*\(\s*["'][^"']+["']`)

// Scanner applies the stub pattern table to file content line by line.
//
// # Thread Safety
//
// Safe for concurrent use. The compiled rules are immutable after
// construction and Go regexps are safe for concurrent matching.
type Scanner struct {
	rules []compiledStubPattern
}

// compiledStubPattern is a stub pattern with its compiled regex.
type compiledStubPattern struct {
	StubPattern
	regex *regexp.Regexp
}

// NewScanner creates a scanner with the built-in pattern table compiled.
//
// # Description
//
//	Compiles every pattern from StubPatterns() once, case-insensitively.
//	The scanner is then reused across scans; compilation never repeats.
//
// # Outputs
//
//   - *Scanner: Ready-to-use scanner.
//   - error: Non-nil if a table pattern does not compile.
func NewScanner() (*Scanner, error) {
	s := &Scanner{}
	for _, p := range StubPatterns() {
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile stub pattern %q: %w", p.Pattern, err)
		}
		s.rules = append(s.rules, compiledStubPattern{
			StubPattern: p,
			regex:       re,
		})
	}
	return s, nil
}

// Scan scans content for stub patterns.
//
// # Description
//
//	Splits content into lines (1-based numbering) and tests every line
//	against every pattern in table order. Each match emits one Finding,
//	except on lines carrying a documented NotImplementedError: those lines
//	suppress whichever pattern just matched, so a commented, intentional
//	not-implemented call never surfaces as a stub.
//
// # Inputs
//
//   - content: Raw file content.
//
// # Outputs
//
//   - []Finding: Findings in ascending line order, table order within a line.
//     Nil when nothing matched.
func (s *Scanner) Scan(content []byte) []Finding {
	var findings []Finding
	lines := strings.Split(string(content), "\n")

	for i, line := range lines {
		for _, rule := range s.rules {
			if !rule.regex.MatchString(line) {
				continue
			}
			if strings.Contains(line, "NotImplementedError") && documentedNotImplementedRe.MatchString(line) {
				continue
			}
			findings = append(findings, Finding{
				LineNumber: i + 1,
				Label:      rule.Label,
				Excerpt:    truncate(strings.TrimSpace(line), ExcerptLimit),
			})
		}
	}

	return findings
}

// ScanFile reads and scans a file.
//
// # Description
//
//	Best-effort wrapper around Scan. A file that does not exist or can not
//	be read yields no findings; read failures are swallowed, never raised.
//	The file is only read, never modified.
//
// # Inputs
//
//   - path: Path to the file to scan.
//
// # Outputs
//
//   - []Finding: Findings, or nil when the file is unreadable or clean.
func (s *Scanner) ScanFile(path string) []Finding {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return s.Scan(content)
}

// truncate cuts s to at most limit characters without splitting a rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
