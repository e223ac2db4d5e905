// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package advisory renders the merged gate result as one advisory message.
package advisory

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AleutianAI/EditGate/services/edit_gate/lint"
	"github.com/AleutianAI/EditGate/services/edit_gate/scan"
)

const (
	// DefaultMaxFindingsShown caps the stub findings rendered verbatim.
	DefaultMaxFindingsShown = 5

	// DefaultMaxDiagnosticsShown caps the linter lines rendered verbatim.
	DefaultMaxDiagnosticsShown = 10
)

// Advisory is the composed gate result for one file.
//
// Exactly one shape holds: either CleanMessage is set and both sections are
// empty, or CleanMessage is empty and at least one section is set.
type Advisory struct {
	// StubSection is the formatted stub block, empty when no findings.
	StubSection string `json:"stub_section,omitempty"`

	// LintSection is the formatted linter block, empty when no diagnostics.
	LintSection string `json:"lint_section,omitempty"`

	// CleanMessage is the clean-bill-of-health line, set only when both
	// checks came back empty.
	CleanMessage string `json:"clean_message,omitempty"`
}

// Clean reports whether the gate found nothing.
func (a Advisory) Clean() bool {
	return a.CleanMessage != ""
}

// Text returns the advisory as the single message sent to the agent.
//
// The stub block always precedes the lint block; when both are present they
// are joined by one blank line.
func (a Advisory) Text() string {
	if a.CleanMessage != "" {
		return a.CleanMessage
	}

	sections := make([]string, 0, 2)
	if a.StubSection != "" {
		sections = append(sections, a.StubSection)
	}
	if a.LintSection != "" {
		sections = append(sections, a.LintSection)
	}
	return strings.Join(sections, "\n\n")
}

// Composer formats findings and diagnostics into an Advisory.
//
// # Thread Safety
//
// Safe for concurrent use after construction.
type Composer struct {
	maxFindings    int
	maxDiagnostics int
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithMaxFindingsShown overrides the stub finding display cap.
func WithMaxFindingsShown(n int) ComposerOption {
	return func(c *Composer) {
		if n > 0 {
			c.maxFindings = n
		}
	}
}

// WithMaxDiagnosticsShown overrides the linter line display cap.
func WithMaxDiagnosticsShown(n int) ComposerOption {
	return func(c *Composer) {
		if n > 0 {
			c.maxDiagnostics = n
		}
	}
}

// NewComposer creates a composer with the default display caps.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		maxFindings:    DefaultMaxFindingsShown,
		maxDiagnostics: DefaultMaxDiagnosticsShown,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose merges scan findings and lint diagnostics into one Advisory.
//
// # Description
//
//	Renders the stub block (capped, with an omitted-findings count and a fix
//	directive) and the lint block (capped, with an "and more" suffix). When
//	both inputs are empty the advisory collapses to the clean-bill line
//	naming the file's base name.
//
// # Inputs
//
//   - filePath: The file the gate evaluated; named in both block headers.
//   - findings: Stub scanner output, in scan order.
//   - diagnostics: Linter dispatcher output, in capture order.
//
// # Outputs
//
//   - Advisory: The composed result. Never empty: one of the two shapes
//     always holds.
func (c *Composer) Compose(filePath string, findings []scan.Finding, diagnostics []lint.DiagnosticLine) Advisory {
	if len(findings) == 0 && len(diagnostics) == 0 {
		return Advisory{
			CleanMessage: fmt.Sprintf("✓ %s - no issues detected", filepath.Base(filePath)),
		}
	}

	var adv Advisory
	if len(findings) > 0 {
		adv.StubSection = c.renderStubs(filePath, findings)
	}
	if len(diagnostics) > 0 {
		adv.LintSection = c.renderDiagnostics(diagnostics)
	}
	return adv
}

// renderStubs formats the stub block with the fix directive.
func (c *Composer) renderStubs(filePath string, findings []scan.Finding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ STUB PATTERNS DETECTED in %s:\n", filePath)

	shown := findings
	if len(shown) > c.maxFindings {
		shown = shown[:c.maxFindings]
	}
	for _, f := range shown {
		fmt.Fprintf(&b, "  Line %d: %s - `%s`\n", f.LineNumber, f.Label, f.Excerpt)
	}
	if omitted := len(findings) - len(shown); omitted > 0 {
		fmt.Fprintf(&b, "  ... and %d more\n", omitted)
	}

	b.WriteString("\nFix these NOW - replace with real implementation.")
	return b.String()
}

// renderDiagnostics formats the linter block.
func (c *Composer) renderDiagnostics(diagnostics []lint.DiagnosticLine) string {
	var b strings.Builder
	b.WriteString("🔍 LINTER ISSUES:")

	shown := diagnostics
	if len(shown) > c.maxDiagnostics {
		shown = shown[:c.maxDiagnostics]
	}
	for _, d := range shown {
		fmt.Fprintf(&b, "\n  %s", d.Text)
	}
	if len(diagnostics) > len(shown) {
		b.WriteString("\n  ... and more")
	}
	return b.String()
}
