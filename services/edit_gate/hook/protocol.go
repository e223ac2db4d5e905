// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package hook implements the PostToolUse wire contract between the editing
// agent and the gate.
package hook

import (
	"path/filepath"
	"strings"
)

// EventName is the hook event reported back to the agent.
const EventName = "PostToolUse"

// Request is the invocation record the agent writes to stdin.
//
// Only the fields the gate conditions need are decoded; anything else in the
// record is ignored.
type Request struct {
	// ToolName is the agent tool that ran ("Write", "Edit", ...).
	ToolName string `json:"tool_name"`

	// ToolInput carries the tool's arguments.
	ToolInput ToolInput `json:"tool_input"`
}

// ToolInput is the subset of tool arguments the gate reads.
type ToolInput struct {
	// FilePath is the file the tool created or modified.
	FilePath string `json:"file_path"`
}

// Response is the record written to stdout for the agent.
type Response struct {
	HookSpecificOutput HookOutput `json:"hookSpecificOutput"`
}

// HookOutput carries the advisory back into the agent conversation.
type HookOutput struct {
	// HookEventName is always EventName.
	HookEventName string `json:"hookEventName"`

	// AdditionalContext is the composed advisory text.
	AdditionalContext string `json:"additionalContext"`
}

// NewResponse wraps advisory text in the wire envelope.
func NewResponse(advisoryText string) Response {
	return Response{
		HookSpecificOutput: HookOutput{
			HookEventName:     EventName,
			AdditionalContext: advisoryText,
		},
	}
}

// recognizedExtensions is the closed set of source extensions the gate
// processes. Broader than the linted set: files the dispatcher can not lint
// still get the stub scan.
var recognizedExtensions = map[string]bool{
	".rs":    true,
	".py":    true,
	".js":    true,
	".ts":    true,
	".tsx":   true,
	".jsx":   true,
	".go":    true,
	".java":  true,
	".c":     true,
	".cpp":   true,
	".h":     true,
	".hpp":   true,
	".cs":    true,
	".rb":    true,
	".php":   true,
	".swift": true,
	".kt":    true,
	".scala": true,
	".zig":   true,
	".odin":  true,
}

// RecognizedExtension reports whether the gate processes files with the
// given path's extension. Case-insensitive.
func RecognizedExtension(path string) bool {
	return recognizedExtensions[strings.ToLower(filepath.Ext(path))]
}

// SkipReason explains why a request was gated out. Empty means the request
// proceeds to evaluation.
type SkipReason string

const (
	// SkipNone means the request passes all gate conditions.
	SkipNone SkipReason = ""

	// SkipToolName means the tool was not a write operation.
	SkipToolName SkipReason = "tool is not a write operation"

	// SkipNoPath means the record carried no file path.
	SkipNoPath SkipReason = "no file path"

	// SkipExtension means the file type is not recognized.
	SkipExtension SkipReason = "unrecognized extension"

	// SkipExcludedPath means the file lives in an excluded location, such as
	// the hook's own installation directory.
	SkipExcludedPath SkipReason = "excluded path"
)

// ShouldProcess applies the gate conditions to a decoded request.
//
// # Description
//
//	A request proceeds only when the tool is Write or Edit, the file path is
//	present with a recognized source extension, and the path is not excluded.
//	The built-in exclusion covers the hook's own installation directory
//	(paths containing both ".claude" and "hooks"), which prevents the gate
//	from triggering on edits to itself; extraExcluded adds configured
//	substrings checked the same way.
//
// # Inputs
//
//   - req: The decoded invocation record.
//   - extraExcluded: Additional excluded path substrings, may be nil.
//
// # Outputs
//
//   - SkipReason: SkipNone to proceed, otherwise why the request is skipped.
func ShouldProcess(req Request, extraExcluded []string) SkipReason {
	if req.ToolName != "Write" && req.ToolName != "Edit" {
		return SkipToolName
	}

	path := req.ToolInput.FilePath
	if path == "" {
		return SkipNoPath
	}
	if !RecognizedExtension(path) {
		return SkipExtension
	}

	if strings.Contains(path, ".claude") && strings.Contains(path, "hooks") {
		return SkipExcludedPath
	}
	for _, substr := range extraExcluded {
		if substr != "" && strings.Contains(path, substr) {
			return SkipExcludedPath
		}
	}

	return SkipNone
}
