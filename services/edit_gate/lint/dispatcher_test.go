// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MOCK RUNNER
// =============================================================================

// runnerCall records one RunInDir invocation.
type runnerCall struct {
	Dir  string
	Name string
	Args []string
}

// mockRunner implements CommandRunner for tests.
type mockRunner struct {
	mu      sync.Mutex
	calls   []runnerCall
	handler func(call runnerCall) (string, string, int, error)
}

func (m *mockRunner) RunInDir(ctx context.Context, dir string, env []string, name string, args ...string) (string, string, int, error) {
	call := runnerCall{Dir: dir, Name: name, Args: args}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.handler != nil {
		return m.handler(call)
	}
	return "", "", 0, nil
}

func (m *mockRunner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockRunner) call(i int) runnerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[i]
}

// rustProject creates a temp Cargo project shell and returns the source path.
func rustProject(t *testing.T) (root, file string) {
	t.Helper()
	root = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[package]\n"), 0644))
	srcDir := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(srcDir, 0755))
	file = filepath.Join(srcDir, "main.rs")
	require.NoError(t, os.WriteFile(file, []byte("fn main() {}\n"), 0644))
	return root, file
}

// =============================================================================
// DISPATCH ROUTING TESTS
// =============================================================================

func TestDispatcher_UnsupportedExtension(t *testing.T) {
	mock := &mockRunner{}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), "/proj/readme.md")

	assert.Nil(t, diags)
	assert.Equal(t, 0, mock.callCount(), "no process should run for unsupported extensions")
}

func TestDispatcher_DisabledToolchain(t *testing.T) {
	_, file := rustProject(t)
	mock := &mockRunner{}
	d := NewDispatcher(WithRunner(mock), WithToolchainDisabled("rust"))

	diags := d.Lint(context.Background(), file)

	assert.Nil(t, diags)
	assert.Equal(t, 0, mock.callCount())
}

func TestDispatcher_NoProjectRoot(t *testing.T) {
	// A .rs file with no Cargo.toml anywhere within the walk bound.
	dir := t.TempDir()
	file := filepath.Join(dir, "orphan.rs")
	require.NoError(t, os.WriteFile(file, []byte("fn main() {}\n"), 0644))

	mock := &mockRunner{}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	assert.Nil(t, diags)
	assert.Equal(t, 0, mock.callCount(), "no process should run without a root")
}

// =============================================================================
// PER-TOOLCHAIN DISPATCH TESTS
// =============================================================================

func TestDispatcher_Rust(t *testing.T) {
	root, file := rustProject(t)

	stderr := strings.Join([]string{
		"    Checking demo v0.1.0",
		"src/main.rs:3:5: warning: unused variable: `x`",
		"",
		"src/main.rs:10:1: error[E0308]: mismatched types",
		"note: required by a bound",
	}, "\n")

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", stderr, 1, nil
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Text, "warning: unused variable")
	assert.Contains(t, diags[1].Text, "error[E0308]")

	require.Equal(t, 1, mock.callCount())
	call := mock.call(0)
	assert.Equal(t, root, call.Dir, "clippy must run from the project root")
	assert.Equal(t, "cargo", call.Name)
	assert.Equal(t, []string{"clippy", "--message-format=short", "--quiet"}, call.Args)
}

func TestDispatcher_Go(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module demo\n"), 0644))
	file := filepath.Join(root, "handler.go")
	require.NoError(t, os.WriteFile(file, []byte("package demo\n"), 0644))

	stderr := "# demo\n./handler.go:12:2: unreachable code\n"
	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", stderr, 2, nil
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 2)
	assert.Equal(t, "# demo", diags[0].Text)
	assert.Equal(t, "./handler.go:12:2: unreachable code", diags[1].Text)

	call := mock.call(0)
	assert.Equal(t, root, call.Dir)
	assert.Equal(t, "go", call.Name)
	assert.Equal(t, []string{"vet", "./..."}, call.Args)
}

func TestDispatcher_JavaScript(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{}\n"), 0644))
	file := filepath.Join(root, "app.ts")
	require.NoError(t, os.WriteFile(file, []byte("let x\n"), 0644))

	stdout := strings.Join([]string{
		file + ": line 1, col 5, Error - 'x' is defined but never used. (no-unused-vars)",
		"",
		"1 problem",
	}, "\n")

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return stdout, "", 1, nil
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 1, "summary lines without colons are dropped")
	assert.Contains(t, diags[0].Text, "no-unused-vars")

	call := mock.call(0)
	assert.Equal(t, root, call.Dir)
	assert.Equal(t, "npx", call.Name)
	assert.Equal(t, []string{"eslint", "--format=compact", file}, call.Args)
}

func TestDispatcher_Python(t *testing.T) {
	file := filepath.Join(t.TempDir(), "util.py")
	require.NoError(t, os.WriteFile(file, []byte("import os\n"), 0644))

	stdout := file + ":1:1: F401 'os' imported but unused\n"
	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return stdout, "", 1, nil
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Text, "F401")

	call := mock.call(0)
	assert.Equal(t, "", call.Dir, "flake8 needs no project root")
	assert.Equal(t, "flake8", call.Name)
	assert.Equal(t, []string{"--max-line-length=120", file}, call.Args)
}

// =============================================================================
// FALLBACK TESTS
// =============================================================================

func TestDispatcher_PythonFallback(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.py")
	require.NoError(t, os.WriteFile(file, []byte("def f(:\n"), 0644))

	compileErr := "  File \"" + file + "\", line 1\n    def f(:\n          ^\nSyntaxError: invalid syntax\n"
	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		if call.Name == "flake8" {
			return "", "", -1, &exec.Error{Name: "flake8", Err: exec.ErrNotFound}
		}
		return "", compileErr, 1, nil
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 1, "fallback reports one combined entry")
	assert.Contains(t, diags[0].Text, "SyntaxError")
	assert.LessOrEqual(t, len([]rune(diags[0].Text)), 200)

	require.Equal(t, 2, mock.callCount())
	fallbackCall := mock.call(1)
	assert.Equal(t, "python", fallbackCall.Name)
	assert.Equal(t, []string{"-m", "py_compile", file}, fallbackCall.Args)
}

func TestDispatcher_PythonFallback_CleanFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "fine.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0644))

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		if call.Name == "flake8" {
			return "", "", -1, &exec.Error{Name: "flake8", Err: exec.ErrNotFound}
		}
		return "", "", 0, nil
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	assert.Empty(t, diags)
}

func TestDispatcher_PythonFallback_AlsoMissing(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nowhere.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0644))

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", "", -1, &exec.Error{Name: call.Name, Err: exec.ErrNotFound}
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	assert.Nil(t, diags, "missing interpreter is absorbed to empty")
	assert.Equal(t, 2, mock.callCount())
}

// =============================================================================
// FAILURE POLICY TESTS
// =============================================================================

func TestDispatcher_Timeout(t *testing.T) {
	_, file := rustProject(t)

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", "partial output discarded", -1, context.DeadlineExceeded
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 1)
	assert.Equal(t, TimeoutDiagnostic, diags[0].Text)
}

func TestDispatcher_FallbackTimeout(t *testing.T) {
	file := filepath.Join(t.TempDir(), "slow.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0644))

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		if call.Name == "flake8" {
			return "", "", -1, &exec.Error{Name: "flake8", Err: exec.ErrNotFound}
		}
		return "", "", -1, context.DeadlineExceeded
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 1)
	assert.Equal(t, TimeoutDiagnostic, diags[0].Text)
}

func TestDispatcher_ToolNotInstalled(t *testing.T) {
	_, file := rustProject(t)

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", "", -1, &exec.Error{Name: "cargo", Err: exec.ErrNotFound}
	}}
	d := NewDispatcher(WithRunner(mock))

	assert.Nil(t, d.Lint(context.Background(), file))
}

func TestDispatcher_ProcessFailure(t *testing.T) {
	_, file := rustProject(t)

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", "", -1, fmt.Errorf("fork/exec: permission denied")
	}}
	d := NewDispatcher(WithRunner(mock))

	assert.Nil(t, d.Lint(context.Background(), file))
}

// =============================================================================
// BOUNDING TESTS
// =============================================================================

func TestDispatcher_MaxErrorsCap(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module demo\n"), 0644))
	file := filepath.Join(root, "big.go")
	require.NoError(t, os.WriteFile(file, []byte("package demo\n"), 0644))

	var lines []string
	for i := 0; i < 25; i++ {
		lines = append(lines, fmt.Sprintf("./big.go:%d:1: issue %d", i+1, i+1))
	}
	stderr := strings.Join(lines, "\n")

	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", stderr, 2, nil
	}}

	d := NewDispatcher(WithRunner(mock))
	assert.Len(t, d.Lint(context.Background(), file), DefaultMaxErrors)

	small := NewDispatcher(WithRunner(mock), WithMaxErrors(3))
	assert.Len(t, small.Lint(context.Background(), file), 3)
}

func TestDispatcher_LineBudget(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module demo\n"), 0644))
	file := filepath.Join(root, "long.go")
	require.NoError(t, os.WriteFile(file, []byte("package demo\n"), 0644))

	stderr := "./long.go:1:1: " + strings.Repeat("x", 300) + "\nshort line\n"
	mock := &mockRunner{handler: func(call runnerCall) (string, string, int, error) {
		return "", stderr, 2, nil
	}}
	d := NewDispatcher(WithRunner(mock))

	diags := d.Lint(context.Background(), file)

	require.Len(t, diags, 2)
	for _, diag := range diags {
		assert.LessOrEqual(t, len([]rune(diag.Text)), 100)
	}
	assert.Equal(t, "short line", diags[1].Text)
}

// =============================================================================
// AVAILABILITY TESTS
// =============================================================================

func TestDispatcher_DetectAvailable(t *testing.T) {
	d := NewDispatcher()
	d.lookPath = func(name string) (string, error) {
		switch name {
		case "cargo", "go":
			return "/usr/bin/" + name, nil
		default:
			return "", exec.ErrNotFound
		}
	}

	available := d.DetectAvailable()

	require.Len(t, available, 4)
	assert.True(t, available["rust"])
	assert.True(t, available["go"])
	assert.False(t, available["python"])
	assert.False(t, available["javascript"])
}

func TestDispatcher_NilContext(t *testing.T) {
	d := NewDispatcher(WithRunner(&mockRunner{}))
	assert.Nil(t, d.Lint(nil, "/proj/a.go")) //nolint:staticcheck
}
