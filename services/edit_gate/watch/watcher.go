// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package watch runs continuous gate evaluations over a directory tree.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/EditGate/pkg/logging"
	"github.com/AleutianAI/EditGate/services/edit_gate/advisory"
	"github.com/AleutianAI/EditGate/services/edit_gate/gate"
	"github.com/AleutianAI/EditGate/services/edit_gate/hook"
)

// AdvisoryHandler receives the advisory for one changed file.
type AdvisoryHandler func(path string, adv advisory.Advisory)

// Options configures a Watcher.
type Options struct {
	// DebounceWindow is how long to wait for more writes before evaluating.
	// Editors save in bursts; one evaluation per burst is enough.
	// Default: 400ms.
	DebounceWindow time.Duration

	// MaxChecksPerSecond caps gate evaluations. Linter runs are expensive;
	// a bulk operation (checkout, formatter) must not fan out into dozens
	// of subprocess trees. Default: 2.
	MaxChecksPerSecond int

	// IgnorePatterns are directory/file names skipped entirely.
	// Default: .git, node_modules, __pycache__, target, .idea.
	IgnorePatterns []string

	// BufferSize is the pending-event channel capacity. Default: 1000.
	BufferSize int
}

// DefaultOptions returns the defaults described on Options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow:     400 * time.Millisecond,
		MaxChecksPerSecond: 2,
		IgnorePatterns:     []string{".git", "node_modules", "__pycache__", "target", ".idea"},
		BufferSize:         1000,
	}
}

// Watcher watches a tree and evaluates the gate for every changed source
// file.
//
// # Description
//
// Write and create events on recognized source files are debounced per
// burst, deduplicated per path, rate-limited, and then evaluated with the
// same stateless gate computation the hook uses. The watcher holds no result
// state between events; stopping and restarting loses nothing.
//
// # Thread Safety
//
// Safe for concurrent use. The handler is called from a single goroutine.
type Watcher struct {
	root     string
	runner   *gate.Runner
	handler  AdvisoryHandler
	logger   *logging.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration
	limiter  *rate.Limiter
	ignore   []string

	events   chan string
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.RWMutex
	watching bool
}

// WatcherOption configures a Watcher beyond Options.
type WatcherOption func(*Watcher)

// WithWatchLogger attaches a logger. The default discards everything.
func WithWatchLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher creates a watcher over root.
//
// # Inputs
//
//   - root: Directory tree to watch.
//   - runner: Gate runner used for each evaluation.
//   - handler: Called with each advisory; must not be nil.
//   - opts: Tuning options; zero fields take defaults.
//
// # Outputs
//
//   - *Watcher: Ready to Start.
//   - error: Non-nil if the underlying fsnotify watcher can not be created.
func NewWatcher(root string, runner *gate.Runner, handler AdvisoryHandler, opts Options, wopts ...WatcherOption) (*Watcher, error) {
	defaults := DefaultOptions()
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = defaults.DebounceWindow
	}
	if opts.MaxChecksPerSecond <= 0 {
		opts.MaxChecksPerSecond = defaults.MaxChecksPerSecond
	}
	if opts.IgnorePatterns == nil {
		opts.IgnorePatterns = defaults.IgnorePatterns
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaults.BufferSize
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		runner:   runner,
		handler:  handler,
		logger:   logging.Discard(),
		fsw:      fsw,
		debounce: opts.DebounceWindow,
		limiter:  rate.NewLimiter(rate.Limit(opts.MaxChecksPerSecond), 1),
		ignore:   opts.IgnorePatterns,
		events:   make(chan string, opts.BufferSize),
		done:     make(chan struct{}),
	}
	for _, opt := range wopts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. Two goroutines run until Stop or ctx cancellation:
// the event filter and the debounced evaluator.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)
	go w.evaluateLoop(ctx)

	w.logger.Info("watching", "root", w.root)
	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// IsWatching reports whether the watcher is active.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

// addRecursive registers root and every non-ignored subdirectory.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// shouldIgnore applies the ignore patterns and the hook self-exclusion.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.ignore {
		if base == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if strings.Contains(path, string(filepath.Separator)+pattern+string(filepath.Separator)) {
			return true
		}
	}
	return strings.Contains(path, ".claude") && strings.Contains(path, "hooks")
}

// interesting reports whether an event should feed the gate.
func (w *Watcher) interesting(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if w.shouldIgnore(event.Name) {
		return false
	}
	return hook.RecognizedExtension(event.Name)
}

// processEvents filters raw fsnotify events onto the pending channel.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			// New directories join the watch set.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.shouldIgnore(event.Name) {
						w.fsw.Add(event.Name)
					}
					continue
				}
			}

			if !w.interesting(event) {
				continue
			}
			select {
			case w.events <- event.Name:
			default:
				w.logger.Warn("event buffer full, dropping", "file", event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// evaluateLoop batches pending paths and evaluates once per burst.
func (w *Watcher) evaluateLoop(ctx context.Context) {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		for path := range pending {
			delete(pending, path)
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			adv := w.runner.Evaluate(ctx, path)
			w.handler(path, adv)
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case path := <-w.events:
			pending[path] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			flush()
		}
	}
}
