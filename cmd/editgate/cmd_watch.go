// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/EditGate/cmd/editgate/config"
	"github.com/AleutianAI/EditGate/pkg/ux"
	"github.com/AleutianAI/EditGate/services/edit_gate/advisory"
	"github.com/AleutianAI/EditGate/services/edit_gate/watch"
)

// runWatch runs the continuous gate over a directory tree until SIGINT or
// SIGTERM. Output streams plainly line by line so it works in scrollback
// and CI logs; each evaluation is the same stateless computation the hook
// performs.
func runWatch(cmd *cobra.Command, args []string) {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	runner, err := newGateRunner()
	if err != nil {
		ux.Error(fmt.Sprintf("could not start the gate: %v", err))
		os.Exit(1)
	}

	handler := func(path string, adv advisory.Advisory) {
		renderAdvisory(path, adv)
	}

	opts := watch.Options{
		DebounceWindow:     time.Duration(config.Global.Watch.DebounceMs) * time.Millisecond,
		MaxChecksPerSecond: config.Global.Watch.MaxChecksPerSecond,
	}
	watcher, err := watch.NewWatcher(root, runner, handler, opts,
		watch.WithWatchLogger(appLogger))
	if err != nil {
		ux.Error(fmt.Sprintf("could not create the watcher: %v", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		ux.Error(fmt.Sprintf("could not start watching %s: %v", root, err))
		os.Exit(1)
	}
	defer watcher.Stop()

	ux.Title("watching " + root)
	ux.Muted("Ctrl-C to stop")
	<-ctx.Done()
	ux.Muted("stopped")
}
