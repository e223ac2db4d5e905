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
	"github.com/spf13/cobra"

	"github.com/AleutianAI/EditGate/cmd/editgate/config"
	"github.com/AleutianAI/EditGate/pkg/logging"
	"github.com/AleutianAI/EditGate/pkg/ux"
)

// --- Global Command Variables ---
var (
	plainOutput bool
	jsonOutput  bool
	strictMode  bool
	forceInit   bool

	appLogger = logging.Discard()

	rootCmd = &cobra.Command{
		Use:   "editgate",
		Short: "A post-write quality gate for automated editing agents",
		Long: `EditGate checks files touched by an editing agent for stub patterns
				and linter issues, and reports them back as a single advisory.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfgErr := config.Load()

			if plainOutput {
				ux.SetMode(ux.ModePlain)
			} else {
				ux.InitMode()
			}

			// The hook surface keeps stderr silent and stdout reserved for
			// the wire payload; everything else logs per config.
			quiet := config.Global.Log.Quiet || cmd.Name() == "hook"
			logger, logErr := logging.New(logging.Config{
				Level:   logging.ParseLevel(config.Global.Log.Level),
				LogDir:  config.Global.Log.ResolveDir(),
				Service: "editgate",
				JSON:    config.Global.Log.JSON,
				Quiet:   quiet,
			})
			appLogger = logger
			if logErr != nil {
				appLogger.Warn("file logging unavailable", "error", logErr)
			}
			if cfgErr != nil {
				appLogger.Warn("configuration problem, using defaults", "error", cfgErr)
			}
		},
	}

	hookCmd = &cobra.Command{
		Use:   "hook",
		Short: "Run as a PostToolUse hook: read one record from stdin, write the advisory to stdout",
		Run:   runHook, // Defined in cmd_hook.go
	}

	checkCmd = &cobra.Command{
		Use:   "check [file...]",
		Short: "Run the gate on files and print the advisories",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCheck, // Defined in cmd_check.go
	}

	doctorCmd = &cobra.Command{
		Use:   "doctor",
		Short: "Report which toolchains are installed and what project this directory belongs to",
		Run:   runDoctor, // Defined in cmd_doctor.go
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to ~/.editgate/editgate.yaml",
		Run:   runInit, // Defined in cmd_init.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a directory tree and run the gate on every changed source file",
		Args:  cobra.MaximumNArgs(1),
		Run:   runWatch, // Defined in cmd_watch.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false,
		"Plain output without colors or icons (also set by EDITGATE_PLAIN=1)")

	rootCmd.AddCommand(hookCmd)

	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit one JSON advisory per file")
	checkCmd.Flags().BoolVar(&strictMode, "strict", false, "Exit 1 when any file is not clean (for CI)")

	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")

	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration without asking")

	rootCmd.AddCommand(watchCmd)
}
