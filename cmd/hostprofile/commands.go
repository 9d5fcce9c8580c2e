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
)

// --- Global Command Variables ---
var (
	logLevelFlag string // CLI override for config log_level
	jsonOutput   bool   // detect: emit the JSON envelope instead of key=value
	noColor      bool   // detect: suppress the styled summary

	rootCmd = &cobra.Command{
		Use:   "hostprofile",
		Short: "Classify this machine's hardware and virtualization environment",
		Long: `hostprofile inspects firmware, bus, and peripheral signals of the
running machine, scores them against an evidence table, and reports the
hardware category, the virtualization host, and a recommended
configuration profile.

Running hostprofile without a subcommand is equivalent to 'hostprofile
detect'.`,
		RunE: runDetectCommand, // detect is the default action
	}

	detectCmd = &cobra.Command{
		Use:   "detect",
		Short: "Run the full classification and print the key=value report",
		RunE:  runDetectCommand, // Defined in cmd_detect.go
	}

	typeCmd = &cobra.Command{
		Use:   "type",
		Short: "Print only the hardware category (laptop, desktop, workstation, server)",
		RunE:  runTypeCommand, // Defined in cmd_type.go
	}

	profileCmd = &cobra.Command{
		Use:   "profile",
		Short: "Print the recommended power management profile",
		RunE:  runProfileCommand, // Defined in cmd_profile.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log verbosity: debug, info, warn, or error (overrides config)")

	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as a JSON envelope")
	detectCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable the styled summary")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as a JSON envelope")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable the styled summary")

	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(profileCmd)
}
