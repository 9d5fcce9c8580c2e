// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// hostprofile classifies the machine it runs on: hardware category
// (laptop / desktop / workstation / server), virtualization host, and a
// recommended configuration profile, printed as stable key=value lines
// for the downstream configuration generator.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/hostprofile/cmd/hostprofile/config"
	"github.com/AleutianAI/hostprofile/pkg/logging"
)

var logger = logging.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(CLIExitError)
	}
}

// errReported marks errors already printed by a command, so main does
// not repeat them.
var errReported = errors.New("error already reported")

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		level := config.Global.LogLevel
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		logger = logging.New(logging.Config{
			Level:   logging.ParseLevel(level),
			Service: "hostprofile",
		})
		return nil
	}
}
