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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/hostprofile/cmd/hostprofile/config"
	"github.com/AleutianAI/hostprofile/pkg/sysinfo"
)

// runDetectCommand runs both classifiers and prints the full report.
//
// # Description
//
// Output on stdout is the stable key=value contract; the styled summary
// goes to stderr and only when stdout is a terminal, so piping the
// report never picks up decoration. Total information loss exits
// non-zero: "classification impossible" is not "physical desktop, low
// confidence".
func runDetectCommand(cmd *cobra.Command, args []string) error {
	run, err := runClassification(cmd.Context(), sysinfo.NewHostSource(), config.Global, logger)
	if err != nil {
		OutputError(jsonOutput, "detect", "classification failed", err)
		return errReported
	}

	if jsonOutput {
		return OutputJSON("detect", run.Report)
	}

	if err := run.Report.Export(os.Stdout); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if stdoutIsTerminal() {
		fmt.Fprintln(os.Stderr)
		if err := run.Report.Summary(os.Stderr, !noColor); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return nil
}
