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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/hostprofile/cmd/hostprofile/config"
	"github.com/AleutianAI/hostprofile/pkg/sysinfo"
)

// runTypeCommand prints the bare hardware category. When every probe is
// unavailable it fails like detect does, rather than fabricating a
// default category for scripts to consume.
func runTypeCommand(cmd *cobra.Command, args []string) error {
	run, err := runClassification(cmd.Context(), sysinfo.NewHostSource(), config.Global, logger)
	if err != nil {
		OutputError(false, "type", "classification failed", err)
		return errReported
	}
	fmt.Println(run.Hardware.Category.String())
	return nil
}
