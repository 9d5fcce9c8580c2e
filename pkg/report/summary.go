// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/hostprofile/pkg/classify"
)

var (
	colorPrimary = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorMuted   = lipgloss.Color("#5C7A84")
)

var summaryStyles = struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Warn  lipgloss.Style
	Muted lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
	Label: lipgloss.NewStyle().Foreground(colorMuted).Width(16),
	Value: lipgloss.NewStyle().Bold(true),
	Warn:  lipgloss.NewStyle().Foreground(colorWarning),
	Muted: lipgloss.NewStyle().Foreground(colorMuted),
}

// Summary writes the human-readable block. With color disabled (stdout is
// not a terminal) the same layout renders as plain text.
func (r Report) Summary(w io.Writer, color bool) error {
	styled := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}
	pad := func(label string) string {
		if color {
			return summaryStyles.Label.Render(label)
		}
		return fmt.Sprintf("%-16s", label)
	}

	var b strings.Builder
	b.WriteString(styled(summaryStyles.Title, "Host classification") + "\n")

	hwLine := fmt.Sprintf("%s (%s confidence, score %d)", r.HardwareType, r.HardwareConfidence, r.Score)
	if r.HardwareConfidence == classify.TierLow {
		hwLine = styled(summaryStyles.Warn, hwLine+" (verify before trusting)")
	} else {
		hwLine = styled(summaryStyles.Value, hwLine)
	}
	b.WriteString(pad("Hardware") + hwLine + "\n")

	vmLine := fmt.Sprintf("%s (%s confidence, via %s)", r.VMType, r.VMConfidence, r.VMMethod)
	b.WriteString(pad("Virtualization") + styled(summaryStyles.Value, vmLine) + "\n")

	b.WriteString(pad("Battery") + r.HasBattery + "\n")
	b.WriteString(pad("Wireless") + r.HasWireless + "\n")
	b.WriteString(pad("CPU / memory") + fmt.Sprintf("%d cores, %d GB\n", r.CPUCores, r.MemoryGB))
	b.WriteString(pad("Power profile") + styled(summaryStyles.Value, r.PowerProfile) + "\n")
	b.WriteString(pad("Desktop weight") + r.DesktopWeight.String() + "\n")
	b.WriteString(pad("Build jobs") + fmt.Sprintf("%d\n", r.BuildParallelism))

	if len(r.Contributions) > 0 {
		b.WriteString(styled(summaryStyles.Muted, "Evidence:") + "\n")
		for _, c := range r.Contributions {
			line := fmt.Sprintf("  +%d %s (%s)", c.Points, c.Reason, c.Signal)
			b.WriteString(styled(summaryStyles.Muted, line) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
