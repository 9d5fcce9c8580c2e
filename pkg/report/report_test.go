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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hostprofile/pkg/classify"
	"github.com/AleutianAI/hostprofile/pkg/recommend"
	"github.com/AleutianAI/hostprofile/pkg/signal"
)

func sampleReport() Report {
	return Report{
		HardwareType:       classify.Laptop,
		HardwareConfidence: classify.TierHigh,
		Score:              80,
		HasBattery:         "yes",
		HasWireless:        "yes",
		CPUCores:           8,
		MemoryGB:           16,
		VMType:             classify.None,
		VMConfidence:       classify.TierHigh,
		VMMethod:           "absence",
		PowerProfile:       "laptop-powersave",
		DesktopWeight:      recommend.WeightBalanced,
		BuildParallelism:   8,
		Rationale:          []string{"category laptop -> power profile laptop-powersave", "parallelism 8 from 8 cores"},
		Contributions: []classify.Contribution{
			{Signal: signal.NameChassisType, Points: 40, Reason: "notebook chassis"},
			{Signal: signal.NameBatteryCount, Points: 30, Reason: "battery present"},
			{Signal: signal.NameWirelessIfaces, Points: 10, Reason: "wireless interface"},
		},
	}
}

func TestExportParseRoundTrip(t *testing.T) {
	t.Parallel()

	original := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, original.Export(&buf))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

// TestExportByteStable: two exports of the same report produce identical
// bytes. The downstream generator diffs report files, so key order and
// formatting must never drift.
func TestExportByteStable(t *testing.T) {
	t.Parallel()

	r := sampleReport()

	var first, second bytes.Buffer
	require.NoError(t, r.Export(&first))
	require.NoError(t, r.Export(&second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestExportFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, sampleReport().Export(&buf))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 17, "14 fixed keys plus 3 contributions")

	assert.Equal(t, "HARDWARE_TYPE=laptop", lines[0])
	assert.Equal(t, "CONFIDENCE_LEVEL=high", lines[1])
	assert.Equal(t, "CONFIDENCE_SCORE=80", lines[2])
	assert.Equal(t, "HAS_BATTERY=yes", lines[3])
	assert.Equal(t, "VM_TYPE=none", lines[7])
	assert.Equal(t, "VM_DETECTION_METHOD=absence", lines[9])
	assert.Equal(t, "CONTRIB_chassis_type=40;notebook chassis", lines[14])

	for _, line := range lines {
		assert.Contains(t, line, "=", "every line is key=value")
	}
}

func TestNewTriState(t *testing.T) {
	t.Parallel()

	hw := classify.HardwareClassification{Category: classify.Desktop, Confidence: classify.TierLow}
	virt := classify.VirtualizationClassification{Hypervisor: classify.None, Confidence: classify.TierHigh, Method: "absence"}
	profile := recommend.Profile{PowerProfile: "balanced", BuildParallelism: 2}

	// Battery readable and zero: "no", not "unknown".
	signals := []signal.Signal{
		signal.IntSignal(signal.NameBatteryCount, 0, signal.ConfidenceHigh),
		signal.Unavailable(signal.NameWirelessIfaces),
	}
	r := New(signals, hw, virt, profile)
	assert.Equal(t, "no", r.HasBattery)
	assert.Equal(t, "unknown", r.HasWireless)
	assert.Equal(t, 0, r.CPUCores, "unavailable core count exports as 0")

	signals = []signal.Signal{
		signal.IntSignal(signal.NameBatteryCount, 1, signal.ConfidenceHigh),
		signal.IntSignal(signal.NameWirelessIfaces, 2, signal.ConfidenceMedium),
	}
	r = New(signals, hw, virt, profile)
	assert.Equal(t, "yes", r.HasBattery)
	assert.Equal(t, "yes", r.HasWireless)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, sampleReport().Export(&buf))
	buf.WriteString("SURPRISE_KEY=1\n")

	_, err := Parse(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SURPRISE_KEY")
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{"no separator", "HARDWARE_TYPE laptop\n"},
		{"bad category", "HARDWARE_TYPE=toaster\n"},
		{"bad score", strings.Replace(exported(t), "CONFIDENCE_SCORE=80", "CONFIDENCE_SCORE=eighty", 1)},
		{"bad contribution", strings.Replace(exported(t), "CONTRIB_chassis_type=40", "CONTRIB_chassis_type=many", 1)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyRationale(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	r.Rationale = nil
	r.Contributions = nil

	var buf bytes.Buffer
	require.NoError(t, r.Export(&buf))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, r, parsed)
}

func exported(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Export(&buf))
	return buf.String()
}
