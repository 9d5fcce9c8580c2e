// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hostprofile/pkg/signal"
)

// laptopSignals is the notebook scenario: notebook chassis, one battery,
// one wireless interface.
func laptopSignals() []signal.Signal {
	return []signal.Signal{
		signal.IntSignal(signal.NameChassisType, 10, signal.ConfidenceHigh),
		signal.IntSignal(signal.NameBatteryCount, 1, signal.ConfidenceHigh),
		signal.IntSignal(signal.NameWirelessIfaces, 1, signal.ConfidenceMedium),
	}
}

func TestClassifyLaptopScenario(t *testing.T) {
	t.Parallel()

	result := ClassifyHardware(laptopSignals(), Rules())

	assert.Equal(t, Laptop, result.Category)
	assert.Equal(t, TierHigh, result.Confidence, "notebook chassis + battery + wireless should score high")
	assert.Equal(t, 80, result.WinningScore)
	require.Len(t, result.Contributions, 3)
	assert.Equal(t, signal.NameChassisType, result.Contributions[0].Signal)
}

// TestClassifyDenseHostScenario is the 20-core, 64 GB, dual-NIC machine:
// it must resolve to workstation or server at medium or better.
func TestClassifyDenseHostScenario(t *testing.T) {
	t.Parallel()

	signals := []signal.Signal{
		signal.IntSignal(signal.NameCPUCores, 20, signal.ConfidenceHigh),
		signal.IntSignal(signal.NameMemoryGB, 64, signal.ConfidenceHigh),
		signal.IntSignal(signal.NameWiredIfaces, 2, signal.ConfidenceMedium),
		signal.IntSignal(signal.NameWirelessIfaces, 0, signal.ConfidenceMedium),
		signal.IntSignal(signal.NameBatteryCount, 0, signal.ConfidenceHigh),
		signal.IntSignal(signal.NameAudioDevices, 0, signal.ConfidenceMedium),
	}

	result := ClassifyHardware(signals, Rules())

	assert.Contains(t, []Category{Workstation, Server}, result.Category)
	assert.GreaterOrEqual(t, result.Confidence, TierMedium)
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	first := ClassifyHardware(laptopSignals(), Rules())
	for i := 0; i < 10; i++ {
		again := ClassifyHardware(laptopSignals(), Rules())
		require.Equal(t, first, again, "identical inputs must yield identical classifications")
	}
}

// TestClassifyScoreMonotonic verifies that adding a matching rule for
// the winning category never lowers the winning score.
func TestClassifyScoreMonotonic(t *testing.T) {
	t.Parallel()

	rules := Rules()
	base := ClassifyHardware(laptopSignals(), rules)

	extended := append(append([]Rule{}, rules...), Rule{
		Probe:    signal.NameBatteryCount,
		Match:    func(s signal.Signal) bool { return s.Int >= 1 },
		Category: Laptop,
		Points:   5,
		Reason:   "extra battery evidence",
	})
	grown := ClassifyHardware(laptopSignals(), extended)

	assert.Equal(t, Laptop, grown.Category)
	assert.GreaterOrEqual(t, grown.WinningScore, base.WinningScore)
	assert.Equal(t, base.WinningScore+5, grown.WinningScore)
}

// TestClassifyZeroScoreFallback verifies the explicit fallback: no rule
// fires, so the result is desktop at low confidence with no
// contributions, not a crash.
func TestClassifyZeroScoreFallback(t *testing.T) {
	t.Parallel()

	var signals []signal.Signal
	result := ClassifyHardware(signals, Rules())

	assert.Equal(t, Desktop, result.Category)
	assert.Equal(t, TierLow, result.Confidence)
	assert.Equal(t, 0, result.WinningScore)
	assert.Empty(t, result.Contributions)
}

func TestClassifySkipsUnavailableSignals(t *testing.T) {
	t.Parallel()

	signals := []signal.Signal{
		signal.Unavailable(signal.NameChassisType),
		signal.Unavailable(signal.NameBatteryCount),
	}
	result := ClassifyHardware(signals, Rules())

	assert.Equal(t, 0, result.WinningScore, "unavailable signals must not score")
	assert.Equal(t, Desktop, result.Category)
}

// TestScoreboardTieBreak verifies the fixed priority order:
// Desktop > Laptop > Workstation > Server.
func TestScoreboardTieBreak(t *testing.T) {
	t.Parallel()

	board := NewScoreboard()
	board.Add(Server, 25)
	board.Add(Laptop, 25)
	board.Add(Desktop, 25)
	board.Add(Workstation, 25)
	assert.Equal(t, Desktop, board.Leader())

	board = NewScoreboard()
	board.Add(Server, 25)
	board.Add(Workstation, 25)
	assert.Equal(t, Workstation, board.Leader())
}

func TestTierThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  Tier
	}{
		{0, TierLow},
		{29, TierLow},
		{30, TierMedium},
		{59, TierMedium},
		{60, TierHigh},
		{120, TierHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tierForScore(tc.score), "score %d", tc.score)
	}
}

func TestProductMarkerRules(t *testing.T) {
	t.Parallel()

	signals := []signal.Signal{
		signal.StrSignal(signal.NameDMIProduct, "Dell Inc. PowerEdge R740", signal.ConfidenceHigh),
	}
	result := ClassifyHardware(signals, Rules())
	assert.Equal(t, Server, result.Category)

	signals = []signal.Signal{
		signal.StrSignal(signal.NameDMIProduct, "ThinkPad X1 Carbon Gen 9", signal.ConfidenceHigh),
	}
	result = ClassifyHardware(signals, Rules())
	assert.Equal(t, Laptop, result.Category)
}

func TestCategoryRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		parsed, ok := ParseCategory(c.String())
		require.True(t, ok)
		assert.Equal(t, c, parsed)
	}
	_, ok := ParseCategory("mainframe")
	assert.False(t, ok)
}
