// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hostprofile/pkg/classify"
	"github.com/AleutianAI/hostprofile/pkg/signal"
)

func hwFor(c classify.Category) classify.HardwareClassification {
	return classify.HardwareClassification{Category: c, Confidence: classify.TierHigh}
}

func virtFor(h classify.Hypervisor) classify.VirtualizationClassification {
	method := "kernel"
	if h == classify.None {
		method = "absence"
	}
	return classify.VirtualizationClassification{Hypervisor: h, Confidence: classify.TierHigh, Method: method}
}

// TestMapTotal runs Map over the full category x hypervisor grid and
// checks that every pair yields a usable profile.
func TestMapTotal(t *testing.T) {
	t.Parallel()

	for _, c := range classify.Categories() {
		for _, h := range classify.Hypervisors() {
			c, h := c, h
			name := fmt.Sprintf("%s/%s", c, h)
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				profile := Map(hwFor(c), virtFor(h), nil, Options{})

				assert.NotEmpty(t, profile.PowerProfile)
				assert.GreaterOrEqual(t, profile.BuildParallelism, 1)
				assert.LessOrEqual(t, profile.BuildParallelism, maxParallelism)
				assert.NotEmpty(t, profile.Rationale)
			})
		}
	}
}

func TestMapPure(t *testing.T) {
	t.Parallel()

	signals := []signal.Signal{
		signal.IntSignal(signal.NameCPUCores, 8, signal.ConfidenceHigh),
		signal.IntSignal(signal.NameMemoryGB, 16, signal.ConfidenceHigh),
	}
	first := Map(hwFor(classify.Laptop), virtFor(classify.None), signals, Options{})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Map(hwFor(classify.Laptop), virtFor(classify.None), signals, Options{}))
	}
}

func TestPowerProfileDefaults(t *testing.T) {
	t.Parallel()

	cases := map[classify.Category]string{
		classify.Laptop:      "laptop-powersave",
		classify.Desktop:     "balanced",
		classify.Workstation: "performance",
		classify.Server:      "server",
	}
	for c, want := range cases {
		profile := Map(hwFor(c), virtFor(classify.None), nil, Options{})
		assert.Equal(t, want, profile.PowerProfile, "category %s", c)
	}
}

func TestPowerProfileOverride(t *testing.T) {
	t.Parallel()

	opts := Options{PowerProfiles: map[classify.Category]string{
		classify.Laptop: "tlp-battery",
	}}
	profile := Map(hwFor(classify.Laptop), virtFor(classify.None), nil, opts)
	assert.Equal(t, "tlp-battery", profile.PowerProfile)

	// Categories without an override keep the default.
	profile = Map(hwFor(classify.Server), virtFor(classify.None), nil, opts)
	assert.Equal(t, "server", profile.PowerProfile)
}

func TestGuestClampsDesktopWeight(t *testing.T) {
	t.Parallel()

	// Workstation on bare metal gets a full desktop.
	profile := Map(hwFor(classify.Workstation), virtFor(classify.None), nil, Options{})
	assert.Equal(t, WeightFull, profile.DesktopWeight)

	// The same hardware classification inside a guest does not.
	profile = Map(hwFor(classify.Workstation), virtFor(classify.VMware), nil, Options{})
	assert.Equal(t, WeightBalanced, profile.DesktopWeight)
}

// TestLaptopInGuest: a laptop-looking guest has no real battery, so the
// battery-aware power profile is dropped and the desktop goes minimal.
func TestLaptopInGuest(t *testing.T) {
	t.Parallel()

	profile := Map(hwFor(classify.Laptop), virtFor(classify.VirtualBox), nil, Options{})

	assert.Equal(t, "balanced", profile.PowerProfile, "guest must get the desktop power profile")
	assert.Equal(t, WeightMinimal, profile.DesktopWeight)
	assert.Contains(t, profile.Rationale, "laptop classification inside a guest: battery-aware profile dropped")
}

func TestServerForcesMinimal(t *testing.T) {
	t.Parallel()

	for _, h := range classify.Hypervisors() {
		profile := Map(hwFor(classify.Server), virtFor(h), nil, Options{})
		assert.Equal(t, WeightMinimal, profile.DesktopWeight, "hypervisor %s", h)
		assert.Equal(t, "server", profile.PowerProfile)
	}
}

func TestBuildParallelism(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cores   int
		memGB   int
		virt    classify.Hypervisor
		maxOpt  int
		want    int
	}{
		{"memory ample", 8, 32, classify.None, 0, 8},
		{"memory starved", 16, 8, classify.None, 0, 4},
		{"upper clamp", 64, 512, classify.None, 0, maxParallelism},
		{"guest cap", 16, 64, classify.QEMU, 0, guestParallelismCap},
		{"configured cap", 16, 64, classify.None, 6, 6},
		{"single core", 1, 2, classify.None, 0, 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			signals := []signal.Signal{
				signal.IntSignal(signal.NameCPUCores, tc.cores, signal.ConfidenceHigh),
				signal.IntSignal(signal.NameMemoryGB, tc.memGB, signal.ConfidenceHigh),
			}
			profile := Map(hwFor(classify.Desktop), virtFor(tc.virt), signals, Options{MaxParallelism: tc.maxOpt})
			assert.Equal(t, tc.want, profile.BuildParallelism)
		})
	}
}

func TestParallelismDefaultWhenCoresUnknown(t *testing.T) {
	t.Parallel()

	signals := []signal.Signal{signal.Unavailable(signal.NameCPUCores)}
	profile := Map(hwFor(classify.Desktop), virtFor(classify.None), signals, Options{})

	assert.Equal(t, defaultParallelism, profile.BuildParallelism)
	assert.Contains(t, profile.Rationale, fmt.Sprintf("core count unknown: parallelism defaulted to %d", defaultParallelism))
}

func TestDesktopWeightRoundTrip(t *testing.T) {
	t.Parallel()

	for _, w := range []DesktopWeight{WeightMinimal, WeightBalanced, WeightFull} {
		parsed, ok := ParseDesktopWeight(w.String())
		require.True(t, ok)
		assert.Equal(t, w, parsed)
	}
	_, ok := ParseDesktopWeight("enormous")
	assert.False(t, ok)
}
