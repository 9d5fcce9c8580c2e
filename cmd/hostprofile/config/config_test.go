// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/hostprofile/pkg/classify"
)

func TestParseAndValidateDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ParseAndValidate([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.MaxParallelism)
	assert.Empty(t, cfg.ExtraMarkers.Product)
}

func TestParseAndValidateFull(t *testing.T) {
	t.Parallel()

	doc := []byte(`
log_level: debug
max_parallelism: 8
power_profiles:
  laptop: tlp-battery
  server: throughput
extra_markers:
  product:
    - substring: Cloud Hypervisor
      hypervisor: kvm-qemu
  vendor:
    - substring: Nutanix
      hypervisor: unknown
`)
	cfg, err := ParseAndValidate(doc)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxParallelism)
	assert.Equal(t, "tlp-battery", cfg.PowerProfiles["laptop"])

	product := cfg.ProductMarkers()
	require.Len(t, product, 1)
	assert.Equal(t, classify.Marker{Substring: "Cloud Hypervisor", Hypervisor: classify.QEMU}, product[0])

	vendor := cfg.VendorMarkers()
	require.Len(t, vendor, 1)
	assert.Equal(t, classify.UnknownHypervisor, vendor[0].Hypervisor)
}

func TestParseAndValidateRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "log_level: [broken"},
		{"bad log level", "log_level: loud"},
		{"negative parallelism", "max_parallelism: -1"},
		{"excessive parallelism", "max_parallelism: 1000"},
		{"bad category key", "power_profiles:\n  mainframe: x"},
		{"short marker substring", "extra_markers:\n  product:\n    - substring: ab\n      hypervisor: vmware"},
		{"bad hypervisor name", "extra_markers:\n  product:\n    - substring: SomeBox\n      hypervisor: parallels"},
		{"marker missing hypervisor", "extra_markers:\n  vendor:\n    - substring: SomeBox"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAndValidate([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestRecommendOptions(t *testing.T) {
	t.Parallel()

	cfg := HostprofileConfig{
		MaxParallelism: 12,
		PowerProfiles: map[string]string{
			"workstation": "performance-max",
		},
	}
	opts := cfg.RecommendOptions()

	assert.Equal(t, 12, opts.MaxParallelism)
	assert.Equal(t, "performance-max", opts.PowerProfiles[classify.Workstation])
	_, ok := opts.PowerProfiles[classify.Laptop]
	assert.False(t, ok)
}
