// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config holds the user-editable configuration for hostprofile.
//
// The config file can extend the classifier's marker tables and tune the
// recommendation mapper; it can never remove or weaken the built-in
// tables. All fields are optional.
package config

import (
	"github.com/AleutianAI/hostprofile/pkg/classify"
	"github.com/AleutianAI/hostprofile/pkg/recommend"
)

// HostprofileConfig is the root of ~/.hostprofile/hostprofile.yaml.
type HostprofileConfig struct {
	// LogLevel sets the stderr log verbosity.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// MaxParallelism caps the build parallelism hint when positive.
	MaxParallelism int `yaml:"max_parallelism" validate:"gte=0,lte=256"`

	// PowerProfiles overrides the power profile name per hardware
	// category. Keys are category names; missing keys keep defaults.
	PowerProfiles map[string]string `yaml:"power_profiles" validate:"omitempty,dive,keys,oneof=laptop desktop workstation server,endkeys,required"`

	// ExtraMarkers appends hypervisor markers to the built-in DMI
	// tables.
	ExtraMarkers MarkersConfig `yaml:"extra_markers"`
}

// MarkersConfig groups user-supplied hypervisor markers by DMI field.
type MarkersConfig struct {
	Product []MarkerConfig `yaml:"product" validate:"omitempty,dive"`
	Vendor  []MarkerConfig `yaml:"vendor" validate:"omitempty,dive"`
}

// MarkerConfig is one user-supplied DMI marker.
type MarkerConfig struct {
	// Substring is matched case-insensitively against the DMI field.
	// A minimum length guards against markers that would match
	// everything.
	Substring string `yaml:"substring" validate:"required,min=3"`

	// Hypervisor names the hypervisor this marker identifies.
	Hypervisor string `yaml:"hypervisor" validate:"required,oneof=kvm-qemu virtualbox vmware hyperv xen unknown"`
}

// DefaultConfig returns the config written on first run.
func DefaultConfig() HostprofileConfig {
	return HostprofileConfig{
		LogLevel:       "info",
		MaxParallelism: 0,
		PowerProfiles:  map[string]string{},
	}
}

// ProductMarkers converts the user's product markers to classifier form.
func (c HostprofileConfig) ProductMarkers() []classify.Marker {
	return toMarkers(c.ExtraMarkers.Product)
}

// VendorMarkers converts the user's vendor markers to classifier form.
func (c HostprofileConfig) VendorMarkers() []classify.Marker {
	return toMarkers(c.ExtraMarkers.Vendor)
}

func toMarkers(in []MarkerConfig) []classify.Marker {
	var out []classify.Marker
	for _, m := range in {
		// Validation guarantees the name parses.
		h, _ := classify.ParseHypervisor(m.Hypervisor)
		out = append(out, classify.Marker{Substring: m.Substring, Hypervisor: h})
	}
	return out
}

// RecommendOptions converts the config to mapper options.
func (c HostprofileConfig) RecommendOptions() recommend.Options {
	profiles := make(map[classify.Category]string)
	for name, profile := range c.PowerProfiles {
		if category, ok := classify.ParseCategory(name); ok {
			profiles[category] = profile
		}
	}
	return recommend.Options{
		PowerProfiles:  profiles,
		MaxParallelism: c.MaxParallelism,
	}
}
