// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package recommend maps a hardware and virtualization classification to a
configuration profile.

The mapper is a total pure function: every (category, hypervisor) pair has
a defined output, there is no I/O, no randomness, and no wall-clock
dependence. Identical classifications always produce identical profiles.
*/
package recommend

import (
	"fmt"

	"github.com/AleutianAI/hostprofile/pkg/classify"
	"github.com/AleutianAI/hostprofile/pkg/signal"
)

// DesktopWeight grades how heavy a desktop environment the machine
// should run.
type DesktopWeight int

const (
	WeightMinimal DesktopWeight = iota
	WeightBalanced
	WeightFull
)

// String returns "minimal", "balanced", or "full".
func (w DesktopWeight) String() string {
	switch w {
	case WeightFull:
		return "full"
	case WeightBalanced:
		return "balanced"
	default:
		return "minimal"
	}
}

// ParseDesktopWeight is the inverse of String.
func ParseDesktopWeight(s string) (DesktopWeight, bool) {
	switch s {
	case "full":
		return WeightFull, true
	case "balanced":
		return WeightBalanced, true
	case "minimal":
		return WeightMinimal, true
	}
	return WeightMinimal, false
}

// Build parallelism bounds. The upper clamp avoids resource exhaustion on
// dense machines; the guest cap keeps builds polite inside a hypervisor.
const (
	maxParallelism      = 32
	guestParallelismCap = 4
	defaultParallelism  = 2
)

// Default power profile names per category. Config may override them.
var defaultPowerProfiles = map[classify.Category]string{
	classify.Laptop:      "laptop-powersave",
	classify.Desktop:     "balanced",
	classify.Workstation: "performance",
	classify.Server:      "server",
}

// Profile is the structured recommendation handed to the configuration
// generator.
type Profile struct {
	// PowerProfile names the power management strategy.
	PowerProfile string

	// DesktopWeight suggests how heavy a desktop environment to install.
	DesktopWeight DesktopWeight

	// BuildParallelism suggests a parallel build job count.
	BuildParallelism int

	// Rationale records each decision in order, for the report.
	Rationale []string
}

// Options adjusts the mapper from user configuration.
type Options struct {
	// PowerProfiles overrides the default power profile name per
	// category. Missing entries keep the default.
	PowerProfiles map[classify.Category]string

	// MaxParallelism caps BuildParallelism when positive.
	MaxParallelism int
}

// Map derives a Profile from the two classifications.
//
// # Description
//
// Rules, in order of force:
//   - Server hardware always gets the server power profile and a minimal
//     desktop, whatever the hypervisor.
//   - Any non-none hypervisor clamps the desktop weight below full:
//     guests are resource-constrained.
//   - Laptop (physical only) gets the battery-aware power profile.
//   - Build parallelism derives from the cpu_cores and memory_gb signals
//     carried through from collection, clamped, and capped harder in
//     guests.
//
// The function is total: unknown enum values fall back to desktop
// defaults rather than erroring.
func Map(hw classify.HardwareClassification, virt classify.VirtualizationClassification, signals []signal.Signal, opts Options) Profile {
	virtualized := virt.Hypervisor != classify.None

	power := powerProfileFor(hw.Category, opts)
	weight := baseWeight(hw.Category)

	var rationale []string
	rationale = append(rationale, fmt.Sprintf("category %s -> power profile %s", hw.Category, power))

	if virtualized {
		if weight > WeightBalanced {
			weight = WeightBalanced
		}
		if hw.Category == classify.Laptop {
			// A laptop-classified guest has no real battery to manage.
			weight = WeightMinimal
			power = powerProfileFor(classify.Desktop, opts)
			rationale = append(rationale, "laptop classification inside a guest: battery-aware profile dropped")
		}
		rationale = append(rationale, fmt.Sprintf("hypervisor %s: desktop weight clamped to %s", virt.Hypervisor, weight))
	}

	if hw.Category == classify.Server {
		weight = WeightMinimal
		rationale = append(rationale, "server hardware: minimal desktop weight forced")
	}

	parallelism := buildParallelism(signals, virtualized, opts, &rationale)

	return Profile{
		PowerProfile:     power,
		DesktopWeight:    weight,
		BuildParallelism: parallelism,
		Rationale:        rationale,
	}
}

func powerProfileFor(c classify.Category, opts Options) string {
	if name, ok := opts.PowerProfiles[c]; ok && name != "" {
		return name
	}
	if name, ok := defaultPowerProfiles[c]; ok {
		return name
	}
	return defaultPowerProfiles[classify.Desktop]
}

func baseWeight(c classify.Category) DesktopWeight {
	switch c {
	case classify.Laptop:
		return WeightBalanced
	case classify.Server:
		return WeightMinimal
	default:
		return WeightFull
	}
}

// buildParallelism derives a job count from the core and memory signals:
// one job per core, held back to memGB/2 on memory-starved machines.
func buildParallelism(signals []signal.Signal, virtualized bool, opts Options, rationale *[]string) int {
	cores, coresOK := signal.Lookup(signals, signal.NameCPUCores)
	if !coresOK || !cores.Available || cores.Int <= 0 {
		*rationale = append(*rationale, fmt.Sprintf("core count unknown: parallelism defaulted to %d", defaultParallelism))
		return capParallelism(defaultParallelism, virtualized, opts, rationale)
	}

	jobs := cores.Int
	if mem, ok := signal.Lookup(signals, signal.NameMemoryGB); ok && mem.Available && mem.Int > 0 {
		byMemory := mem.Int / 2
		if byMemory < 1 {
			byMemory = 1
		}
		if byMemory < jobs {
			jobs = byMemory
			*rationale = append(*rationale, fmt.Sprintf("parallelism held to %d by %d GB memory", jobs, mem.Int))
		}
	}
	if jobs > maxParallelism {
		jobs = maxParallelism
	}
	*rationale = append(*rationale, fmt.Sprintf("parallelism %d from %d cores", jobs, cores.Int))
	return capParallelism(jobs, virtualized, opts, rationale)
}

func capParallelism(jobs int, virtualized bool, opts Options, rationale *[]string) int {
	if virtualized && jobs > guestParallelismCap {
		jobs = guestParallelismCap
		*rationale = append(*rationale, fmt.Sprintf("guest environment: parallelism capped at %d", guestParallelismCap))
	}
	if opts.MaxParallelism > 0 && jobs > opts.MaxParallelism {
		jobs = opts.MaxParallelism
		*rationale = append(*rationale, fmt.Sprintf("configured cap: parallelism limited to %d", opts.MaxParallelism))
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}
