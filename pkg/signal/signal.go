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
Package signal collects atomic pieces of evidence about the host machine.

Each probe reads exactly one fact (chassis type, battery count, CPU cores,
...) through a sysinfo.Source and returns a typed Signal with an
availability flag and a source confidence. Probes never fail: an unreadable
source yields an unavailable Signal, which downstream scoring skips.
*/
package signal

import (
	"context"
	"sync"

	"github.com/AleutianAI/hostprofile/pkg/sysinfo"
)

// Confidence grades how much a signal's source is to be trusted.
// Firmware-backed sources (DMI, battery class) rank above enumerations
// that depend on optional tooling.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

// String returns "low", "medium", or "high".
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Kind identifies which value field of a Signal is meaningful.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindString
	KindList
)

// Signal is one atomic observation about the host.
//
// # Description
//
// Signals are immutable once collected: probes construct them, the
// classifiers only read them, and each classification run owns its own
// set. Only the field selected by Kind is meaningful; the others stay at
// their zero value.
type Signal struct {
	// Name is the stable probe identifier (see the Name* constants).
	Name string

	// Kind selects the populated value field.
	Kind Kind

	Bool bool
	Int  int
	Str  string
	List []string

	// Source grades the trustworthiness of the underlying source.
	Source Confidence

	// Available is false when the source could not be read at all.
	// An unavailable signal must never be scored; "could not look" is
	// not the same observation as "looked and found nothing".
	Available bool
}

// Stable probe names. These appear in contribution lists and in the
// exported report, so they are part of the downstream contract.
const (
	NameChassisType       = "chassis_type"
	NameBatteryCount      = "battery_count"
	NameDisplayConnectors = "display_connectors"
	NameWirelessIfaces    = "wireless_ifaces"
	NameWiredIfaces       = "wired_ifaces"
	NameAudioDevices      = "audio_devices"
	NameUSBPeripherals    = "usb_peripherals"
	NameCPUCores          = "cpu_cores"
	NameCPUFlags          = "cpu_flags"
	NameMemoryGB          = "memory_gb"
	NameDMIVendor         = "dmi_vendor"
	NameDMIProduct        = "dmi_product"
	NameKernelModules     = "kernel_modules"
	NamePCIVendors        = "pci_vendors"
	NameVirtWhat          = "virt_what"
)

// Unavailable returns the canonical "could not look" signal for a probe.
func Unavailable(name string) Signal {
	return Signal{Name: name, Available: false}
}

// BoolSignal constructs an available boolean signal.
func BoolSignal(name string, v bool, src Confidence) Signal {
	return Signal{Name: name, Kind: KindBool, Bool: v, Source: src, Available: true}
}

// IntSignal constructs an available integer signal.
func IntSignal(name string, v int, src Confidence) Signal {
	return Signal{Name: name, Kind: KindInt, Int: v, Source: src, Available: true}
}

// StrSignal constructs an available string signal.
func StrSignal(name string, v string, src Confidence) Signal {
	return Signal{Name: name, Kind: KindString, Str: v, Source: src, Available: true}
}

// ListSignal constructs an available list signal.
func ListSignal(name string, v []string, src Confidence) Signal {
	return Signal{Name: name, Kind: KindList, List: v, Source: src, Available: true}
}

// Probe reads one fact about the host. Probes are total functions: they
// return an unavailable Signal instead of an error, are idempotent, and
// have no dependencies on each other.
type Probe struct {
	Name    string
	Collect func(ctx context.Context, src sysinfo.Source) Signal
}

// Probes returns the full probe set in report order.
func Probes() []Probe {
	return []Probe{
		{NameChassisType, probeChassisType},
		{NameBatteryCount, probeBatteryCount},
		{NameDisplayConnectors, probeDisplayConnectors},
		{NameWirelessIfaces, probeWirelessIfaces},
		{NameWiredIfaces, probeWiredIfaces},
		{NameAudioDevices, probeAudioDevices},
		{NameUSBPeripherals, probeUSBPeripherals},
		{NameCPUCores, probeCPUCores},
		{NameCPUFlags, probeCPUFlags},
		{NameMemoryGB, probeMemoryGB},
		{NameDMIVendor, probeDMIVendor},
		{NameDMIProduct, probeDMIProduct},
		{NameKernelModules, probeKernelModules},
		{NamePCIVendors, probePCIVendors},
		{NameVirtWhat, probeVirtWhat},
	}
}

// Collect runs every probe against src and returns the completed signal
// set in probe order.
//
// # Description
//
// Probes run concurrently purely as a latency optimization; each goroutine
// writes to its own slot and correctness does not depend on ordering. Any
// probe that shells out applies the source's command timeout, so Collect
// is bounded even on a wedged machine.
func Collect(ctx context.Context, src sysinfo.Source) []Signal {
	probes := Probes()
	signals := make([]Signal, len(probes))

	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(slot int, p Probe) {
			defer wg.Done()
			signals[slot] = p.Collect(ctx, src)
		}(i, p)
	}
	wg.Wait()
	return signals
}

// Lookup returns the named signal from a collected set.
func Lookup(signals []Signal, name string) (Signal, bool) {
	for _, s := range signals {
		if s.Name == name {
			return s, true
		}
	}
	return Signal{}, false
}

// AnyAvailable reports whether at least one signal in the set was
// readable. When false, the run has hit total information loss and the
// caller must fail rather than classify.
func AnyAvailable(signals []Signal) bool {
	for _, s := range signals {
		if s.Available {
			return true
		}
	}
	return false
}
