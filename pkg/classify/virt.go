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
	"strings"

	"github.com/AleutianAI/hostprofile/pkg/signal"
)

// Hypervisor identifies the virtualization host a machine runs under.
type Hypervisor int

const (
	None Hypervisor = iota
	QEMU
	VirtualBox
	VMware
	HyperV
	Xen
	UnknownHypervisor
)

// String returns the lowercase hypervisor name used in reports.
func (h Hypervisor) String() string {
	switch h {
	case None:
		return "none"
	case QEMU:
		return "kvm-qemu"
	case VirtualBox:
		return "virtualbox"
	case VMware:
		return "vmware"
	case HyperV:
		return "hyperv"
	case Xen:
		return "xen"
	default:
		return "unknown"
	}
}

// Hypervisors enumerates every hypervisor value.
func Hypervisors() []Hypervisor {
	return []Hypervisor{None, QEMU, VirtualBox, VMware, HyperV, Xen, UnknownHypervisor}
}

// ParseHypervisor is the inverse of String.
func ParseHypervisor(s string) (Hypervisor, bool) {
	for _, h := range Hypervisors() {
		if h.String() == s {
			return h, true
		}
	}
	return None, false
}

// VirtualizationClassification is the cascade's terminal result. Exactly
// one is produced per run; when no virtualization signal fires the result
// is None at high confidence, because the absence of every virtualization
// signal is itself strong evidence of physical hardware.
type VirtualizationClassification struct {
	Hypervisor Hypervisor
	Confidence Tier
	Method     string
}

// Stage is one detection method in the cascade. It inspects the signal
// set plus its marker tables and either yields a classification or
// passes.
type Stage struct {
	// Name becomes the Method of a classification this stage yields.
	Name string

	Detect func(ev Evidence) (VirtualizationClassification, bool)
}

// Evidence is the read-only view a stage gets: the collected signals and
// the effective marker tables (built-ins plus any config additions).
type Evidence struct {
	Signals        []signal.Signal
	ProductMarkers []Marker
	VendorMarkers  []Marker
}

func (ev Evidence) lookup(name string) (signal.Signal, bool) {
	sig, ok := signal.Lookup(ev.Signals, name)
	if !ok || !sig.Available {
		return signal.Signal{}, false
	}
	return sig, true
}

// Stages returns the cascade in authority order. Stages run in sequence
// and the cascade halts at the first stage that yields a result, so a
// paravirtualized driver loaded for some other hypervisor can never
// override an earlier, more authoritative verdict.
func Stages() []Stage {
	return []Stage{
		{"kernel", detectKernelVirt},
		{"dmi-product", detectDMIProduct},
		{"dmi-vendor", detectDMIVendor},
		{"cpu-flags", detectHypervisorFlag},
		{"device-signature", detectDeviceSignatures},
	}
}

// detectKernelVirt trusts the kernel's own answer. "none" is an
// authoritative physical-hardware verdict, a known name maps directly,
// and an unrecognized non-none answer still proves virtualization.
func detectKernelVirt(ev Evidence) (VirtualizationClassification, bool) {
	sig, ok := ev.lookup(signal.NameVirtWhat)
	if !ok || sig.Str == "" {
		return VirtualizationClassification{}, false
	}
	if sig.Str == "none" {
		return VirtualizationClassification{None, TierHigh, "kernel"}, true
	}
	if h, ok := virtWhatNames[sig.Str]; ok {
		return VirtualizationClassification{h, TierHigh, "kernel"}, true
	}
	return VirtualizationClassification{UnknownHypervisor, TierHigh, "kernel"}, true
}

func detectDMIProduct(ev Evidence) (VirtualizationClassification, bool) {
	sig, ok := ev.lookup(signal.NameDMIProduct)
	if !ok {
		return VirtualizationClassification{}, false
	}
	if h, ok := matchMarkers(sig.Str, ev.ProductMarkers); ok {
		return VirtualizationClassification{h, TierHigh, "dmi-product"}, true
	}
	return VirtualizationClassification{}, false
}

func detectDMIVendor(ev Evidence) (VirtualizationClassification, bool) {
	sig, ok := ev.lookup(signal.NameDMIVendor)
	if !ok {
		return VirtualizationClassification{}, false
	}
	if h, ok := matchMarkers(sig.Str, ev.VendorMarkers); ok {
		return VirtualizationClassification{h, TierHigh, "dmi-vendor"}, true
	}
	return VirtualizationClassification{}, false
}

// detectHypervisorFlag sees the generic "running under some hypervisor"
// CPU bit. It proves virtualization but carries no vendor detail.
func detectHypervisorFlag(ev Evidence) (VirtualizationClassification, bool) {
	sig, ok := ev.lookup(signal.NameCPUFlags)
	if !ok {
		return VirtualizationClassification{}, false
	}
	for _, flag := range sig.List {
		if flag == "hypervisor" {
			return VirtualizationClassification{UnknownHypervisor, TierMedium, "cpu-flags"}, true
		}
	}
	return VirtualizationClassification{}, false
}

// detectDeviceSignatures scans loaded kernel modules and PCI vendor IDs
// for a specific hypervisor's paravirtualized devices.
func detectDeviceSignatures(ev Evidence) (VirtualizationClassification, bool) {
	if sig, ok := ev.lookup(signal.NameKernelModules); ok {
		for _, module := range sig.List {
			for _, mp := range modulePrefixes {
				if strings.HasPrefix(module, mp.Prefix) {
					return VirtualizationClassification{mp.Hypervisor, TierMedium, "device-signature"}, true
				}
			}
		}
	}
	if sig, ok := ev.lookup(signal.NamePCIVendors); ok {
		for _, vendor := range sig.List {
			if h, ok := pciVendorIDs[vendor]; ok {
				return VirtualizationClassification{h, TierMedium, "device-signature"}, true
			}
		}
	}
	return VirtualizationClassification{}, false
}

// ClassifyVirtualization runs the cascade over the collected signals.
//
// # Description
//
// Stages run in authority order and the first hit wins. extraProduct and
// extraVendor extend the built-in marker tables (user config may append
// markers, never remove built-ins). If nothing fires the terminal result
// is None at high confidence with method "absence".
func ClassifyVirtualization(signals []signal.Signal, extraProduct, extraVendor []Marker) VirtualizationClassification {
	ev := Evidence{
		Signals:        signals,
		ProductMarkers: append(append([]Marker{}, productMarkers...), extraProduct...),
		VendorMarkers:  append(append([]Marker{}, vendorMarkers...), extraVendor...),
	}
	for _, stage := range Stages() {
		if result, ok := stage.Detect(ev); ok {
			return result
		}
	}
	return VirtualizationClassification{None, TierHigh, "absence"}
}
