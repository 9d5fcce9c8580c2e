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

import "strings"

// MarkerTableVersion tracks the hypervisor marker database.
const MarkerTableVersion = "2025.12"

// Marker ties a free-form DMI substring to a hypervisor. Matching is
// case-insensitive containment; markers are versioned data, not control
// flow, so new hypervisor strings are added here without touching the
// cascade.
type Marker struct {
	Substring  string
	Hypervisor Hypervisor
}

// productMarkers match against the DMI product-name field.
var productMarkers = []Marker{
	{"VirtualBox", VirtualBox},
	{"VMware", VMware},
	{"KVM", QEMU},
	{"QEMU", QEMU},
	{"Standard PC", QEMU},
	{"Virtual Machine", HyperV},
	{"HVM domU", Xen},
}

// vendorMarkers match against the DMI system-vendor field.
var vendorMarkers = []Marker{
	{"innotek", VirtualBox},
	{"Oracle", VirtualBox},
	{"VMware", VMware},
	{"QEMU", QEMU},
	{"Microsoft Corporation", HyperV},
	{"Xen", Xen},
}

// matchMarkers returns the first marker whose substring occurs in text.
func matchMarkers(text string, markers []Marker) (Hypervisor, bool) {
	lowered := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lowered, strings.ToLower(m.Substring)) {
			return m.Hypervisor, true
		}
	}
	return None, false
}

// modulePrefixes map loaded kernel module names to the hypervisor whose
// paravirtualized drivers they are.
var modulePrefixes = []struct {
	Prefix     string
	Hypervisor Hypervisor
}{
	{"vboxguest", VirtualBox},
	{"vboxsf", VirtualBox},
	{"vmw_", VMware},
	{"vmwgfx", VMware},
	{"hv_", HyperV},
	{"hyperv", HyperV},
	{"xen_", Xen},
	{"xenfs", Xen},
	{"virtio", QEMU},
}

// pciVendorIDs map PCI vendor IDs (lowercase, no 0x prefix) to the
// hypervisor that emulates them.
var pciVendorIDs = map[string]Hypervisor{
	"1af4": QEMU,       // Red Hat virtio
	"80ee": VirtualBox, // innotek
	"15ad": VMware,
	"1414": HyperV, // Microsoft
	"5853": Xen,
}

// virtWhatNames maps systemd-detect-virt output to a hypervisor.
var virtWhatNames = map[string]Hypervisor{
	"kvm":        QEMU,
	"qemu":       QEMU,
	"oracle":     VirtualBox,
	"virtualbox": VirtualBox,
	"vmware":     VMware,
	"microsoft":  HyperV,
	"xen":        Xen,
}
