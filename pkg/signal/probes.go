// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package signal

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AleutianAI/hostprofile/pkg/sysinfo"
)

// Linux information source paths. Probes read these through the injected
// Source, never directly, so tests can substitute a FakeSource.
const (
	dmiPath         = "/sys/class/dmi/id"
	powerSupplyPath = "/sys/class/power_supply"
	drmPath         = "/sys/class/drm"
	netPath         = "/sys/class/net"
	soundPath       = "/sys/class/sound"
	pciDevicesPath  = "/sys/bus/pci/devices"
	cpuinfoPath     = "/proc/cpuinfo"
	meminfoPath     = "/proc/meminfo"
	modulesPath     = "/proc/modules"
)

// probeChassisType reads the SMBIOS chassis type number.
func probeChassisType(_ context.Context, src sysinfo.Source) Signal {
	raw, err := src.ReadFile(filepath.Join(dmiPath, "chassis_type"))
	if err != nil {
		return Unavailable(NameChassisType)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Unavailable(NameChassisType)
	}
	return IntSignal(NameChassisType, n, ConfidenceHigh)
}

// probeBatteryCount counts power supplies of type Battery. A machine with
// a readable power_supply class and no batteries reports zero, available.
func probeBatteryCount(_ context.Context, src sysinfo.Source) Signal {
	entries, err := src.ReadDir(powerSupplyPath)
	if err != nil {
		return Unavailable(NameBatteryCount)
	}
	count := 0
	for _, entry := range entries {
		kind, err := src.ReadFile(filepath.Join(powerSupplyPath, entry, "type"))
		if err == nil && kind == "Battery" {
			count++
		}
	}
	return IntSignal(NameBatteryCount, count, ConfidenceHigh)
}

// probeDisplayConnectors counts DRM connectors reporting "connected".
func probeDisplayConnectors(_ context.Context, src sysinfo.Source) Signal {
	entries, err := src.ReadDir(drmPath)
	if err != nil {
		return Unavailable(NameDisplayConnectors)
	}
	count := 0
	for _, entry := range entries {
		// Connector entries look like card0-eDP-1; bare card0 is the
		// device node itself.
		if !strings.Contains(entry, "-") {
			continue
		}
		status, err := src.ReadFile(filepath.Join(drmPath, entry, "status"))
		if err == nil && status == "connected" {
			count++
		}
	}
	return IntSignal(NameDisplayConnectors, count, ConfidenceMedium)
}

func probeWirelessIfaces(_ context.Context, src sysinfo.Source) Signal {
	entries, err := src.ReadDir(netPath)
	if err != nil {
		return Unavailable(NameWirelessIfaces)
	}
	count := 0
	for _, entry := range entries {
		if entry == "lo" {
			continue
		}
		if isWirelessIface(src, entry) {
			count++
		}
	}
	return IntSignal(NameWirelessIfaces, count, ConfidenceMedium)
}

func probeWiredIfaces(_ context.Context, src sysinfo.Source) Signal {
	entries, err := src.ReadDir(netPath)
	if err != nil {
		return Unavailable(NameWiredIfaces)
	}
	count := 0
	for _, entry := range entries {
		if entry == "lo" || isWirelessIface(src, entry) {
			continue
		}
		// ARPHRD_ETHER; rules out tunnels, bridges keep their own type.
		kind, err := src.ReadFile(filepath.Join(netPath, entry, "type"))
		if err == nil && kind == "1" {
			count++
		}
	}
	return IntSignal(NameWiredIfaces, count, ConfidenceMedium)
}

func isWirelessIface(src sysinfo.Source, name string) bool {
	if _, err := src.ReadDir(filepath.Join(netPath, name, "wireless")); err == nil {
		return true
	}
	_, err := src.ReadDir(filepath.Join(netPath, name, "phy80211"))
	return err == nil
}

// probeAudioDevices counts sound cards.
func probeAudioDevices(_ context.Context, src sysinfo.Source) Signal {
	entries, err := src.ReadDir(soundPath)
	if err != nil {
		return Unavailable(NameAudioDevices)
	}
	count := 0
	for _, entry := range entries {
		if strings.HasPrefix(entry, "card") {
			count++
		}
	}
	return IntSignal(NameAudioDevices, count, ConfidenceMedium)
}

// probeUSBPeripherals counts USB devices that are not root hubs, via
// lsusb. A missing lsusb binary is reported as unavailable, not as zero
// peripherals.
func probeUSBPeripherals(ctx context.Context, src sysinfo.Source) Signal {
	out, err := src.Run(ctx, "lsusb")
	if err != nil {
		return Unavailable(NameUSBPeripherals)
	}
	count := 0
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(strings.ToLower(line), "root hub") {
			continue
		}
		count++
	}
	return IntSignal(NameUSBPeripherals, count, ConfidenceMedium)
}

func probeCPUCores(_ context.Context, src sysinfo.Source) Signal {
	cpuinfo, err := src.ReadFile(cpuinfoPath)
	if err != nil {
		return Unavailable(NameCPUCores)
	}
	count := 0
	for _, line := range strings.Split(cpuinfo, "\n") {
		if strings.HasPrefix(line, "processor") {
			count++
		}
	}
	if count == 0 {
		return Unavailable(NameCPUCores)
	}
	return IntSignal(NameCPUCores, count, ConfidenceHigh)
}

// probeCPUFlags reads the feature flags of the first CPU. Only the
// hypervisor bit matters downstream, but the full list is carried so new
// rules need no new probe.
func probeCPUFlags(_ context.Context, src sysinfo.Source) Signal {
	cpuinfo, err := src.ReadFile(cpuinfoPath)
	if err != nil {
		return Unavailable(NameCPUFlags)
	}
	for _, line := range strings.Split(cpuinfo, "\n") {
		if !strings.HasPrefix(line, "flags") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		return ListSignal(NameCPUFlags, strings.Fields(parts[1]), ConfidenceHigh)
	}
	return Unavailable(NameCPUFlags)
}

func probeMemoryGB(_ context.Context, src sysinfo.Source) Signal {
	meminfo, err := src.ReadFile(meminfoPath)
	if err == nil {
		for _, line := range strings.Split(meminfo, "\n") {
			if !strings.HasPrefix(line, "MemTotal:") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				break
			}
			kb, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				break
			}
			return IntSignal(NameMemoryGB, roundKBToGB(kb), ConfidenceHigh)
		}
	}

	// Syscall fallback for environments that mask /proc.
	if mt, ok := src.(interface{ TotalMemoryBytes() (uint64, bool) }); ok {
		if bytes, ok := mt.TotalMemoryBytes(); ok {
			return IntSignal(NameMemoryGB, roundKBToGB(bytes/1024), ConfidenceMedium)
		}
	}
	return Unavailable(NameMemoryGB)
}

// roundKBToGB rounds to the nearest GB so a 15.9 GiB machine reports 16.
func roundKBToGB(kb uint64) int {
	const kbPerGB = 1024 * 1024
	gb := kb / kbPerGB
	if kb%kbPerGB >= kbPerGB/2 {
		gb++
	}
	return int(gb)
}

func probeDMIVendor(_ context.Context, src sysinfo.Source) Signal {
	vendor, err := src.ReadFile(filepath.Join(dmiPath, "sys_vendor"))
	if err != nil || vendor == "" {
		return Unavailable(NameDMIVendor)
	}
	return StrSignal(NameDMIVendor, vendor, ConfidenceHigh)
}

func probeDMIProduct(_ context.Context, src sysinfo.Source) Signal {
	product, err := src.ReadFile(filepath.Join(dmiPath, "product_name"))
	if err != nil || product == "" {
		return Unavailable(NameDMIProduct)
	}
	return StrSignal(NameDMIProduct, product, ConfidenceHigh)
}

func probeKernelModules(_ context.Context, src sysinfo.Source) Signal {
	raw, err := src.ReadFile(modulesPath)
	if err != nil {
		return Unavailable(NameKernelModules)
	}
	var modules []string
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			modules = append(modules, fields[0])
		}
	}
	return ListSignal(NameKernelModules, modules, ConfidenceMedium)
}

// probePCIVendors lists the vendor ID of every PCI device, normalized to
// lowercase without the 0x prefix.
func probePCIVendors(_ context.Context, src sysinfo.Source) Signal {
	entries, err := src.ReadDir(pciDevicesPath)
	if err != nil {
		return Unavailable(NamePCIVendors)
	}
	var vendors []string
	for _, entry := range entries {
		vendor, err := src.ReadFile(filepath.Join(pciDevicesPath, entry, "vendor"))
		if err != nil {
			continue
		}
		vendors = append(vendors, strings.ToLower(strings.TrimPrefix(vendor, "0x")))
	}
	return ListSignal(NamePCIVendors, vendors, ConfidenceMedium)
}

// probeVirtWhat asks the kernel/init system which hypervisor we run
// under. systemd-detect-virt prints "none" on physical hardware, which is
// itself an available observation.
func probeVirtWhat(ctx context.Context, src sysinfo.Source) Signal {
	out, err := src.Run(ctx, "systemd-detect-virt")
	if err != nil {
		return Unavailable(NameVirtWhat)
	}
	return StrSignal(NameVirtWhat, strings.ToLower(out), ConfidenceHigh)
}
