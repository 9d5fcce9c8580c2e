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

// RuleTableVersion tracks the built-in evidence rule table. Bump when
// rules or marker sets change so downstream consumers can correlate
// classification shifts with table updates.
const RuleTableVersion = "2025.12"

// Rule maps an observed signal pattern to a category contribution.
//
// # Description
//
// Rules are pure data: each one names the probe it applies to, a
// predicate over the signal value, the category it supports, and a point
// delta. Rules are independent of each other; several rules may fire on
// the same signal. The table is built once and never mutated.
type Rule struct {
	// Probe is the signal name this rule applies to.
	Probe string

	// Match decides whether the rule fires. It is only called on
	// available signals of the named probe.
	Match func(signal.Signal) bool

	// Category receives Points when the rule fires.
	Category Category

	// Points is the score delta. Always positive in the built-in table.
	Points int

	// Reason is a short human-readable tag recorded in the contribution
	// list for explainability.
	Reason string
}

// SMBIOS chassis type numbers (System Enclosure, table 3.3.4.1).
var (
	notebookChassisTypes = map[int]bool{8: true, 9: true, 10: true, 14: true, 31: true, 32: true}
	desktopChassisTypes  = map[int]bool{3: true, 4: true, 6: true, 7: true, 13: true, 15: true, 16: true}
	serverChassisTypes   = map[int]bool{17: true, 23: true, 25: true, 28: true}
)

// DMI product-name marker sets for the hardware side. Matching is
// case-insensitive substring containment.
var (
	laptopProductMarkers      = []string{"ThinkPad", "Latitude", "XPS", "MacBook", "ZenBook", "IdeaPad", "Vivobook", "EliteBook", "ProBook"}
	workstationProductMarkers = []string{"Precision", "ThinkStation", "Z Tower", "Celsius"}
	serverProductMarkers      = []string{"PowerEdge", "ProLiant", "ThinkSystem", "Super Server", "PRIMERGY"}
)

func intAtLeast(n int) func(signal.Signal) bool {
	return func(s signal.Signal) bool { return s.Int >= n }
}

func intEquals(n int) func(signal.Signal) bool {
	return func(s signal.Signal) bool { return s.Int == n }
}

func chassisIn(set map[int]bool) func(signal.Signal) bool {
	return func(s signal.Signal) bool { return set[s.Int] }
}

func productContains(markers []string) func(signal.Signal) bool {
	return func(s signal.Signal) bool {
		product := strings.ToLower(s.Str)
		for _, marker := range markers {
			if strings.Contains(product, strings.ToLower(marker)) {
				return true
			}
		}
		return false
	}
}

// Rules returns the built-in evidence rule table in application order.
// The order also fixes the ordering of the contribution list in the
// resulting classification.
func Rules() []Rule {
	return []Rule{
		{signal.NameChassisType, chassisIn(notebookChassisTypes), Laptop, 40, "notebook chassis"},
		{signal.NameChassisType, chassisIn(desktopChassisTypes), Desktop, 30, "desktop chassis"},
		{signal.NameChassisType, chassisIn(serverChassisTypes), Server, 40, "server chassis"},

		{signal.NameBatteryCount, intAtLeast(1), Laptop, 30, "battery present"},
		{signal.NameBatteryCount, intEquals(0), Desktop, 10, "no battery"},

		{signal.NameWirelessIfaces, intAtLeast(1), Laptop, 10, "wireless interface"},
		{signal.NameWiredIfaces, intAtLeast(2), Server, 15, "multiple wired interfaces"},

		{signal.NameCPUCores, intAtLeast(16), Workstation, 20, "many cores"},
		{signal.NameCPUCores, intAtLeast(32), Server, 20, "server-class core count"},
		{signal.NameMemoryGB, intAtLeast(64), Workstation, 20, "large memory"},
		{signal.NameMemoryGB, intAtLeast(128), Server, 20, "server-class memory"},

		{signal.NameDisplayConnectors, intEquals(0), Server, 20, "headless"},
		{signal.NameDisplayConnectors, intAtLeast(2), Workstation, 10, "multiple displays"},

		{signal.NameAudioDevices, intEquals(0), Server, 10, "no audio hardware"},
		{signal.NameUSBPeripherals, intAtLeast(1), Desktop, 10, "usb peripherals"},

		{signal.NameDMIProduct, productContains(laptopProductMarkers), Laptop, 30, "laptop product line"},
		{signal.NameDMIProduct, productContains(workstationProductMarkers), Workstation, 30, "workstation product line"},
		{signal.NameDMIProduct, productContains(serverProductMarkers), Server, 40, "server product line"},
	}
}
