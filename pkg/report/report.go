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
Package report serializes a classification run for machine consumption.

The key=value line format and the key names are the contract with the
external configuration generator; renaming a key breaks downstream
templates. Output is byte-stable for identical inputs: fixed key order, no
map iteration.
*/
package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/AleutianAI/hostprofile/pkg/classify"
	"github.com/AleutianAI/hostprofile/pkg/recommend"
	"github.com/AleutianAI/hostprofile/pkg/signal"
)

// Stable report keys consumed by external configuration generators.
// Do not rename without a corresponding downstream update.
const (
	KeyHardwareType     = "HARDWARE_TYPE"
	KeyConfidenceLevel  = "CONFIDENCE_LEVEL"
	KeyConfidenceScore  = "CONFIDENCE_SCORE"
	KeyHasBattery       = "HAS_BATTERY"
	KeyHasWireless      = "HAS_WIRELESS"
	KeyCPUCores         = "CPU_CORES"
	KeyMemoryGB         = "MEMORY_GB"
	KeyVMType           = "VM_TYPE"
	KeyVMConfidence     = "CONFIDENCE"
	KeyVMMethod         = "VM_DETECTION_METHOD"
	KeyPowerProfile     = "POWER_PROFILE"
	KeyDesktopWeight    = "DESKTOP_WEIGHT"
	KeyBuildParallelism = "BUILD_PARALLELISM"
	KeyRationale        = "RATIONALE"

	contribKeyPrefix = "CONTRIB_"
)

// Report is the flat, exportable view of one classification run.
//
// # Description
//
// Report carries everything the exporter writes and the parser recovers;
// Export followed by Parse yields an identical value. Yes/no/unknown
// facts are tri-state strings because "we could not read the battery
// state" must stay distinguishable from "no battery".
type Report struct {
	HardwareType       classify.Category
	HardwareConfidence classify.Tier
	Score              int

	// HasBattery and HasWireless are "yes", "no", or "unknown".
	HasBattery  string
	HasWireless string

	// CPUCores and MemoryGB are 0 when the signal was unavailable.
	CPUCores int
	MemoryGB int

	VMType       classify.Hypervisor
	VMConfidence classify.Tier
	VMMethod     string

	PowerProfile     string
	DesktopWeight    recommend.DesktopWeight
	BuildParallelism int
	Rationale        []string

	Contributions []classify.Contribution
}

// New assembles a Report from one run's signals and results.
func New(signals []signal.Signal, hw classify.HardwareClassification, virt classify.VirtualizationClassification, profile recommend.Profile) Report {
	r := Report{
		HardwareType:       hw.Category,
		HardwareConfidence: hw.Confidence,
		Score:              hw.WinningScore,
		HasBattery:         triState(signals, signal.NameBatteryCount),
		HasWireless:        triState(signals, signal.NameWirelessIfaces),
		CPUCores:           intValue(signals, signal.NameCPUCores),
		MemoryGB:           intValue(signals, signal.NameMemoryGB),
		VMType:             virt.Hypervisor,
		VMConfidence:       virt.Confidence,
		VMMethod:           virt.Method,
		PowerProfile:       profile.PowerProfile,
		DesktopWeight:      profile.DesktopWeight,
		BuildParallelism:   profile.BuildParallelism,
		Rationale:          profile.Rationale,
		Contributions:      hw.Contributions,
	}
	return r
}

func triState(signals []signal.Signal, name string) string {
	sig, ok := signal.Lookup(signals, name)
	if !ok || !sig.Available {
		return "unknown"
	}
	if sig.Int > 0 {
		return "yes"
	}
	return "no"
}

func intValue(signals []signal.Signal, name string) int {
	sig, ok := signal.Lookup(signals, name)
	if !ok || !sig.Available {
		return 0
	}
	return sig.Int
}

// Export writes the report as key=value lines in fixed order.
func (r Report) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)
	lines := []struct {
		key   string
		value string
	}{
		{KeyHardwareType, r.HardwareType.String()},
		{KeyConfidenceLevel, r.HardwareConfidence.String()},
		{KeyConfidenceScore, strconv.Itoa(r.Score)},
		{KeyHasBattery, r.HasBattery},
		{KeyHasWireless, r.HasWireless},
		{KeyCPUCores, strconv.Itoa(r.CPUCores)},
		{KeyMemoryGB, strconv.Itoa(r.MemoryGB)},
		{KeyVMType, r.VMType.String()},
		{KeyVMConfidence, r.VMConfidence.String()},
		{KeyVMMethod, r.VMMethod},
		{KeyPowerProfile, r.PowerProfile},
		{KeyDesktopWeight, r.DesktopWeight.String()},
		{KeyBuildParallelism, strconv.Itoa(r.BuildParallelism)},
		{KeyRationale, strings.Join(r.Rationale, ";")},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", line.key, line.value); err != nil {
			return err
		}
	}
	for _, c := range r.Contributions {
		if _, err := fmt.Fprintf(bw, "%s%s=%d;%s\n", contribKeyPrefix, c.Signal, c.Points, c.Reason); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Parse reads a report previously written by Export.
//
// # Description
//
// Parse is the exporter's inverse: feeding Export's output back recovers
// the exact Report value. Unknown keys are rejected so a drifted
// producer/consumer pair fails loudly instead of silently dropping data.
func Parse(r io.Reader) (Report, error) {
	var out Report
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Report{}, fmt.Errorf("report: malformed line %q", line)
		}
		if strings.HasPrefix(key, contribKeyPrefix) {
			contrib, err := parseContribution(key, value)
			if err != nil {
				return Report{}, err
			}
			out.Contributions = append(out.Contributions, contrib)
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}

	var err error
	if out.HardwareType, err = parseCategory(values, KeyHardwareType); err != nil {
		return Report{}, err
	}
	if out.HardwareConfidence, err = parseTier(values, KeyConfidenceLevel); err != nil {
		return Report{}, err
	}
	if out.Score, err = parseInt(values, KeyConfidenceScore); err != nil {
		return Report{}, err
	}
	out.HasBattery = values[KeyHasBattery]
	out.HasWireless = values[KeyHasWireless]
	if out.CPUCores, err = parseInt(values, KeyCPUCores); err != nil {
		return Report{}, err
	}
	if out.MemoryGB, err = parseInt(values, KeyMemoryGB); err != nil {
		return Report{}, err
	}
	vmType, ok := classify.ParseHypervisor(values[KeyVMType])
	if !ok {
		return Report{}, fmt.Errorf("report: bad %s value %q", KeyVMType, values[KeyVMType])
	}
	out.VMType = vmType
	if out.VMConfidence, err = parseTier(values, KeyVMConfidence); err != nil {
		return Report{}, err
	}
	out.VMMethod = values[KeyVMMethod]
	out.PowerProfile = values[KeyPowerProfile]
	weight, ok := recommend.ParseDesktopWeight(values[KeyDesktopWeight])
	if !ok {
		return Report{}, fmt.Errorf("report: bad %s value %q", KeyDesktopWeight, values[KeyDesktopWeight])
	}
	out.DesktopWeight = weight
	if out.BuildParallelism, err = parseInt(values, KeyBuildParallelism); err != nil {
		return Report{}, err
	}
	if raw := values[KeyRationale]; raw != "" {
		out.Rationale = strings.Split(raw, ";")
	}

	known := knownKeys()
	var unknown []string
	for key := range values {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Report{}, fmt.Errorf("report: unknown keys %v", unknown)
	}
	return out, nil
}

func knownKeys() map[string]bool {
	return map[string]bool{
		KeyHardwareType: true, KeyConfidenceLevel: true, KeyConfidenceScore: true,
		KeyHasBattery: true, KeyHasWireless: true, KeyCPUCores: true,
		KeyMemoryGB: true, KeyVMType: true, KeyVMConfidence: true,
		KeyVMMethod: true, KeyPowerProfile: true, KeyDesktopWeight: true,
		KeyBuildParallelism: true, KeyRationale: true,
	}
}

func parseContribution(key, value string) (classify.Contribution, error) {
	name := strings.TrimPrefix(key, contribKeyPrefix)
	pointsRaw, reason, _ := strings.Cut(value, ";")
	points, err := strconv.Atoi(pointsRaw)
	if err != nil {
		return classify.Contribution{}, fmt.Errorf("report: bad contribution %q: %w", key, err)
	}
	return classify.Contribution{Signal: name, Points: points, Reason: reason}, nil
}

func parseCategory(values map[string]string, key string) (classify.Category, error) {
	c, ok := classify.ParseCategory(values[key])
	if !ok {
		return classify.Desktop, fmt.Errorf("report: bad %s value %q", key, values[key])
	}
	return c, nil
}

func parseTier(values map[string]string, key string) (classify.Tier, error) {
	t, ok := classify.ParseTier(values[key])
	if !ok {
		return classify.TierLow, fmt.Errorf("report: bad %s value %q", key, values[key])
	}
	return t, nil
}

func parseInt(values map[string]string, key string) (int, error) {
	n, err := strconv.Atoi(values[key])
	if err != nil {
		return 0, fmt.Errorf("report: bad %s value %q", key, values[key])
	}
	return n, nil
}
