// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AleutianAI/hostprofile/cmd/hostprofile/config"
	"github.com/AleutianAI/hostprofile/pkg/classify"
	"github.com/AleutianAI/hostprofile/pkg/logging"
	"github.com/AleutianAI/hostprofile/pkg/recommend"
	"github.com/AleutianAI/hostprofile/pkg/report"
	"github.com/AleutianAI/hostprofile/pkg/signal"
	"github.com/AleutianAI/hostprofile/pkg/sysinfo"
)

// ErrNoSystemInformation is the total-information-loss failure: not a
// single probe could read anything. Classification is impossible and the
// caller must not fall back to a guessed category.
var ErrNoSystemInformation = errors.New("no system information source could be read")

// classificationRun bundles one run's inputs and results. Each run owns
// its own signal set and results; nothing is shared across runs.
type classificationRun struct {
	Signals  []signal.Signal
	Hardware classify.HardwareClassification
	Virt     classify.VirtualizationClassification
	Profile  recommend.Profile
	Report   report.Report
}

// runClassification executes the full pipeline: collect signals, fold
// the evidence rules, run the virtualization cascade, map the
// recommendation, and assemble the report.
func runClassification(ctx context.Context, src sysinfo.Source, cfg config.HostprofileConfig, log *logging.Logger) (*classificationRun, error) {
	log = log.With("run_id", uuid.NewString())

	signals := signal.Collect(ctx, src)
	available := 0
	for _, sig := range signals {
		if sig.Available {
			available++
		} else {
			log.Debug("signal unavailable", "probe", sig.Name)
		}
	}
	log.Debug("signals collected", "total", len(signals), "available", available)

	if !signal.AnyAvailable(signals) {
		return nil, ErrNoSystemInformation
	}

	hw := classify.ClassifyHardware(signals, classify.Rules())
	log.Info("hardware classified",
		"category", hw.Category.String(),
		"score", hw.WinningScore,
		"confidence", hw.Confidence.String())

	virt := classify.ClassifyVirtualization(signals, cfg.ProductMarkers(), cfg.VendorMarkers())
	log.Info("virtualization classified",
		"hypervisor", virt.Hypervisor.String(),
		"confidence", virt.Confidence.String(),
		"method", virt.Method)

	profile := recommend.Map(hw, virt, signals, cfg.RecommendOptions())

	return &classificationRun{
		Signals:  signals,
		Hardware: hw,
		Virt:     virt,
		Profile:  profile,
		Report:   report.New(signals, hw, virt, profile),
	}, nil
}
