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
Package classify turns collected signals into a hardware category and a
virtualization verdict, each with an explicit confidence tier.

The hardware side folds a static evidence-rule table over the signal set
into a per-category scoreboard and picks the winner. The virtualization
side runs an ordered cascade of detection stages and halts at the first
confident hit. Both are pure with respect to their inputs: identical
signal sets always produce identical classifications.
*/
package classify

// Category is the coarse hardware class a machine is sorted into.
type Category int

// Declaration order is the tie-break priority: when two categories score
// equal, the earlier one wins. Desktop leads because it is the least
// destructive misclassification for downstream power and optimization
// settings.
const (
	Desktop Category = iota
	Laptop
	Workstation
	Server
)

// Categories lists every category in tie-break priority order.
func Categories() []Category {
	return []Category{Desktop, Laptop, Workstation, Server}
}

// String returns the lowercase category name used in reports.
func (c Category) String() string {
	switch c {
	case Desktop:
		return "desktop"
	case Laptop:
		return "laptop"
	case Workstation:
		return "workstation"
	case Server:
		return "server"
	default:
		return "unknown"
	}
}

// ParseCategory is the inverse of String.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if c.String() == s {
			return c, true
		}
	}
	return Desktop, false
}

// Tier buckets a classification's trustworthiness. Downstream consumers
// use it to decide whether to trust the answer or prompt a human.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// Winning-score thresholds for the hardware confidence tier.
const (
	highScoreThreshold   = 60
	mediumScoreThreshold = 30
)

// String returns "low", "medium", or "high".
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseTier is the inverse of String.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "high":
		return TierHigh, true
	case "medium":
		return TierMedium, true
	case "low":
		return TierLow, true
	}
	return TierLow, false
}

// tierForScore derives the confidence tier from the winning score.
func tierForScore(score int) Tier {
	switch {
	case score >= highScoreThreshold:
		return TierHigh
	case score >= mediumScoreThreshold:
		return TierMedium
	default:
		return TierLow
	}
}
