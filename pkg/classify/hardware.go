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

import "github.com/AleutianAI/hostprofile/pkg/signal"

// Contribution records one rule firing for the winning category.
type Contribution struct {
	// Signal is the probe name that triggered the rule.
	Signal string

	// Points is the score delta the rule added.
	Points int

	// Reason is the rule's explainability tag.
	Reason string
}

// HardwareClassification is the outcome of the evidence fold.
//
// # Description
//
// Read-only once produced. Contributions lists every rule that fired for
// the winning category, in rule-table order, so a report can explain why
// the machine was classified the way it was.
type HardwareClassification struct {
	Category      Category
	WinningScore  int
	Confidence    Tier
	Contributions []Contribution
}

// Scoreboard accumulates evidence points per category for a single run.
//
// # Description
//
// A Scoreboard is a plain value owned by one classification run. It is
// created zeroed, mutated only by the fold in ClassifyHardware, and
// discarded once the classification is produced. Nothing about it is
// shared or global: re-running the classifier is always safe.
type Scoreboard struct {
	scores map[Category]int
}

// NewScoreboard returns a scoreboard with every category at zero.
func NewScoreboard() *Scoreboard {
	scores := make(map[Category]int, len(Categories()))
	for _, c := range Categories() {
		scores[c] = 0
	}
	return &Scoreboard{scores: scores}
}

// Add credits points to a category.
func (b *Scoreboard) Add(c Category, points int) {
	b.scores[c] += points
}

// Score returns a category's accumulated points.
func (b *Scoreboard) Score(c Category) int {
	return b.scores[c]
}

// Leader returns the highest-scoring category. Ties resolve by the fixed
// priority order of Categories().
func (b *Scoreboard) Leader() Category {
	leader := Desktop
	best := -1
	for _, c := range Categories() {
		if b.scores[c] > best {
			leader = c
			best = b.scores[c]
		}
	}
	return leader
}

// ClassifyHardware folds the rule table over the collected signals.
//
// # Description
//
// Every available signal is matched against every rule for its probe;
// matching rules add their points to the rule's category. The
// highest-scoring category wins, with ties broken by fixed priority
// (Desktop > Laptop > Workstation > Server). The confidence tier derives
// from the winning score: high at 60+, medium at 30+, low below.
//
// If no rule fires at all the result is the explicit fallback: Desktop
// at low confidence with an empty contribution list, never an error.
//
// # Inputs
//
//   - signals: one classification run's collected signal set
//   - rules: the evidence table, normally Rules() plus any config additions
//
// # Outputs
//
//   - HardwareClassification: deterministic for identical inputs
func ClassifyHardware(signals []signal.Signal, rules []Rule) HardwareClassification {
	board := NewScoreboard()

	type firing struct {
		rule   Rule
		signal string
	}
	var fired []firing

	for _, rule := range rules {
		sig, ok := signal.Lookup(signals, rule.Probe)
		if !ok || !sig.Available {
			continue
		}
		if rule.Match(sig) {
			board.Add(rule.Category, rule.Points)
			fired = append(fired, firing{rule, sig.Name})
		}
	}

	winner := board.Leader()
	score := board.Score(winner)

	var contributions []Contribution
	for _, f := range fired {
		if f.rule.Category != winner {
			continue
		}
		contributions = append(contributions, Contribution{
			Signal: f.signal,
			Points: f.rule.Points,
			Reason: f.rule.Reason,
		})
	}

	return HardwareClassification{
		Category:      winner,
		WinningScore:  score,
		Confidence:    tierForScore(score),
		Contributions: contributions,
	}
}
