// Package scandiff compares two scans of the same normalized URL and
// renders the decision-relevant changes as a short list of chips.
package scandiff

import (
	"fmt"

	"github.com/defaultanswer/readiness-core/models"
)

const (
	maxChips       = 3
	scoreChipFloor = 5 // generic score chip only when the move is material
)

// Compute diffs the current scan against the previous one. Chips come in
// fixed priority order (pricing, schema, FAQ, then a generic score move)
// and are capped, so the most decision-relevant signal always wins a slot
// over a generic score note.
func Compute(current, previous models.AnalysisResult) models.ScanDelta {
	delta := models.ScanDelta{
		ScoreDelta:       current.Score - previous.Score,
		CoverageDelta:    coverage(current.Extracted) - coverage(previous.Extracted),
		ReadinessChanged: current.Readiness != previous.Readiness,
	}

	var chips []models.DeltaChip
	add := func(text, tone string) {
		if len(chips) < maxChips {
			chips = append(chips, models.DeltaChip{Text: text, Tone: tone})
		}
	}

	cur, prev := current.Extracted, previous.Extracted

	if cur.HasPricing != prev.HasPricing {
		if cur.HasPricing {
			add("Pricing now visible", models.ToneGood)
		} else {
			add("Pricing no longer visible", models.ToneBad)
		}
	}
	if cur.HasSchema != prev.HasSchema {
		if cur.HasSchema {
			add("Schema markup added", models.ToneGood)
		} else {
			add("Schema markup removed", models.ToneBad)
		}
	}
	if hasFAQEvidence(cur) != hasFAQEvidence(prev) {
		if hasFAQEvidence(cur) {
			add("FAQ coverage added", models.ToneGood)
		} else {
			add("FAQ coverage lost", models.ToneBad)
		}
	}
	if delta.ScoreDelta >= scoreChipFloor {
		add(fmt.Sprintf("Score improved by %d", delta.ScoreDelta), models.ToneGood)
	} else if delta.ScoreDelta <= -scoreChipFloor {
		add(fmt.Sprintf("Score dropped by %d", -delta.ScoreDelta), models.ToneBad)
	}

	delta.Chips = chips
	delta.SummaryLine = summarize(delta, current)
	return delta
}

func hasFAQEvidence(s models.ExtractedSignals) bool {
	return s.HasFAQ || s.HasIndirectFAQ || s.HasDirectAnswers
}

// coverage counts the core signals present in a scan; its delta shows
// whether the retrievable surface grew or shrank independent of weighting.
func coverage(s models.ExtractedSignals) int {
	count := 0
	for _, present := range []bool{
		s.Title != "",
		s.MetaDescription != "",
		len(s.H1) > 0,
		s.HasFAQ || s.HasIndirectFAQ || s.HasDirectAnswers,
		s.HasSchema,
		s.HasPricing,
		s.HasAbout,
		s.HasContact,
		s.HasHowItWorks,
	} {
		if present {
			count++
		}
	}
	return count
}

func summarize(delta models.ScanDelta, current models.AnalysisResult) string {
	switch {
	case delta.ReadinessChanged:
		return fmt.Sprintf("Readiness changed to %q.", current.Readiness)
	case delta.ScoreDelta > 0:
		return fmt.Sprintf("Score up %d since the last scan.", delta.ScoreDelta)
	case delta.ScoreDelta < 0:
		return fmt.Sprintf("Score down %d since the last scan.", -delta.ScoreDelta)
	default:
		return "No material change since the last scan."
	}
}
