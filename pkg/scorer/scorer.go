// Package scorer composes extracted signals into a weighted breakdown and
// a bounded 0-100 readiness score. Failed fetches short-circuit to a
// sentinel score: a partially-scored page must never look comparable to a
// fully-scored one.
package scorer

import (
	"fmt"
	"strings"
	"time"

	"github.com/defaultanswer/readiness-core/models"
)

// Readiness thresholds. Hand-tuned product constants, not derived values.
const (
	strongScoreFloor = 75
	weakScoreCeiling = 50
)

// Check maxima per category. Category totals: Entity 25, Answerability 30,
// Commercial 20, Trust 25.
const (
	maxTitle       = 8
	maxMeta        = 7
	maxH1          = 6
	maxH2          = 4
	maxFAQ         = 12
	maxDirect      = 8
	maxHowItWorks  = 10
	maxPricing     = 12
	maxOfferSchema = 8
	maxSchema      = 10
	maxAbout       = 7
	maxContact     = 8
)

// offerSchemaTypes are JSON-LD types that describe what is being sold.
var offerSchemaTypes = []string{"Product", "Offer", "Service", "SoftwareApplication"}

// Score maps signals and fetch diagnostics to a full analysis result.
// Identity fields (report ID, URLs) are the caller's concern.
func Score(signals models.ExtractedSignals, diag models.FetchDiagnostics) models.AnalysisResult {
	status := deriveStatus(signals, diag)
	if status != models.StatusOK {
		return failedResult(signals, diag, status)
	}

	breakdown := buildBreakdown(signals)

	total := 0
	for _, item := range breakdown {
		total += item.Points
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	reasoning := buildReasoning(breakdown)
	negatives := 0
	for _, bullet := range reasoning {
		if len(bullet) > 0 && bullet[0] == '-' {
			negatives++
		}
	}

	return models.AnalysisResult{
		Score:            total,
		Breakdown:        breakdown,
		Weaknesses:       weaknesses(breakdown),
		AnalysisStatus:   status,
		Readiness:        readinessLabel(total, negatives, status),
		Reasoning:        reasoning,
		SnapshotQuality:  signals.SnapshotQuality,
		FetchDiagnostics: diag,
		Extracted:        signals,
		CreatedAt:        signals.FetchedAt,
	}
}

// deriveStatus classifies the scan outcome from fetch diagnostics first,
// then snapshot quality.
func deriveStatus(signals models.ExtractedSignals, diag models.FetchDiagnostics) string {
	switch diag.FailureClass {
	case models.FailureBlocked:
		return models.StatusBlocked
	case models.FailureNetwork, models.FailureHTTP:
		return models.StatusError
	}
	if signals.SnapshotQuality != models.SnapshotOK {
		return models.StatusSnapshotIncomplete
	}
	return models.StatusOK
}

// failedResult is the sentinel artifact for unusable scans. The Error
// category is mutually exclusive with all scoring categories.
func failedResult(signals models.ExtractedSignals, diag models.FetchDiagnostics, status string) models.AnalysisResult {
	reason := diag.FailureReason
	if reason == "" {
		reason = fmt.Sprintf("content not scoreable: snapshot quality %q", signals.SnapshotQuality)
	}

	var bullet string
	switch status {
	case models.StatusBlocked:
		bullet = "- The site refuses automated retrieval, so AI systems cannot read it."
	case models.StatusSnapshotIncomplete:
		bullet = "- The page returned too little readable content to evaluate."
	default:
		bullet = "- The page could not be retrieved."
	}

	createdAt := signals.FetchedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return models.AnalysisResult{
		Score: models.FailureScore,
		Breakdown: []models.BreakdownItem{
			{Label: "Page retrieval", Category: models.CategoryError, Points: 0, Max: 0, Reason: reason},
		},
		Weaknesses:       []string{"Page retrieval"},
		AnalysisStatus:   status,
		Readiness:        models.ReadinessNot,
		Reasoning:        []string{bullet},
		SnapshotQuality:  signals.SnapshotQuality,
		FetchDiagnostics: diag,
		Extracted:        signals,
		CreatedAt:        createdAt,
	}
}

func buildBreakdown(s models.ExtractedSignals) []models.BreakdownItem {
	var items []models.BreakdownItem
	add := func(label, category string, points, max int, reason string) {
		items = append(items, models.BreakdownItem{
			Label: label, Category: category, Points: points, Max: max, Reason: reason,
		})
	}

	// Entity Clarity
	if s.Title != "" {
		add("Page title", models.CategoryEntity, maxTitle, maxTitle, "title tag present")
	} else {
		add("Page title", models.CategoryEntity, 0, maxTitle, "missing title tag")
	}
	if s.MetaDescription != "" {
		add("Meta description", models.CategoryEntity, maxMeta, maxMeta, "meta description present")
	} else {
		add("Meta description", models.CategoryEntity, 0, maxMeta, "missing meta description")
	}
	switch {
	case len(s.H1) == 1:
		add("Primary heading", models.CategoryEntity, maxH1, maxH1, "single clear H1")
	case len(s.H1) > 1:
		add("Primary heading", models.CategoryEntity, maxH1/2, maxH1, fmt.Sprintf("%d competing H1 headings", len(s.H1)))
	default:
		add("Primary heading", models.CategoryEntity, 0, maxH1, "no H1 heading")
	}
	if len(s.H2) >= 2 {
		add("Section structure", models.CategoryEntity, maxH2, maxH2, "content organized under H2 sections")
	} else {
		add("Section structure", models.CategoryEntity, 0, maxH2, "little or no H2 section structure")
	}

	// Answerability
	switch {
	case s.HasFAQ:
		add("FAQ coverage", models.CategoryAnswerability, maxFAQ, maxFAQ, "explicit FAQ on page")
	case s.HasIndirectFAQ:
		add("FAQ coverage", models.CategoryAnswerability, maxFAQ/2, maxFAQ, "FAQ linked but not on page")
	default:
		add("FAQ coverage", models.CategoryAnswerability, 0, maxFAQ, "no FAQ evidence")
	}
	if s.HasDirectAnswers {
		add("Direct answers", models.CategoryAnswerability, maxDirect, maxDirect, "question headings answered inline")
	} else {
		add("Direct answers", models.CategoryAnswerability, 0, maxDirect, "no inline question-answer blocks")
	}
	if s.HasHowItWorks {
		add("How-it-works section", models.CategoryAnswerability, maxHowItWorks, maxHowItWorks, "process explained under a dedicated heading")
	} else {
		add("How-it-works section", models.CategoryAnswerability, 0, maxHowItWorks, "no how-it-works style section")
	}

	// Commercial Clarity
	if s.HasPricing {
		add("Pricing visibility", models.CategoryCommercial, maxPricing, maxPricing, "pricing is discoverable")
	} else {
		add("Pricing visibility", models.CategoryCommercial, 0, maxPricing, "no visible pricing")
	}
	if hasAnyType(s.SchemaTypes, offerSchemaTypes) {
		add("Offer markup", models.CategoryCommercial, maxOfferSchema, maxOfferSchema, "structured offer/product markup")
	} else {
		add("Offer markup", models.CategoryCommercial, 0, maxOfferSchema, "no structured offer markup")
	}

	// Trust & Legitimacy
	if s.HasSchema {
		add("Schema markup", models.CategoryTrust, maxSchema, maxSchema, "JSON-LD structured data present")
	} else {
		add("Schema markup", models.CategoryTrust, 0, maxSchema, "no structured data")
	}
	if s.HasAbout {
		add("About page", models.CategoryTrust, maxAbout, maxAbout, "about page linked")
	} else {
		add("About page", models.CategoryTrust, 0, maxAbout, "no about page found")
	}
	if s.HasContact {
		add("Contact path", models.CategoryTrust, maxContact, maxContact, "contact path available")
	} else {
		add("Contact path", models.CategoryTrust, 0, maxContact, "no contact path found")
	}

	return items
}

// buildReasoning summarizes each category as one bullet: "+" when the
// category earned at least 60% of its maximum, "-" otherwise.
func buildReasoning(breakdown []models.BreakdownItem) []string {
	order := []string{
		models.CategoryEntity,
		models.CategoryAnswerability,
		models.CategoryCommercial,
		models.CategoryTrust,
	}
	points := map[string]int{}
	max := map[string]int{}
	for _, item := range breakdown {
		points[item.Category] += item.Points
		max[item.Category] += item.Max
	}

	var bullets []string
	for _, cat := range order {
		if max[cat] == 0 {
			continue
		}
		if points[cat]*100 >= max[cat]*60 {
			bullets = append(bullets, fmt.Sprintf("+ %s is solid (%d/%d).", cat, points[cat], max[cat]))
		} else {
			bullets = append(bullets, fmt.Sprintf("- %s is weak (%d/%d).", cat, points[cat], max[cat]))
		}
	}
	return bullets
}

func weaknesses(breakdown []models.BreakdownItem) []string {
	var weak []string
	for _, item := range breakdown {
		if !item.Met() {
			weak = append(weak, item.Label)
		}
	}
	return weak
}

// readinessLabel applies the fixed threshold policy. Any non-ok status
// forces the lowest label regardless of numeric score.
func readinessLabel(score, negatives int, status string) string {
	if status != models.StatusOK {
		return models.ReadinessNot
	}
	if score >= strongScoreFloor && negatives <= 1 {
		return models.ReadinessStrong
	}
	if score < weakScoreCeiling {
		return models.ReadinessNot
	}
	return models.ReadinessEmerging
}

func hasAnyType(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
