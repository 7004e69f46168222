// Package fixplan turns breakdown gaps into an ordered remediation plan
// and decides which fix to surface first. Every policy rule is a pure
// list-to-list transform so the order of application stays explicit:
// generate, classify intent, dedupe, order, conditionally relabel.
package fixplan

import (
	"sort"
	"strings"

	"github.com/defaultanswer/readiness-core/models"
)

// Policy thresholds. Hand-tuned product constants; changing them is a
// product decision, not a bug fix.
const (
	strongScoreFloor  = 75 // FAQ may only lead when enough evidence gaps remain
	retrievalOptFloor = 82 // above this, FAQ work is a second-order optimization
)

// retrievalOptTag marks fixes demoted by the downgrade policy.
const retrievalOptTag = "[Retrieval Optimization]"

// Intent keys for deduplication.
const (
	intentAccess    = "access"
	intentH1Add     = "h1_add"
	intentH1Rewrite = "h1_rewrite"
	intentTitle     = "title"
	intentMeta      = "meta"
	intentFAQ       = "faq"
	intentSchema    = "schema"
	intentAbout     = "about"
	intentContact   = "contact"
	intentPricing   = "pricing"
	intentH2        = "h2"
	intentHeadings  = "headings"
)

var tierRank = map[string]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// fixTemplates maps an unmet check label to its candidate fix. The primary
// heading check maps to two different fixes depending on whether an H1 is
// absent or merely unclear.
var fixTemplates = map[string]models.FixPlanItem{
	"Page retrieval":       {Priority: models.PriorityHigh, Action: "Make the page retrievable: allow crawler access and return readable HTML"},
	"Page title":           {Priority: models.PriorityHigh, Action: "Add a title tag that names the product and what it does"},
	"Meta description":     {Priority: models.PriorityMedium, Action: "Write a meta description summarizing the offer in one sentence"},
	"Section structure":    {Priority: models.PriorityLow, Action: "Organize the page into H2 sections so each topic is addressable"},
	"FAQ coverage":         {Priority: models.PriorityHigh, Action: "Add an FAQ section answering the questions buyers actually ask"},
	"Direct answers":       {Priority: models.PriorityMedium, Action: "Answer question-style headings directly in the paragraph below them"},
	"How-it-works section": {Priority: models.PriorityMedium, Action: "Add a \"How it works\" section that walks through the process"},
	"Pricing visibility":   {Priority: models.PriorityHigh, Action: "Publish pricing or link a pricing page from the main navigation"},
	"Offer markup":         {Priority: models.PriorityLow, Action: "Add Product or Offer structured data describing what you sell"},
	"Schema markup":        {Priority: models.PriorityMedium, Action: "Add JSON-LD schema markup so machines can verify who you are"},
	"About page":           {Priority: models.PriorityMedium, Action: "Add an about page that states who is behind the product"},
	"Contact path":         {Priority: models.PriorityMedium, Action: "Add a contact page or visible contact path"},
}

// Build generates one candidate fix per unmet check, in breakdown order.
func Build(breakdown []models.BreakdownItem) []models.FixPlanItem {
	var plan []models.FixPlanItem
	for _, item := range breakdown {
		if item.Met() && item.Category != models.CategoryError {
			continue
		}
		if item.Label == "Primary heading" {
			if item.Points > 0 {
				plan = append(plan, models.FixPlanItem{
					Priority: models.PriorityMedium,
					Action:   "Rewrite the H1 headings into one clear statement of what the product is",
				})
			} else {
				plan = append(plan, models.FixPlanItem{
					Priority: models.PriorityHigh,
					Action:   "Add a single H1 that states what the product is",
				})
			}
			continue
		}
		if tmpl, ok := fixTemplates[item.Label]; ok {
			plan = append(plan, tmpl)
		}
	}
	return plan
}

// classifyIntent buckets an action's normalized text into a fixed intent
// key. Unrecognized actions fall back to their verbatim text so distinct
// unknown fixes are never collapsed together.
func classifyIntent(action string) string {
	text := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(action, retrievalOptTag)))
	switch {
	case strings.Contains(text, "retriev") || strings.Contains(text, "crawler access") || strings.Contains(text, "unblock"):
		return intentAccess
	case strings.Contains(text, "h1") && strings.Contains(text, "rewrite"):
		return intentH1Rewrite
	case strings.Contains(text, "h1"):
		return intentH1Add
	case strings.Contains(text, "title"):
		return intentTitle
	case strings.Contains(text, "meta description"):
		return intentMeta
	case strings.Contains(text, "faq"):
		return intentFAQ
	case strings.Contains(text, "schema") || strings.Contains(text, "structured data"):
		return intentSchema
	case strings.Contains(text, "about"):
		return intentAbout
	case strings.Contains(text, "contact"):
		return intentContact
	case strings.Contains(text, "pricing"):
		return intentPricing
	case strings.Contains(text, "h2"):
		return intentH2
	case strings.Contains(text, "heading"):
		return intentHeadings
	default:
		return text
	}
}

// Dedupe keeps the first fix per intent key in priority order (high to
// low, stable within a tier). An "add H1" fix suppresses any "rewrite H1"
// fix: adding implies there is no existing H1 to rewrite. Idempotent.
func Dedupe(plan []models.FixPlanItem) []models.FixPlanItem {
	ordered := sortByTier(plan)

	seen := map[string]bool{}
	for _, item := range ordered {
		seen[classifyIntent(item.Action)] = true
	}

	kept := map[string]bool{}
	var out []models.FixPlanItem
	for _, item := range ordered {
		intent := classifyIntent(item.Action)
		if intent == intentH1Rewrite && seen[intentH1Add] {
			continue
		}
		if kept[intent] {
			continue
		}
		kept[intent] = true
		out = append(out, item)
	}
	return out
}

// Downgrade applies the retrieval-optimization policy: once a site is
// already strong and shows structured trust evidence plus FAQ-adjacent
// evidence, FAQ work stops being critical. Every FAQ fix drops from high
// to medium and its action text is tagged. Non-matching plans pass through
// unchanged.
func Downgrade(plan []models.FixPlanItem, score int, readiness string, signals models.ExtractedSignals) []models.FixPlanItem {
	if !downgradeApplies(score, readiness, signals) {
		return plan
	}

	out := make([]models.FixPlanItem, len(plan))
	for i, item := range plan {
		out[i] = item
		if classifyIntent(item.Action) != intentFAQ {
			continue
		}
		if item.Priority == models.PriorityHigh {
			out[i].Priority = models.PriorityMedium
		}
		if !strings.HasPrefix(out[i].Action, retrievalOptTag) {
			out[i].Action = retrievalOptTag + " " + out[i].Action
		}
	}
	return out
}

func downgradeApplies(score int, readiness string, signals models.ExtractedSignals) bool {
	if score < retrievalOptFloor || readiness != models.ReadinessStrong {
		return false
	}
	structuredTrust := signals.HasSchema || (signals.HasAbout && signals.HasContact)
	faqAdjacent := signals.HasIndirectFAQ || signals.HasDirectAnswers
	return structuredTrust && faqAdjacent
}

// Decide selects what to fix first from a deduplicated plan. On failed
// scans only the access fix is actionable; nothing else matters until the
// page can be fetched at all.
func Decide(plan []models.FixPlanItem, score int, readiness string, signals models.ExtractedSignals) models.FixDecision {
	if len(plan) == 0 {
		return models.FixDecision{Kind: models.DecisionNothingToFix}
	}

	if score < 0 {
		for _, item := range plan {
			if classifyIntent(item.Action) == intentAccess {
				fix := item
				return models.FixDecision{
					Kind:   models.DecisionTopFix,
					TopFix: &fix,
					Reason: "nothing else is actionable until the page can be fetched",
				}
			}
		}
		return models.FixDecision{Kind: models.DecisionNothingToFix}
	}

	ordered := sortByTier(Downgrade(plan, score, readiness, signals))

	if downgradeApplies(score, readiness, signals) {
		// Only a remaining high-priority non-FAQ fix justifies nagging a
		// site that is already strong.
		for _, item := range ordered {
			if item.Priority == models.PriorityHigh && classifyIntent(item.Action) != intentFAQ {
				fix := item
				return models.FixDecision{Kind: models.DecisionTopFix, TopFix: &fix}
			}
		}
		return models.FixDecision{
			Kind:   models.DecisionNoCriticalFix,
			Reason: "remaining fixes are second-order retrieval optimizations",
		}
	}

	for _, item := range ordered {
		if classifyIntent(item.Action) == intentFAQ && score >= strongScoreFloor && faqEvidenceGaps(signals) < 2 {
			continue
		}
		fix := item
		return models.FixDecision{Kind: models.DecisionTopFix, TopFix: &fix}
	}

	return models.FixDecision{
		Kind:   models.DecisionNoCriticalFix,
		Reason: "no fix clears the evidence bar for this score",
	}
}

// faqEvidenceGaps counts how many of the FAQ-adjacent evidence signals are
// missing. FAQ may only lead the plan on a strong site when at least two
// gaps remain.
func faqEvidenceGaps(signals models.ExtractedSignals) int {
	gaps := 0
	if !signals.HasFAQ {
		gaps++
	}
	if !signals.HasSchema {
		gaps++
	}
	if !signals.HasHowItWorks {
		gaps++
	}
	return gaps
}

func sortByTier(plan []models.FixPlanItem) []models.FixPlanItem {
	out := append([]models.FixPlanItem(nil), plan...)
	sort.SliceStable(out, func(i, j int) bool {
		return tierRank[out[i].Priority] < tierRank[out[j].Priority]
	})
	return out
}
