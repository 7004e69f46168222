// Package sweep deterministically classifies free-text model responses:
// whether a brand was mentioned, at what rank, who the stated winner is,
// and how much the classification itself can be trusted. Malformed output
// never produces an error; all uncertainty collapses into low-confidence
// fields because a batch sweep must survive per-row anomalies.
package sweep

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/defaultanswer/readiness-core/models"
)

// Confidence bonuses. The rank branches are mutually exclusive, so the
// additive ceiling is rank-1 plus winner: 70.
const (
	bonusRankFirst = 60
	bonusRankTop3  = 40
	bonusMentioned = 20
	bonusWinner    = 10
)

const maxAlternatives = 4

// Input is one response to classify against a set of brand variants.
type Input struct {
	ResponseText string
	BrandNames   []string
	Domains      []string
	ExpectList   bool
}

var (
	numberedLineRe = regexp.MustCompile(`^\s*(\d{1,2})[.)]\s+(.+)$`)
	bulletLineRe   = regexp.MustCompile(`^\s*[-*•]\s+(.+)$`)

	// Winner names are runs of capitalized words so the capture stops at
	// the first ordinary word instead of swallowing the rest of the
	// sentence. Case-insensitivity is scoped to the verb phrase only.
	namePattern = `([A-Z][A-Za-z0-9.&'-]*(?: [A-Z][A-Za-z0-9.&'-]*){0,4})`
	recommendRe = regexp.MustCompile(`(?i:\bI(?:'d| would)? recommend(?: using| going with)?)\s+` + namePattern)
	bestIsRe    = regexp.MustCompile(`(?i:\b(?:the )?best(?: option| choice| one| tool)? is)\s+` + namePattern)
	boldRe      = regexp.MustCompile(`\*\*([^*]{2,40})\*\*`)

	properNounRe = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]{2,}\b`)

	hedgingPhrases = []string{
		"unclear", "unsure", "not sure", "hard to say", "difficult to say",
		"it depends", "cannot determine", "can't determine", "don't know",
	}

	refusalPhrases = []string{
		"i cannot", "i can't", "i am unable", "i'm unable", "as an ai",
		"i do not", "i don't have", "sorry",
	}
)

// listItem is one parsed ranked-list entry. Index is the stated number for
// numbered lines, which is authoritative over text position.
type listItem struct {
	Index int
	Text  string
	Label string
}

// ExtractSignals classifies one model response. Pure and deterministic
// over its input.
func ExtractSignals(in Input) models.SweepExtraction {
	out := models.SweepExtraction{
		ExtractionConfidence: models.ExtractionMedium,
	}

	text := in.ResponseText
	variants := collectVariants(in.BrandNames, in.Domains)
	out.Mentioned = matchesAnyVariant(text, variants)

	items := parseList(text)
	listParsed := len(items) > 0

	if in.ExpectList && !listParsed {
		// A list was promised and none materialized: record the failure
		// instead of guessing ranks from prose.
		out.ParseFailed = true
	}

	if listParsed {
		for _, item := range items {
			if matchesAnyVariant(item.Text, variants) {
				rank := item.Index
				out.MentionRank = &rank
				out.Mentioned = true
				break
			}
		}
		if label := items[0].Label; isLikelyName(label) {
			out.Winner = label
		}
		out.Alternatives = listAlternatives(items, variants, out.Winner)
	} else if !out.ParseFailed {
		out.Winner = extractWinnerFromProse(text)
		out.Alternatives = proseAlternatives(text, variants, out.Winner)
	}

	// A mention without a parsable rank defaults to rank 1 only when a
	// winner sentence independently names the brand.
	if out.Mentioned && out.MentionRank == nil && !listParsed && !out.ParseFailed {
		if out.Winner != "" && matchesAnyVariant(out.Winner, variants) {
			rank := 1
			out.MentionRank = &rank
		}
	}

	out.Confidence = confidence(out)
	out.ExtractionConfidence = extractionConfidence(text, listParsed, out.ParseFailed)
	return out
}

// parseList pulls ranked items out of the response. Numbered lines carry
// their stated index (out-of-order numbering is honored); bulleted lines
// are positional. Items come back sorted by index.
func parseList(text string) []listItem {
	var items []listItem
	bulletIndex := 0

	for _, line := range strings.Split(text, "\n") {
		if m := numberedLineRe.FindStringSubmatch(line); m != nil {
			index, err := strconv.Atoi(m[1])
			if err != nil || index < 1 || index > 20 {
				continue
			}
			items = append(items, listItem{Index: index, Text: m[2], Label: cleanLabel(m[2])})
			continue
		}
		if m := bulletLineRe.FindStringSubmatch(line); m != nil {
			bulletIndex++
			items = append(items, listItem{Index: bulletIndex, Text: m[1], Label: cleanLabel(m[1])})
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Index < items[j].Index })
	return items
}

// cleanLabel reduces a list item to its leading name: markdown stripped,
// cut at the first separator.
func cleanLabel(text string) string {
	label := strings.ReplaceAll(text, "**", "")
	label = strings.ReplaceAll(label, "__", "")
	for _, sep := range []string{" - ", " – ", ":", ",", " ("} {
		if i := strings.Index(label, sep); i > 0 {
			label = label[:i]
		}
	}
	return strings.TrimSpace(label)
}

func extractWinnerFromProse(text string) string {
	for _, re := range []*regexp.Regexp{recommendRe, bestIsRe, boldRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			candidate := cleanLabel(strings.TrimRight(strings.TrimSpace(m[1]), ".,:;!?"))
			if isLikelyName(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// isLikelyName rejects refusal phrases, over-length strings, and
// punctuation-heavy fragments before a candidate is accepted as a name.
func isLikelyName(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || len(candidate) > 40 {
		return false
	}
	if len(strings.Fields(candidate)) > 5 {
		return false
	}
	lower := strings.ToLower(candidate)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	punct := 0
	for _, r := range candidate {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ', r == '.', r == '&', r == '\'', r == '-':
		default:
			punct++
		}
	}
	return punct <= 1
}

// listAlternatives returns the non-brand, non-winner labels of subsequent
// list items, deduplicated case-insensitively and capped.
func listAlternatives(items []listItem, variants []string, winner string) []string {
	var alts []string
	seen := map[string]struct{}{}
	for i, item := range items {
		if i == 0 {
			continue
		}
		label := item.Label
		if label == "" || !isLikelyName(label) {
			continue
		}
		if matchesAnyVariant(label, variants) || strings.EqualFold(label, winner) {
			continue
		}
		key := strings.ToLower(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		alts = append(alts, label)
		if len(alts) == maxAlternatives {
			break
		}
	}
	return alts
}

// proseAlternatives falls back to proper-noun-like tokens when no list
// exists.
func proseAlternatives(text string, variants []string, winner string) []string {
	var alts []string
	seen := map[string]struct{}{}
	for _, token := range properNounRe.FindAllString(text, -1) {
		if isStopword(token) {
			continue
		}
		if matchesAnyVariant(token, variants) || strings.EqualFold(token, winner) {
			continue
		}
		key := strings.ToLower(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		alts = append(alts, token)
		if len(alts) == maxAlternatives {
			break
		}
	}
	return alts
}

// confidence is the additive heuristic, clamped to [0,100]. The rank
// branches are a single if/else chain so no path double-adds.
func confidence(out models.SweepExtraction) int {
	score := 0
	switch {
	case out.MentionRank != nil && *out.MentionRank == 1:
		score += bonusRankFirst
	case out.MentionRank != nil && *out.MentionRank <= 3:
		score += bonusRankTop3
	case out.Mentioned:
		score += bonusMentioned
	}
	if out.Winner != "" {
		score += bonusWinner
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// extractionConfidence grades how much the classification itself can be
// trusted. Non-English responses are low outright: the hedging vocabulary
// is English, so matching it against other languages would be silently
// wrong.
func extractionConfidence(text string, listParsed, parseFailed bool) string {
	if !isLikelyEnglish(text) {
		return models.ExtractionLow
	}
	if listParsed {
		return models.ExtractionHigh
	}
	if parseFailed || containsHedging(text) {
		return models.ExtractionLow
	}
	return models.ExtractionMedium
}

func containsHedging(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range hedgingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func collectVariants(brandNames, domains []string) []string {
	var variants []string
	for _, v := range append(append([]string{}, brandNames...), domains...) {
		v = normalizeForMatch(v)
		if v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}

// matchesAnyVariant is a case-insensitive, whitespace-normalized
// substring/token match against every supplied variant.
func matchesAnyVariant(text string, variants []string) bool {
	normalized := normalizeForMatch(text)
	if normalized == "" {
		return false
	}
	for _, variant := range variants {
		if len(variant) <= 3 {
			// Short variants match whole tokens only, so "ai" does not
			// light up inside "maintain".
			for _, token := range strings.FieldsFunc(normalized, isTokenBoundary) {
				if token == variant {
					return true
				}
			}
			continue
		}
		if strings.Contains(normalized, variant) {
			return true
		}
	}
	return false
}

func normalizeForMatch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func isTokenBoundary(r rune) bool {
	return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '.' && r != '-'
}

func isStopword(token string) bool {
	_, ok := stopwords[strings.ToLower(token)]
	return ok
}
