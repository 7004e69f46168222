// Package extractor turns raw page HTML into the fixed set of readiness
// signals. Extraction is pattern based on purpose: every signal must be
// reproducible and auditable, so there is no semantic model anywhere in
// this package. Malformed markup never produces an error, only absent
// signals.
package extractor

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/defaultanswer/readiness-core/models"
)

const (
	thinWordFloor  = 120 // below this the snapshot is too thin to trust
	shellWordFloor = 30  // below this with script-heavy markup it is a JS shell
)

var (
	faqHeadingRe   = regexp.MustCompile(`(?i)\b(faq|faqs|frequently asked)\b`)
	faqHrefRe      = regexp.MustCompile(`(?i)(faq|frequently-asked|help-center|support/questions)`)
	questionWordRe = regexp.MustCompile(`(?i)^(what|how|why|when|where|who|can|does|do|is|are|should)\b`)
	howItWorksRe   = regexp.MustCompile(`(?i)\bhow (it|[a-z0-9'&.-]+) works\b|\bgetting started\b`)
	pricingTextRe  = regexp.MustCompile(`(?i)\bpricing\b|\bplans? (&|and) pricing\b|\$\d+\s*/\s*(mo|month|yr|year)|\bper (month|year|seat|user)\b`)
	aboutHrefRe    = regexp.MustCompile(`(?i)/about(-us)?/?$`)
	contactHrefRe  = regexp.MustCompile(`(?i)/contact(-us)?/?$|^mailto:`)
	appShellIDs    = []string{"#root", "#app", "#__next", "#___gatsby"}
)

// Extract parses page HTML into readiness signals. Pure over its inputs:
// now is injected so scans replay deterministically.
func Extract(html, rawURL string, now time.Time) models.ExtractedSignals {
	signals := models.ExtractedSignals{
		SnapshotQuality: models.SnapshotShell,
		FetchedAt:       now,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return signals
	}

	signals.Title = strings.TrimSpace(doc.Find("title").First().Text())
	signals.MetaDescription = metaContent(doc, "description")
	signals.CanonicalURL, _ = doc.Find(`link[rel="canonical"]`).First().Attr("href")

	// Headings in document order, split by level.
	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		text := squashSpace(s.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(s) {
		case "h1":
			signals.H1 = append(signals.H1, text)
		case "h2":
			signals.H2 = append(signals.H2, text)
		case "h3":
			signals.H3 = append(signals.H3, text)
		}
	})

	extractFAQSignals(doc, &signals)
	extractSchema(doc, &signals)
	extractCommercialSignals(doc, &signals)

	for _, h := range append(append([]string{}, signals.H2...), signals.H3...) {
		if howItWorksRe.MatchString(h) {
			signals.HasHowItWorks = true
			break
		}
	}

	enrichFromReadability(html, rawURL, &signals)
	signals.SnapshotQuality = classifySnapshot(doc, signals.WordCount)

	return signals
}

// metaContent reads a <meta name=...> content attribute.
func metaContent(doc *goquery.Document, name string) string {
	content, _ := doc.Find(`meta[name="`+name+`"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// extractFAQSignals detects the three independent FAQ forms. Each is
// tracked separately so downstream consumers can weigh evidence strength.
func extractFAQSignals(doc *goquery.Document, signals *models.ExtractedSignals) {
	// Explicit: a FAQ heading, a FAQ-marked container, or FAQPage schema.
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if faqHeadingRe.MatchString(s.Text()) {
			signals.HasFAQ = true
			return false
		}
		return true
	})
	if !signals.HasFAQ {
		doc.Find(`[itemtype*="FAQPage"], [id*="faq" i], [class*="faq" i]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			signals.HasFAQ = true
			return false
		})
	}

	// Indirect: a link pointing at a FAQ-like page elsewhere.
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if faqHrefRe.MatchString(href) || faqHeadingRe.MatchString(s.Text()) {
			signals.HasIndirectFAQ = true
			return false
		}
		return true
	})

	// Direct-answer blocks: a question-shaped heading immediately followed
	// by a concise paragraph.
	doc.Find("h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		heading := squashSpace(s.Text())
		if !strings.HasSuffix(heading, "?") && !questionWordRe.MatchString(heading) {
			return true
		}
		answer := squashSpace(s.NextFiltered("p").Text())
		if len(answer) >= 40 && len(answer) <= 600 {
			signals.HasDirectAnswers = true
			return false
		}
		return true
	})
}

// extractSchema collects JSON-LD @type values. Invalid JSON-LD blocks are
// skipped; a block that fails to parse is not schema evidence.
func extractSchema(doc *goquery.Document, signals *models.ExtractedSignals) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		for _, t := range schemaTypes(payload) {
			signals.HasSchema = true
			if !containsFold(signals.SchemaTypes, t) {
				signals.SchemaTypes = append(signals.SchemaTypes, t)
			}
		}
	})
}

// schemaTypes walks a decoded JSON-LD value and collects @type strings,
// including @graph members and type arrays.
func schemaTypes(v any) []string {
	var types []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			types = append(types, schemaTypes(item)...)
		}
	case map[string]any:
		switch t := val["@type"].(type) {
		case string:
			types = append(types, t)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types = append(types, s)
				}
			}
		}
		if graph, ok := val["@graph"]; ok {
			types = append(types, schemaTypes(graph)...)
		}
	}
	return types
}

func extractCommercialSignals(doc *goquery.Document, signals *models.ExtractedSignals) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := squashSpace(s.Text())
		lowerHref := strings.ToLower(href)

		if !signals.HasPricing && (strings.Contains(lowerHref, "pricing") || strings.Contains(lowerHref, "/plans") || pricingTextRe.MatchString(text)) {
			signals.HasPricing = true
		}
		if !signals.HasAbout && (aboutHrefRe.MatchString(strings.TrimRight(href, "/")+"/") || strings.EqualFold(text, "about") || strings.EqualFold(text, "about us")) {
			signals.HasAbout = true
		}
		if !signals.HasContact && (contactHrefRe.MatchString(href) || strings.EqualFold(text, "contact") || strings.EqualFold(text, "contact us")) {
			signals.HasContact = true
		}
	})

	// Pricing also counts when stated in body copy or headings, not just nav.
	if !signals.HasPricing {
		doc.Find("h1, h2, h3, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if pricingTextRe.MatchString(s.Text()) {
				signals.HasPricing = true
				return false
			}
			return true
		})
	}
}

// enrichFromReadability runs the readability pass for main-content word
// count and meta enrichment. A readability failure leaves the goquery
// signals untouched and falls back to a whole-document word count.
func enrichFromReadability(html, rawURL string, signals *models.ExtractedSignals) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		parsedURL = &url.URL{}
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		signals.WordCount = len(strings.Fields(article.TextContent))
		signals.Excerpt = strings.TrimSpace(article.Excerpt)
		signals.SiteName = strings.TrimSpace(article.SiteName)
		return
	}

	if doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(html)); docErr == nil {
		signals.WordCount = len(strings.Fields(doc.Find("body").Text()))
	}
}

// classifySnapshot decides whether fetched content is usable. A near-empty
// body behind an app-mount div is a client-rendered shell; a short but real
// body is merely thin.
func classifySnapshot(doc *goquery.Document, wordCount int) string {
	if wordCount < shellWordFloor {
		for _, id := range appShellIDs {
			if doc.Find(id).Length() > 0 {
				return models.SnapshotShell
			}
		}
		if doc.Find("script").Length() >= 3 {
			return models.SnapshotShell
		}
	}
	if wordCount < thinWordFloor {
		return models.SnapshotThin
	}
	return models.SnapshotOK
}

func squashSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}
