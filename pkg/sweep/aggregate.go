package sweep

import (
	"sort"
	"strings"

	"github.com/defaultanswer/readiness-core/models"
)

const maxTopAlternatives = 5

// AlternativeCount is one competitor and how often models named it.
type AlternativeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary aggregates a batch of sweep extractions into the numbers the
// product reports: how often the brand shows up, how high, and how often
// rows could not be classified.
type Summary struct {
	Rows            int                `json:"rows"`
	Mentions        int                `json:"mentions"`
	MentionRate     float64            `json:"mention_rate"`
	RankedMentions  int                `json:"ranked_mentions"`
	AverageRank     float64            `json:"average_rank,omitempty"`
	ParseFailures   int                `json:"parse_failures"`
	LowConfidence   int                `json:"low_confidence"`
	TopAlternatives []AlternativeCount `json:"top_alternatives,omitempty"`
}

// Aggregate reduces per-row extractions into one summary. Alternative
// counts are merged case-insensitively and the top few surface, most
// frequent first, ties broken alphabetically for stable output.
func Aggregate(rows []models.SweepExtraction) Summary {
	summary := Summary{Rows: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	counts := map[string]*AlternativeCount{}
	rankSum := 0

	for _, row := range rows {
		if row.Mentioned {
			summary.Mentions++
		}
		if row.MentionRank != nil {
			summary.RankedMentions++
			rankSum += *row.MentionRank
		}
		if row.ParseFailed {
			summary.ParseFailures++
		}
		if row.ExtractionConfidence == models.ExtractionLow {
			summary.LowConfidence++
		}
		for _, alt := range row.Alternatives {
			key := strings.ToLower(alt)
			if existing, ok := counts[key]; ok {
				existing.Count++
			} else {
				counts[key] = &AlternativeCount{Name: alt, Count: 1}
			}
		}
	}

	summary.MentionRate = float64(summary.Mentions) / float64(summary.Rows)
	if summary.RankedMentions > 0 {
		summary.AverageRank = float64(rankSum) / float64(summary.RankedMentions)
	}

	var top []AlternativeCount
	for _, c := range counts {
		top = append(top, *c)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > maxTopAlternatives {
		top = top[:maxTopAlternatives]
	}
	summary.TopAlternatives = top

	return summary
}
