package models

// Chip tones for delta presentation.
const (
	ToneGood    = "positive"
	ToneBad     = "negative"
	ToneNeutral = "neutral"
)

// DeltaChip is one short human-readable change marker between two scans.
type DeltaChip struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// ScanDelta compares two scans of the same normalized URL.
type ScanDelta struct {
	ScoreDelta       int         `json:"score_delta"`
	CoverageDelta    int         `json:"coverage_delta"`
	ReadinessChanged bool        `json:"readiness_changed"`
	Chips            []DeltaChip `json:"chips,omitempty"`
	SummaryLine      string      `json:"summary_line"`
}
