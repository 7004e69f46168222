package models

import "time"

// Analysis statuses. Score is negative iff the status is not ok.
const (
	StatusOK                 = "ok"
	StatusBlocked            = "blocked"
	StatusSnapshotIncomplete = "snapshot_incomplete"
	StatusError              = "error"
)

// Readiness labels derived from the score and reasoning.
const (
	ReadinessStrong   = "Strong Default Candidate"
	ReadinessEmerging = "Emerging Option"
	ReadinessNot      = "Not a Default Candidate"
)

// Breakdown categories.
const (
	CategoryEntity        = "Entity Clarity"
	CategoryAnswerability = "Answerability"
	CategoryCommercial    = "Commercial Clarity"
	CategoryTrust         = "Trust & Legitimacy"
	CategoryError         = "Error"
)

// FailureScore is the sentinel used when a page could not be retrieved or
// parsed. Partial signals never produce a numeric score that looks
// comparable to a real one.
const FailureScore = -1

// BreakdownItem is one scored check. Invariant: 0 <= Points <= Max.
type BreakdownItem struct {
	Label    string `json:"label"`
	Category string `json:"category"`
	Points   int    `json:"points"`
	Max      int    `json:"max"`
	Reason   string `json:"reason"`
}

// Met reports whether the check earned full points.
func (b BreakdownItem) Met() bool {
	return b.Points >= b.Max
}

// AnalysisResult is the final artifact of one scan. Created per analyze
// request and never mutated afterwards; new scans are new records.
type AnalysisResult struct {
	ReportID      string `json:"report_id"`
	URL           string `json:"url"`
	NormalizedURL string `json:"normalized_url"`
	Domain        string `json:"domain"`

	Score          int             `json:"score"`
	Breakdown      []BreakdownItem `json:"breakdown"`
	Weaknesses     []string        `json:"weaknesses,omitempty"`
	FixPlan        []FixPlanItem   `json:"fix_plan,omitempty"`
	AnalysisStatus string          `json:"analysis_status"`
	Readiness      string          `json:"readiness"`
	Reasoning      []string        `json:"reasoning,omitempty"`

	SnapshotQuality  string           `json:"snapshot_quality"`
	FetchDiagnostics FetchDiagnostics `json:"fetch_diagnostics"`
	Extracted        ExtractedSignals `json:"extracted"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Failed reports whether this scan carries the sentinel failure score.
func (r AnalysisResult) Failed() bool {
	return r.Score < 0
}
