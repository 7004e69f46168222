package models

import "time"

// BeliefHistoryEntry is one append-only audit row, keyed by report ID.
// Replaying a report ID must not create a second entry.
type BeliefHistoryEntry struct {
	ReportID        string    `json:"report_id"`
	ReadinessState  string    `json:"readiness_state"`
	ConfidenceScore int       `json:"confidence_score"`
	Explanation     string    `json:"explanation"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// BeliefState is the persisted judgment about one domain's readiness,
// updated on every scan. One record per lowercase domain.
// A negative ConfidenceScore means the last scan produced no comparable
// numeric score (blocked or errored fetch).
type BeliefState struct {
	Domain             string               `json:"domain"`
	ReadinessState     string               `json:"readiness_state"`
	ConfidenceScore    int                  `json:"confidence_score"`
	BlockingFactors    []string             `json:"blocking_factors,omitempty"`
	SupportingSignals  []string             `json:"supporting_signals,omitempty"`
	PrimaryUncertainty string               `json:"primary_uncertainty,omitempty"`
	LastUpdated        time.Time            `json:"last_updated"`
	PreviousState      *BeliefState         `json:"previous_state,omitempty"`
	History            []BeliefHistoryEntry `json:"history,omitempty"`
}

// Snapshot returns a copy of the state without its previous-state chain or
// history, suitable for embedding as PreviousState without unbounded growth.
func (b *BeliefState) Snapshot() *BeliefState {
	if b == nil {
		return nil
	}
	c := *b
	c.PreviousState = nil
	c.History = nil
	c.BlockingFactors = append([]string(nil), b.BlockingFactors...)
	c.SupportingSignals = append([]string(nil), b.SupportingSignals...)
	return &c
}
