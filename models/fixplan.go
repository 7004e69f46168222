package models

// Fix priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Decision kinds returned when choosing what to fix first.
const (
	DecisionTopFix        = "top_fix"
	DecisionNoCriticalFix = "no_critical_fixes"
	DecisionNothingToFix  = "none"
)

// FixPlanItem is one candidate remediation action. The downgrade policy may
// rewrite priority and tag the action text, but items are only ever removed
// by intent deduplication.
type FixPlanItem struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

// FixDecision is the outcome of top-fix selection over a deduplicated plan.
type FixDecision struct {
	Kind   string       `json:"kind"`
	TopFix *FixPlanItem `json:"top_fix,omitempty"`
	Reason string       `json:"reason,omitempty"`
}
