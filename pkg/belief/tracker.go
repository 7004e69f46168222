// Package belief maintains one evolving readiness judgment per domain and
// explains, in plain language, why confidence moved between scans.
package belief

import (
	"fmt"
	"sync"
	"time"

	"github.com/defaultanswer/readiness-core/models"
)

// Store is the persistence collaborator for belief state. Get returns
// (nil, nil) for an unknown domain. AppendHistory must be idempotent per
// (domain, report ID) and report whether a row was actually added.
type Store interface {
	GetBelief(domain string) (*models.BeliefState, error)
	PutBelief(state *models.BeliefState) error
	AppendHistory(domain string, entry models.BeliefHistoryEntry) (bool, error)
	HasReport(domain, reportID string) (bool, error)
	History(domain string) ([]models.BeliefHistoryEntry, error)
}

// UpsertParams carries one scan's judgment into the tracker. A negative
// ConfidenceScore means the scan produced no comparable numeric score.
type UpsertParams struct {
	Domain             string
	ReportID           string
	ReadinessState     string
	ConfidenceScore    int
	BlockingFactors    []string
	SupportingSignals  []string
	PrimaryUncertainty string
	ObservedAt         time.Time
}

// Tracker performs read-modify-write updates of belief state. Updates for
// the same domain are serialized through a per-domain lock so concurrent
// scans cannot lose writes.
type Tracker struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTracker(store Store) *Tracker {
	return &Tracker{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (t *Tracker) domainLock(domain string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.locks[domain]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[domain] = lock
	}
	return lock
}

// Upsert applies one scan's judgment and returns the new current state and
// the state that existed immediately before the write. Replaying a report
// ID that is already in the history returns the stored pair without
// touching the audit trail.
func (t *Tracker) Upsert(params UpsertParams) (current, previous *models.BeliefState, err error) {
	lock := t.domainLock(params.Domain)
	lock.Lock()
	defer lock.Unlock()

	stored, err := t.store.GetBelief(params.Domain)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read belief state: %w", err)
	}

	if stored != nil {
		replayed, err := t.store.HasReport(params.Domain, params.ReportID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check report history: %w", err)
		}
		if replayed {
			if stored.History, err = t.store.History(params.Domain); err != nil {
				return nil, nil, fmt.Errorf("failed to load history: %w", err)
			}
			return stored, stored.PreviousState, nil
		}
	}

	explanation := ExplainDelta(params, stored)

	next := &models.BeliefState{
		Domain:             params.Domain,
		ReadinessState:     params.ReadinessState,
		ConfidenceScore:    params.ConfidenceScore,
		BlockingFactors:    append([]string(nil), params.BlockingFactors...),
		SupportingSignals:  append([]string(nil), params.SupportingSignals...),
		PrimaryUncertainty: params.PrimaryUncertainty,
		LastUpdated:        params.ObservedAt,
		PreviousState:      stored.Snapshot(),
	}

	if err := t.store.PutBelief(next); err != nil {
		return nil, nil, fmt.Errorf("failed to write belief state: %w", err)
	}

	if _, err := t.store.AppendHistory(params.Domain, models.BeliefHistoryEntry{
		ReportID:        params.ReportID,
		ReadinessState:  params.ReadinessState,
		ConfidenceScore: params.ConfidenceScore,
		Explanation:     explanation,
		RecordedAt:      params.ObservedAt,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to append history: %w", err)
	}

	if next.History, err = t.store.History(params.Domain); err != nil {
		return nil, nil, fmt.Errorf("failed to load history: %w", err)
	}
	return next, next.PreviousState, nil
}

// ExplainDelta renders why confidence moved. Rules apply in priority
// order; the first match wins. When either score is not numerically
// comparable, only the factor sets are compared.
func ExplainDelta(params UpsertParams, previous *models.BeliefState) string {
	if previous == nil {
		return "First scan: establishing baseline belief."
	}

	addedSupport := firstMissing(params.SupportingSignals, previous.SupportingSignals)
	removedBlock := firstMissing(previous.BlockingFactors, params.BlockingFactors)
	addedBlock := firstMissing(params.BlockingFactors, previous.BlockingFactors)

	if params.ConfidenceScore < 0 || previous.ConfidenceScore < 0 {
		switch {
		case addedSupport != "":
			return fmt.Sprintf("A new supporting signal appeared: %s.", addedSupport)
		case removedBlock != "":
			return fmt.Sprintf("A blocking factor was resolved: %s.", removedBlock)
		case addedBlock != "":
			return fmt.Sprintf("A new blocking factor appeared: %s.", addedBlock)
		default:
			return noChangeMessage(params.PrimaryUncertainty)
		}
	}

	delta := params.ConfidenceScore - previous.ConfidenceScore
	switch {
	case delta > 0 && addedSupport != "":
		return fmt.Sprintf("Confidence increased because a new supporting signal appeared: %s.", addedSupport)
	case delta > 0 && removedBlock != "":
		return fmt.Sprintf("Confidence increased because a blocking factor was resolved: %s.", removedBlock)
	case delta > 0:
		return "Confidence increased on stronger supporting signals."
	case delta < 0 && addedBlock != "":
		return fmt.Sprintf("Confidence dropped because a new blocking factor appeared: %s.", addedBlock)
	case delta < 0:
		return "Confidence dropped on weaker retrievable signals."
	default:
		return noChangeMessage(params.PrimaryUncertainty)
	}
}

func noChangeMessage(primaryUncertainty string) string {
	if primaryUncertainty == "" {
		return "Confidence did not change."
	}
	return fmt.Sprintf("Confidence did not change because the primary uncertainty remains: %s.", primaryUncertainty)
}

// firstMissing returns the first element of have that is absent from from.
func firstMissing(have, from []string) string {
	set := make(map[string]struct{}, len(from))
	for _, item := range from {
		set[item] = struct{}{}
	}
	for _, item := range have {
		if _, ok := set[item]; !ok {
			return item
		}
	}
	return ""
}
