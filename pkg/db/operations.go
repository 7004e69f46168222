package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/defaultanswer/readiness-core/models"
)

// InsertScan stores one immutable analysis result. Replaying a report ID
// is a no-op so retried batches cannot duplicate scan rows.
func (db *DB) InsertScan(result models.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO scans
			(report_id, url, normalized_url, domain, score, analysis_status, readiness, snapshot_quality, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ReportID, result.URL, result.NormalizedURL, result.Domain, result.Score,
		result.AnalysisStatus, result.Readiness, result.SnapshotQuality, string(payload), result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}
	return nil
}

// RecentScans returns the most recent n results for a normalized URL,
// newest first.
func (db *DB) RecentScans(normalizedURL string, n int) ([]models.AnalysisResult, error) {
	rows, err := db.Query(`
		SELECT result_json FROM scans
		WHERE normalized_url = ?
		ORDER BY scan_id DESC
		LIMIT ?
	`, normalizedURL, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var results []models.AnalysisResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var result models.AnalysisResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// GetBelief loads the belief state for a domain, or (nil, nil) when the
// domain has never been scanned.
func (db *DB) GetBelief(domain string) (*models.BeliefState, error) {
	row := db.QueryRow(`
		SELECT domain, readiness_state, confidence_score, blocking_factors,
		       supporting_signals, primary_uncertainty, previous_state_json, last_updated
		FROM belief_states WHERE domain = ?
	`, domain)

	var state models.BeliefState
	var blocking, supporting, previous sql.NullString
	err := row.Scan(&state.Domain, &state.ReadinessState, &state.ConfidenceScore,
		&blocking, &supporting, &state.PrimaryUncertainty, &previous, &state.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read belief state: %w", err)
	}

	if blocking.Valid && blocking.String != "" {
		if err := json.Unmarshal([]byte(blocking.String), &state.BlockingFactors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal blocking factors: %w", err)
		}
	}
	if supporting.Valid && supporting.String != "" {
		if err := json.Unmarshal([]byte(supporting.String), &state.SupportingSignals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal supporting signals: %w", err)
		}
	}
	if previous.Valid && previous.String != "" {
		if err := json.Unmarshal([]byte(previous.String), &state.PreviousState); err != nil {
			return nil, fmt.Errorf("failed to unmarshal previous state: %w", err)
		}
	}
	return &state, nil
}

// PutBelief upserts the single belief record for a domain.
func (db *DB) PutBelief(state *models.BeliefState) error {
	blocking, err := json.Marshal(state.BlockingFactors)
	if err != nil {
		return fmt.Errorf("failed to marshal blocking factors: %w", err)
	}
	supporting, err := json.Marshal(state.SupportingSignals)
	if err != nil {
		return fmt.Errorf("failed to marshal supporting signals: %w", err)
	}
	var previous []byte
	if state.PreviousState != nil {
		if previous, err = json.Marshal(state.PreviousState); err != nil {
			return fmt.Errorf("failed to marshal previous state: %w", err)
		}
	}

	_, err = db.Exec(`
		INSERT INTO belief_states
			(domain, readiness_state, confidence_score, blocking_factors,
			 supporting_signals, primary_uncertainty, previous_state_json, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			readiness_state = excluded.readiness_state,
			confidence_score = excluded.confidence_score,
			blocking_factors = excluded.blocking_factors,
			supporting_signals = excluded.supporting_signals,
			primary_uncertainty = excluded.primary_uncertainty,
			previous_state_json = excluded.previous_state_json,
			last_updated = excluded.last_updated
	`, state.Domain, state.ReadinessState, state.ConfidenceScore, string(blocking),
		string(supporting), state.PrimaryUncertainty, string(previous), state.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert belief state: %w", err)
	}
	return nil
}

// AppendHistory appends one audit row. The UNIQUE(domain, report_id) key
// makes replays a no-op; the return value reports whether a row was added.
func (db *DB) AppendHistory(domain string, entry models.BeliefHistoryEntry) (bool, error) {
	result, err := db.Exec(`
		INSERT OR IGNORE INTO belief_history
			(domain, report_id, readiness_state, confidence_score, explanation, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, domain, entry.ReportID, entry.ReadinessState, entry.ConfidenceScore, entry.Explanation, entry.RecordedAt)
	if err != nil {
		return false, fmt.Errorf("failed to append history: %w", err)
	}
	added, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return added > 0, nil
}

// HasReport reports whether a report ID is already in a domain's history.
func (db *DB) HasReport(domain, reportID string) (bool, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM belief_history WHERE domain = ? AND report_id = ?
	`, domain, reportID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check report: %w", err)
	}
	return count > 0, nil
}

// History returns a domain's audit trail in insertion order.
func (db *DB) History(domain string) ([]models.BeliefHistoryEntry, error) {
	rows, err := db.Query(`
		SELECT report_id, readiness_state, confidence_score, explanation, recorded_at
		FROM belief_history WHERE domain = ? ORDER BY history_id
	`, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.BeliefHistoryEntry
	for rows.Next() {
		var entry models.BeliefHistoryEntry
		if err := rows.Scan(&entry.ReportID, &entry.ReadinessState, &entry.ConfidenceScore,
			&entry.Explanation, &entry.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// InsertSweepRow stores one classified sweep response.
func (db *DB) InsertSweepRow(resp models.SweepResponse, extraction models.SweepExtraction) error {
	payload, err := json.Marshal(extraction)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction: %w", err)
	}

	var rank any
	if extraction.MentionRank != nil {
		rank = *extraction.MentionRank
	}

	_, err = db.Exec(`
		INSERT INTO sweep_results
			(prompt, provider, model, mentioned, mention_rank, winner, confidence,
			 parse_failed, extraction_confidence, extraction_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, resp.Prompt, resp.Provider, resp.Model, extraction.Mentioned, rank, extraction.Winner,
		extraction.Confidence, extraction.ParseFailed, extraction.ExtractionConfidence, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert sweep row: %w", err)
	}
	return nil
}

// TableCounts returns row counts per table for the stats command.
func (db *DB) TableCounts() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, table := range []string{"scans", "belief_states", "belief_history", "sweep_results"} {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
