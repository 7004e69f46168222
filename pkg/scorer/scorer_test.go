package scorer

import (
	"testing"
	"time"

	"github.com/defaultanswer/readiness-core/models"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fullSignals() models.ExtractedSignals {
	return models.ExtractedSignals{
		Title:            "Acme Scheduler - appointment scheduling",
		MetaDescription:  "Books and reminds patients automatically.",
		H1:               []string{"Appointment scheduling that fills your calendar"},
		H2:               []string{"How it works", "Pricing", "FAQ"},
		HasFAQ:           true,
		HasIndirectFAQ:   true,
		HasDirectAnswers: true,
		HasSchema:        true,
		SchemaTypes:      []string{"Organization", "Product"},
		HasPricing:       true,
		HasAbout:         true,
		HasContact:       true,
		HasHowItWorks:    true,
		WordCount:        400,
		SnapshotQuality:  models.SnapshotOK,
		FetchedAt:        testNow,
	}
}

func okDiag() models.FetchDiagnostics {
	return models.FetchDiagnostics{
		URL:          "https://acme.example/",
		StatusCode:   200,
		ByteCount:    5000,
		FailureClass: models.FailureNone,
	}
}

func TestScoreFullPage(t *testing.T) {
	result := Score(fullSignals(), okDiag())

	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
	if result.AnalysisStatus != models.StatusOK {
		t.Errorf("AnalysisStatus = %q, want ok", result.AnalysisStatus)
	}
	if result.Readiness != models.ReadinessStrong {
		t.Errorf("Readiness = %q, want %q", result.Readiness, models.ReadinessStrong)
	}
	if len(result.Weaknesses) != 0 {
		t.Errorf("Weaknesses = %v, want none", result.Weaknesses)
	}
}

func TestScoreBreakdownInvariants(t *testing.T) {
	cases := []models.ExtractedSignals{
		fullSignals(),
		{SnapshotQuality: models.SnapshotOK, FetchedAt: testNow},
		{SnapshotQuality: models.SnapshotOK, Title: "t", H1: []string{"a", "b", "c"}, FetchedAt: testNow},
	}

	for _, signals := range cases {
		result := Score(signals, okDiag())
		total := 0
		for _, item := range result.Breakdown {
			if item.Points < 0 || item.Points > item.Max {
				t.Errorf("breakdown item %q violates 0 <= points <= max: %d/%d", item.Label, item.Points, item.Max)
			}
			total += item.Points
		}
		if result.Score != total {
			t.Errorf("Score = %d, want sum of points %d", result.Score, total)
		}
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("Score = %d out of [0,100]", result.Score)
		}
	}
}

func TestScoreSentinelOnFailure(t *testing.T) {
	tests := []struct {
		name       string
		diag       models.FetchDiagnostics
		quality    string
		wantStatus string
	}{
		{
			name:       "blocked status",
			diag:       models.FetchDiagnostics{URL: "https://x.example", StatusCode: 403, FailureClass: models.FailureBlocked, FailureReason: "blocking status code: 403"},
			quality:    models.SnapshotShell,
			wantStatus: models.StatusBlocked,
		},
		{
			name:       "network failure",
			diag:       models.FetchDiagnostics{URL: "https://x.example", FailureClass: models.FailureNetwork, FailureReason: "dial tcp: timeout"},
			quality:    models.SnapshotShell,
			wantStatus: models.StatusError,
		},
		{
			name:       "http failure",
			diag:       models.FetchDiagnostics{URL: "https://x.example", StatusCode: 500, FailureClass: models.FailureHTTP, FailureReason: "unexpected status code: 500"},
			quality:    models.SnapshotShell,
			wantStatus: models.StatusError,
		},
		{
			name:       "thin snapshot",
			diag:       okDiag(),
			quality:    models.SnapshotThin,
			wantStatus: models.StatusSnapshotIncomplete,
		},
		{
			name:       "js shell",
			diag:       okDiag(),
			quality:    models.SnapshotShell,
			wantStatus: models.StatusSnapshotIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := models.ExtractedSignals{SnapshotQuality: tt.quality, FetchedAt: testNow}
			result := Score(signals, tt.diag)

			if result.Score != models.FailureScore {
				t.Errorf("Score = %d, want sentinel %d", result.Score, models.FailureScore)
			}
			if result.AnalysisStatus != tt.wantStatus {
				t.Errorf("AnalysisStatus = %q, want %q", result.AnalysisStatus, tt.wantStatus)
			}
			if result.Readiness != models.ReadinessNot {
				t.Errorf("Readiness = %q, want forced %q", result.Readiness, models.ReadinessNot)
			}
			if len(result.Breakdown) != 1 || result.Breakdown[0].Category != models.CategoryError {
				t.Errorf("Breakdown = %+v, want single Error item", result.Breakdown)
			}
		})
	}
}

func TestScoreNegativeIffNotOK(t *testing.T) {
	cases := []struct {
		signals models.ExtractedSignals
		diag    models.FetchDiagnostics
	}{
		{fullSignals(), okDiag()},
		{models.ExtractedSignals{SnapshotQuality: models.SnapshotOK, FetchedAt: testNow}, okDiag()},
		{models.ExtractedSignals{SnapshotQuality: models.SnapshotThin, FetchedAt: testNow}, okDiag()},
		{models.ExtractedSignals{SnapshotQuality: models.SnapshotShell, FetchedAt: testNow}, models.FetchDiagnostics{FailureClass: models.FailureBlocked, StatusCode: 429}},
		{models.ExtractedSignals{SnapshotQuality: models.SnapshotShell, FetchedAt: testNow}, models.FetchDiagnostics{FailureClass: models.FailureNetwork}},
	}

	for _, tt := range cases {
		result := Score(tt.signals, tt.diag)
		negative := result.Score < 0
		notOK := result.AnalysisStatus != models.StatusOK
		if negative != notOK {
			t.Errorf("score %d with status %q: negative score and non-ok status must coincide",
				result.Score, result.AnalysisStatus)
		}
	}
}

func TestReadinessThresholds(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		negatives int
		status    string
		want      string
	}{
		{"strong", 80, 1, models.StatusOK, models.ReadinessStrong},
		{"strong score too many negatives", 80, 2, models.StatusOK, models.ReadinessEmerging},
		{"boundary emerging", 74, 0, models.StatusOK, models.ReadinessEmerging},
		{"weak", 49, 0, models.StatusOK, models.ReadinessNot},
		{"boundary weak", 50, 3, models.StatusOK, models.ReadinessEmerging},
		{"blocked overrides score", 90, 0, models.StatusBlocked, models.ReadinessNot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readinessLabel(tt.score, tt.negatives, tt.status); got != tt.want {
				t.Errorf("readinessLabel(%d, %d, %q) = %q, want %q", tt.score, tt.negatives, tt.status, got, tt.want)
			}
		})
	}
}
