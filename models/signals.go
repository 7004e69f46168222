package models

import "time"

// Snapshot quality levels for fetched page content.
const (
	SnapshotOK    = "ok"
	SnapshotThin  = "thin"  // fetched but too little text to score reliably
	SnapshotShell = "shell" // JS-only shell, content requires client-side rendering
)

// Fetch failure classes reported by the fetch collaborator.
const (
	FailureNone    = "none"
	FailureNetwork = "network" // host unreachable, DNS, timeout
	FailureBlocked = "blocked" // reachable host answered with a blocking status
	FailureHTTP    = "http"    // other non-success status
)

// FetchDiagnostics records what the fetch layer observed for one attempt.
// It is carried through the analysis unchanged so results stay auditable.
type FetchDiagnostics struct {
	URL           string `json:"url"`
	FinalURL      string `json:"final_url,omitempty"`
	StatusCode    int    `json:"status_code"`
	ContentType   string `json:"content_type,omitempty"`
	ByteCount     int    `json:"byte_count"`
	FailureClass  string `json:"failure_class"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// OK reports whether the fetch produced usable HTML.
func (d FetchDiagnostics) OK() bool {
	return d.FailureClass == FailureNone
}

// ExtractedSignals is the fixed set of per-scan signals pulled from page
// content. Absence of a signal is false/empty, never an error. Immutable
// once produced.
type ExtractedSignals struct {
	Title           string   `json:"title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	CanonicalURL    string   `json:"canonical_url,omitempty"`
	H1              []string `json:"h1,omitempty"`
	H2              []string `json:"h2,omitempty"`
	H3              []string `json:"h3,omitempty"`

	// FAQ evidence is tracked in three independent forms so consumers can
	// distinguish strength of evidence.
	HasFAQ           bool `json:"has_faq"`            // explicit FAQ markup or heading
	HasIndirectFAQ   bool `json:"has_indirect_faq"`   // link to a FAQ-like page
	HasDirectAnswers bool `json:"has_direct_answers"` // inline question -> short answer blocks

	HasSchema     bool     `json:"has_schema"`
	SchemaTypes   []string `json:"schema_types,omitempty"`
	HasPricing    bool     `json:"has_pricing"`
	HasAbout      bool     `json:"has_about"`
	HasContact    bool     `json:"has_contact"`
	HasHowItWorks bool     `json:"has_how_it_works"`

	// Readability enrichment
	WordCount int    `json:"word_count"`
	Excerpt   string `json:"excerpt,omitempty"`
	SiteName  string `json:"site_name,omitempty"`

	SnapshotQuality string    `json:"snapshot_quality"`
	FetchedAt       time.Time `json:"fetched_at"`
}
