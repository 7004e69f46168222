package models

// Extraction confidence levels for sweep rows.
const (
	ExtractionHigh   = "high"
	ExtractionMedium = "medium"
	ExtractionLow    = "low"
)

// SweepExtraction is the structured classification of one free-text model
// response. Derived purely from the response text plus brand variants;
// uncertainty collapses to zero values, never to an error.
type SweepExtraction struct {
	Mentioned            bool     `json:"mentioned"`
	MentionRank          *int     `json:"mention_rank,omitempty"` // 1-based; nil when unknown
	Winner               string   `json:"winner,omitempty"`
	Alternatives         []string `json:"alternatives,omitempty"`
	Confidence           int      `json:"confidence"` // 0-100
	ParseFailed          bool     `json:"parse_failed"`
	ExtractionConfidence string   `json:"extraction_confidence"`
}

// SweepResponse is one recorded model answer to a sweep prompt.
type SweepResponse struct {
	Prompt       string `yaml:"prompt" json:"prompt"`
	Provider     string `yaml:"provider" json:"provider"`
	Model        string `yaml:"model" json:"model"`
	ResponseText string `yaml:"response" json:"response"`
	ExpectList   bool   `yaml:"expect_list" json:"expect_list"`
}

// SweepBatch is the YAML input for one sweep run.
type SweepBatch struct {
	Responses []SweepResponse `yaml:"responses"`
}
