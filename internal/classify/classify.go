// Package classify turns a raw student query into the structured classification
// that drives collection routing and metadata filtering.
package classify

// QueryType is the coarse intent of a student query.
type QueryType string

const (
	// GeneralInfo covers programme questions and anything unclassifiable.
	GeneralInfo QueryType = "general_info"
	// IAFeedback covers Internal Assessment feedback requests.
	IAFeedback QueryType = "ia_feedback"
	// ExamQuestion covers exam and past-paper questions.
	ExamQuestion QueryType = "exam_question"
)

// Classification is the structured intent extracted from a raw query.
// It is produced once per query and immutable afterward.
type Classification struct {
	QueryType   QueryType `json:"query_type"`
	Subject     string    `json:"subject,omitempty"`
	Level       string    `json:"level,omitempty"` // "HL", "SL" or "Core"; empty when undetected
	SearchTerms []string  `json:"search_terms"`
}

// maxSearchTerms caps how many query tokens become search terms.
const maxSearchTerms = 5
