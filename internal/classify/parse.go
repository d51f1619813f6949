package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseable is returned when classifier output carries no usable
// classification. Callers recover by running Fallback on the raw query.
var ErrUnparseable = errors.New("classifier output is unparseable")

// ParseModelOutput extracts a Classification from free-form classifier model
// output. The model is prompted to emit a JSON object but routinely wraps it in
// prose, so the parser locates the first balanced object substring and decodes
// that. Any failure (no object, invalid JSON, unknown query type) returns
// ErrUnparseable; the caller falls back to the keyword classifier.
//
// The raw query is used to backfill search terms when the model omits them.
func ParseModelOutput(query, output string) (Classification, error) {
	objText, ok := extractObject(output)
	if !ok {
		return Classification{}, fmt.Errorf("%w: no JSON object found", ErrUnparseable)
	}

	var parsed struct {
		QueryType   string   `json:"query_type"`
		Subject     string   `json:"subject"`
		Level       string   `json:"level"`
		SearchTerms []string `json:"search_terms"`
	}
	if err := json.Unmarshal([]byte(objText), &parsed); err != nil {
		return Classification{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	var qt QueryType
	switch QueryType(strings.ToLower(strings.TrimSpace(parsed.QueryType))) {
	case GeneralInfo:
		qt = GeneralInfo
	case IAFeedback:
		qt = IAFeedback
	case ExamQuestion:
		qt = ExamQuestion
	default:
		return Classification{}, fmt.Errorf("%w: unknown query_type %q", ErrUnparseable, parsed.QueryType)
	}

	c := Classification{
		QueryType:   qt,
		Subject:     strings.TrimSpace(parsed.Subject),
		Level:       normalizeLevel(parsed.Level),
		SearchTerms: parsed.SearchTerms,
	}
	if len(c.SearchTerms) == 0 {
		c.SearchTerms = searchTerms(query)
	} else if len(c.SearchTerms) > maxSearchTerms {
		c.SearchTerms = c.SearchTerms[:maxSearchTerms]
	}
	return c, nil
}

// extractObject returns the substring from the first '{' to its matching '}'.
// If the braces never balance, the span runs to the last '}' in the text.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	end := strings.LastIndexByte(s, '}')
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func normalizeLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "HL":
		return "HL"
	case "SL":
		return "SL"
	case "CORE":
		return "Core"
	default:
		return ""
	}
}
