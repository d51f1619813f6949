package classify

import "strings"

// subjectKeywords maps lowercase keywords to canonical subject names.
// Mathematics is handled separately because it splits into AA and AI variants.
var subjectKeywords = []struct {
	keyword string
	subject string
}{
	{"physics", "Physics"},
	{"chemistry", "Chemistry"},
	{"biology", "Biology"},
	{"economics", "Economics"},
	{"history", "History"},
	{"psychology", "Psychology"},
	{"computer science", "Computer Science"},
	{"business management", "Business Management"},
	{"english", "English"},
	{"spanish", "Spanish"},
	{"french", "French"},
}

// Fallback classifies a query deterministically from fixed keyword tables.
// It is total: every input, including the empty string, produces a valid
// Classification. It is used whenever the model-based classifier is
// unavailable or returns output that cannot be parsed.
func Fallback(query string) Classification {
	lower := strings.ToLower(query)
	tokens := strings.Fields(lower)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[strings.Trim(tok, ".,!?;:()\"'")] = struct{}{}
	}

	c := Classification{
		QueryType:   GeneralInfo,
		SearchTerms: searchTerms(query),
	}

	// Query type. "ia" matches as a whole token so that words like
	// "mathematics" do not misclassify the query.
	if _, ok := tokenSet["ia"]; ok || strings.Contains(lower, "internal assessment") {
		c.QueryType = IAFeedback
	} else if containsAny(lower, "exam", "question", "paper", "solve") {
		c.QueryType = ExamQuestion
	}

	// Subject. Math splits into AA and AI, with AA as the tie-break default.
	if strings.Contains(lower, "math") {
		switch {
		case hasToken(tokenSet, "aa") || strings.Contains(lower, "analysis"):
			c.Subject = "Mathematics AA"
		case hasToken(tokenSet, "ai") || strings.Contains(lower, "applications"):
			c.Subject = "Mathematics AI"
		default:
			c.Subject = "Mathematics AA"
		}
	} else {
		for _, entry := range subjectKeywords {
			if strings.Contains(lower, entry.keyword) {
				c.Subject = entry.subject
				break
			}
		}
	}

	// Level, from literal substrings.
	if strings.Contains(lower, "hl") || strings.Contains(lower, "higher level") {
		c.Level = "HL"
	} else if strings.Contains(lower, "sl") || strings.Contains(lower, "standard level") {
		c.Level = "SL"
	}

	return c
}

// searchTerms returns the first few whitespace-delimited tokens of the raw query.
func searchTerms(query string) []string {
	terms := strings.Fields(query)
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}
	return terms
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasToken(set map[string]struct{}, tok string) bool {
	_, ok := set[tok]
	return ok
}
