package collections

import "github.com/Sadra-Dezdar/IBGPT/internal/classify"

// Route maps a query classification to the ordered list of collections to
// search. The policy is static:
//
//	ia_feedback   -> ia_guides, ia_examples
//	exam_question -> mark_schemes, ib_general
//	anything else -> ib_general, syllabus
//
// Route is total: every classification, including one with an unknown query
// type, yields a non-empty list. The returned slice is a fresh copy.
func Route(c classify.Classification) []string {
	switch c.QueryType {
	case classify.IAFeedback:
		return []string{IAGuides, IAExamples}
	case classify.ExamQuestion:
		return []string{MarkSchemes, IBGeneral}
	default:
		return []string{IBGeneral, Syllabus}
	}
}
