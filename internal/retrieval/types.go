// Package retrieval implements the retrieval core: metadata filtering,
// per-collection similarity search, cross-collection merging, and context
// formatting for the generation step.
package retrieval

// MetadataFilter is a set of equality constraints on document metadata.
// An empty filter matches all documents. Keys are drawn from
// {subject, level, doc_type}; a multi-entry filter applies as a conjunction.
type MetadataFilter map[string]string

// BuildFilter builds a MetadataFilter from inferred query attributes.
// Only non-empty attributes are included; all absent yields an empty filter.
func BuildFilter(subject, level, docType string) MetadataFilter {
	filter := MetadataFilter{}
	if subject != "" {
		filter["subject"] = subject
	}
	if level != "" {
		filter["level"] = level
	}
	if docType != "" {
		filter["doc_type"] = docType
	}
	return filter
}

// ScoredDocument is one retrieved chunk with its similarity scores.
// Relevance is derived as 1 - Distance at construction and never set
// independently. For cosine distances in [0,1] relevance lands in [0,1];
// out-of-range distances produce out-of-range relevance, deliberately left
// unclamped because they signal a metric mismatch.
type ScoredDocument struct {
	Content   string
	Metadata  map[string]any
	Distance  float64
	Relevance float64
}
