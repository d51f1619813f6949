package retrieval

import (
	"fmt"
	"strings"
)

const (
	// contentBudget is the per-document character cap in the rendered context.
	contentBudget = 500
	// truncationMarker is appended when content exceeds the budget.
	truncationMarker = "..."
	// NoResultsSentinel is rendered when there are no documents to show. It is
	// the only output the generation step sees for an empty retrieval, so it
	// must never be an empty string.
	NoResultsSentinel = "No relevant documents found for the query."
)

// ContextEntry is one formatted document in the context block. Provenance
// fields are empty when the corresponding metadata key is absent; the renderer
// omits them rather than printing placeholders.
type ContextEntry struct {
	Index     int     `json:"index"` // 1-based, in final ranked order
	Source    string  `json:"source,omitempty"`
	Subject   string  `json:"subject,omitempty"`
	Section   string  `json:"section,omitempty"`
	Content   string  `json:"content"`
	Truncated bool    `json:"truncated"`
	Relevance float64 `json:"relevance"`
}

// ContextBlock is the bounded bundle of retrieved documents handed to the
// generation step. The rendered text form is derived purely from Entries.
type ContextBlock struct {
	Entries []ContextEntry `json:"entries"`
}

// BuildContextBlock converts ranked documents into structured context entries,
// truncating content to the per-document budget.
func BuildContextBlock(docs []ScoredDocument) ContextBlock {
	entries := make([]ContextEntry, 0, len(docs))
	for i, doc := range docs {
		content, truncated := truncate(doc.Content, contentBudget)
		entries = append(entries, ContextEntry{
			Index:     i + 1,
			Source:    basename(metaString(doc.Metadata, "source")),
			Subject:   metaString(doc.Metadata, "subject"),
			Section:   metaString(doc.Metadata, "section"),
			Content:   content,
			Truncated: truncated,
			Relevance: doc.Relevance,
		})
	}
	return ContextBlock{Entries: entries}
}

// Render produces the text form of the block. An empty block renders as the
// fixed sentinel.
func (b ContextBlock) Render() string {
	if len(b.Entries) == 0 {
		return NoResultsSentinel
	}

	var sb strings.Builder
	sb.WriteString("RELEVANT CONTEXT:\n\n")

	for _, entry := range b.Entries {
		fmt.Fprintf(&sb, "[Document %d]\n", entry.Index)
		if entry.Source != "" {
			fmt.Fprintf(&sb, "Source: %s\n", entry.Source)
		}
		if entry.Subject != "" {
			fmt.Fprintf(&sb, "Subject: %s\n", entry.Subject)
		}
		if entry.Section != "" {
			fmt.Fprintf(&sb, "Section: %s\n", entry.Section)
		}
		fmt.Fprintf(&sb, "Content: %s\n", entry.Content)
		fmt.Fprintf(&sb, "Relevance: %.2f\n\n", entry.Relevance)
	}

	return sb.String()
}

// FormatContext renders ranked documents directly to the text form.
func FormatContext(docs []ScoredDocument) string {
	return BuildContextBlock(docs).Render()
}

// truncate caps s at budget characters, appending the truncation marker when
// anything was cut.
func truncate(s string, budget int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= budget {
		return s, false
	}
	return string(runes[:budget]) + truncationMarker, true
}

// basename strips any path prefix from a source filename.
func basename(source string) string {
	if idx := strings.LastIndexByte(source, '/'); idx >= 0 {
		return source[idx+1:]
	}
	return source
}

// metaString reads a string-valued metadata key; non-string values and absent
// keys both read as empty.
func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}
