package ingest

// ChunkAttrs are the attributes attached to every chunk of one document.
// Source, DocType and Subject are required; the rest are included only when
// set, so absent keys stay absent in the store rather than becoming empty
// strings a filter could accidentally match.
type ChunkAttrs struct {
	Source  string
	DocType string
	Subject string
	Level   string
	Year    string
	Topic   string
	Section string
}

// buildMetadata builds the metadata map for one chunk.
func buildMetadata(attrs ChunkAttrs, chunkIndex int) map[string]any {
	meta := map[string]any{
		"source":      attrs.Source,
		"doc_type":    attrs.DocType,
		"subject":     attrs.Subject,
		"chunk_index": chunkIndex,
	}
	if attrs.Level != "" {
		meta["level"] = attrs.Level
	}
	if attrs.Year != "" {
		meta["year"] = attrs.Year
	}
	if attrs.Topic != "" {
		meta["topic"] = attrs.Topic
	}
	if attrs.Section != "" {
		meta["section"] = attrs.Section
	}
	return meta
}
