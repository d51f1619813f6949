// Package ingest turns source documents into metadata-tagged chunks and writes
// them to the document store, one collection per document type.
package ingest

import (
	"regexp"
	"strings"
)

// defaultMaxChunkSize is the character budget per chunk.
const defaultMaxChunkSize = 1000

// Chunker splits document text into chunks suited to its document type.
type Chunker interface {
	Chunk(text string) []string
}

// chunkers is the strategy table keyed by document type tag. The strategy is
// selected once per document at ingestion and never changes per chunk.
var chunkers = map[string]Chunker{
	"ia_guide":     criterionChunker{maxSize: defaultMaxChunkSize},
	"ia_example":   sizeChunker{maxSize: defaultMaxChunkSize},
	"mark_scheme":  markSchemeChunker{maxSize: defaultMaxChunkSize},
	"syllabus":     syllabusChunker{maxSize: defaultMaxChunkSize},
	"general_info": sizeChunker{maxSize: defaultMaxChunkSize},
}

// ForDocType returns the chunking strategy for a document type. Unknown types
// get the general size-based strategy.
func ForDocType(docType string) Chunker {
	if c, ok := chunkers[docType]; ok {
		return c
	}
	return sizeChunker{maxSize: defaultMaxChunkSize}
}

var criterionPattern = regexp.MustCompile(`Criterion [A-Z]:|Assessment Criteria [A-Z]:`)

// criterionChunker splits IA guides on assessment criterion headings, so each
// criterion's description stays together. The heading stays at the front of
// its chunk, so provenance can name the criterion.
type criterionChunker struct {
	maxSize int
}

func (c criterionChunker) Chunk(text string) []string {
	var chunks []string
	for _, section := range sliceAtMarkers(text, criterionPattern) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if len(section) > c.maxSize {
			chunks = append(chunks, splitBySentences(section, c.maxSize)...)
		} else {
			chunks = append(chunks, section)
		}
	}
	return chunks
}

var questionPattern = regexp.MustCompile(`Question \d+`)

// markSchemeChunker keeps each question together with its marking notes by
// slicing between "Question N" markers. Documents without the marker fall back
// to size-based chunking.
type markSchemeChunker struct {
	maxSize int
}

func (c markSchemeChunker) Chunk(text string) []string {
	starts := questionPattern.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return sizeChunker{maxSize: c.maxSize}.Chunk(text)
	}

	var chunks []string
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		pair := strings.TrimSpace(text[loc[0]:end])
		if pair != "" {
			chunks = append(chunks, pair)
		}
	}
	return chunks
}

var (
	topicPattern    = regexp.MustCompile(`Topic \d+:|Unit \d+:|Chapter \d+:`)
	subtopicPattern = regexp.MustCompile(`\d+\.\d+|[A-Z]\.\d+`)
)

// syllabusChunker splits syllabi by topic, then by numbered subtopic when a
// topic contains them. Markers stay at the front of their chunks. Documents
// without topic markers fall back to size-based chunking.
type syllabusChunker struct {
	maxSize int
}

func (c syllabusChunker) Chunk(text string) []string {
	var chunks []string
	for _, topic := range sliceAtMarkers(text, topicPattern) {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}

		subtopics := sliceAtMarkers(topic, subtopicPattern)
		if len(subtopics) > 1 {
			for _, st := range subtopics {
				st = strings.TrimSpace(st)
				if st != "" {
					chunks = append(chunks, st)
				}
			}
		} else {
			chunks = append(chunks, topic)
		}
	}

	if len(chunks) == 0 {
		return sizeChunker{maxSize: c.maxSize}.Chunk(text)
	}
	return chunks
}

// sliceAtMarkers cuts text at each match of pattern, keeping the match at the
// front of the slice that follows it. Text before the first match becomes its
// own slice; text without matches comes back whole.
func sliceAtMarkers(text string, pattern *regexp.Regexp) []string {
	starts := pattern.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return []string{text}
	}

	var parts []string
	if starts[0][0] > 0 {
		parts = append(parts, text[:starts[0][0]])
	}
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		parts = append(parts, text[loc[0]:end])
	}
	return parts
}

var (
	criterionLabelPattern = regexp.MustCompile(`Criterion [A-Z]|Assessment Criteria [A-Z]`)
	questionLabelPattern  = regexp.MustCompile(`^Question \d+`)
	topicLabelPattern     = regexp.MustCompile(`^(?:Topic|Unit|Chapter) \d+`)
	subtopicLabelPattern  = regexp.MustCompile(`^(?:\d+\.\d+|[A-Z]\.\d+)`)
)

// SectionLabel derives a provenance label from a chunk's marker for document
// types whose chunkers split on recognizable headings. Chunks without a
// marker, and doc types chunked purely by size, get no label.
func SectionLabel(docType, chunk string) string {
	switch docType {
	case "ia_guide":
		return criterionLabelPattern.FindString(chunk)
	case "mark_scheme":
		return questionLabelPattern.FindString(chunk)
	case "syllabus":
		if m := topicLabelPattern.FindString(chunk); m != "" {
			return m
		}
		return subtopicLabelPattern.FindString(chunk)
	}
	return ""
}

// sizeChunker accumulates whole words up to the size budget.
type sizeChunker struct {
	maxSize int
}

func (c sizeChunker) Chunk(text string) []string {
	words := strings.Fields(text)

	var chunks []string
	var current []string
	currentSize := 0

	for _, word := range words {
		wordSize := len(word) + 1 // +1 for the joining space
		if currentSize+wordSize > c.maxSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentSize = wordSize
		} else {
			current = append(current, word)
			currentSize += wordSize
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// splitBySentences splits oversized text at sentence boundaries, keeping each
// piece under maxSize.
func splitBySentences(text string, maxSize int) []string {
	sentences := splitSentences(text)

	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence) >= maxSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
		current.WriteString(" ")
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

// splitSentences breaks text after '.', '!' or '?' followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] == ' ' || text[i+1] == '\n' || text[i+1] == '\t' {
				sentences = append(sentences, strings.TrimSpace(text[start:i+1]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
