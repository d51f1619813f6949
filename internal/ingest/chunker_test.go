package ingest

import (
	"strings"
	"testing"
)

func TestForDocType(t *testing.T) {
	tests := []struct {
		docType string
		want    Chunker
	}{
		{"ia_guide", criterionChunker{maxSize: defaultMaxChunkSize}},
		{"ia_example", sizeChunker{maxSize: defaultMaxChunkSize}},
		{"mark_scheme", markSchemeChunker{maxSize: defaultMaxChunkSize}},
		{"syllabus", syllabusChunker{maxSize: defaultMaxChunkSize}},
		{"general_info", sizeChunker{maxSize: defaultMaxChunkSize}},
		{"unknown", sizeChunker{maxSize: defaultMaxChunkSize}},
	}

	for _, tt := range tests {
		if got := ForDocType(tt.docType); got != tt.want {
			t.Errorf("ForDocType(%q) = %T, want %T", tt.docType, got, tt.want)
		}
	}
}

func TestCriterionChunker(t *testing.T) {
	text := "Overview of the assessment.\n" +
		"Criterion A: Personal engagement matters.\n" +
		"Criterion B: Exploration should be thorough."

	chunks := criterionChunker{maxSize: defaultMaxChunkSize}.Chunk(text)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %q", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], "Criterion A:") || !strings.Contains(chunks[1], "Personal engagement") {
		t.Errorf("chunks[1] = %q, want criterion A heading and body", chunks[1])
	}
	if !strings.HasPrefix(chunks[2], "Criterion B:") || !strings.Contains(chunks[2], "Exploration") {
		t.Errorf("chunks[2] = %q, want criterion B heading and body", chunks[2])
	}
}

func TestCriterionChunkerOversizedSection(t *testing.T) {
	sentence := "This sentence pads out the criterion body with detail. "
	text := "Criterion A: " + strings.Repeat(sentence, 10)

	chunks := criterionChunker{maxSize: 200}.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("oversized section not split: %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 200+len(sentence) {
			t.Errorf("chunks[%d] length %d far exceeds budget", i, len(c))
		}
	}
}

func TestMarkSchemeChunker(t *testing.T) {
	text := "Question 1\nAward 2 marks for the correct method.\n" +
		"Question 2\nAward 1 mark for each value.\n" +
		"Question 3\nFollow through from part (a)."

	chunks := markSchemeChunker{maxSize: defaultMaxChunkSize}.Chunk(text)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %q", len(chunks), chunks)
	}
	for i, c := range chunks {
		if !strings.HasPrefix(c, "Question ") {
			t.Errorf("chunks[%d] = %q, want to start at a question marker", i, c)
		}
	}
	if !strings.Contains(chunks[0], "2 marks") {
		t.Errorf("chunks[0] lost its marking notes: %q", chunks[0])
	}
}

func TestMarkSchemeChunkerNoMarkers(t *testing.T) {
	text := "General marking guidance without numbered questions."
	chunks := markSchemeChunker{maxSize: defaultMaxChunkSize}.Chunk(text)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("fallback chunking = %q, want the whole text", chunks)
	}
}

func TestSyllabusChunker(t *testing.T) {
	text := "Topic 1: Mechanics\n1.1 Kinematics and motion graphs\n1.2 Forces and momentum\n" +
		"Topic 2: Waves\nWave phenomena overview"

	chunks := syllabusChunker{maxSize: defaultMaxChunkSize}.Chunk(text)
	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want subtopic-level splits: %q", len(chunks), chunks)
	}

	joined := strings.Join(chunks, "|")
	for _, want := range []string{"1.1 Kinematics", "1.2 Forces", "Topic 2: Waves"} {
		if !strings.Contains(joined, want) {
			t.Errorf("chunks missing %q: %q", want, chunks)
		}
	}
	if !strings.HasPrefix(chunks[0], "Topic 1:") {
		t.Errorf("chunks[0] = %q, want to keep the topic marker", chunks[0])
	}
}

func TestSectionLabel(t *testing.T) {
	tests := []struct {
		name    string
		docType string
		chunk   string
		want    string
	}{
		{"criterion heading", "ia_guide", "Criterion A: Personal engagement matters.", "Criterion A"},
		{"assessment criteria heading", "ia_guide", "Assessment Criteria B: Exploration.", "Assessment Criteria B"},
		{"criterion mid-chunk", "ia_guide", "Continued guidance for Criterion C scoring.", "Criterion C"},
		{"guide without marker", "ia_guide", "General advice on lab writeups.", ""},
		{"question marker", "mark_scheme", "Question 2\nAward 1 mark for each value.", "Question 2"},
		{"scheme without marker", "mark_scheme", "General marking guidance.", ""},
		{"topic marker", "syllabus", "Topic 1: Mechanics overview", "Topic 1"},
		{"unit marker", "syllabus", "Unit 3: Genetics", "Unit 3"},
		{"subtopic marker", "syllabus", "1.2 Forces and momentum", "1.2"},
		{"lettered subtopic", "syllabus", "A.3 Relativity option", "A.3"},
		{"size-chunked type", "ia_example", "Criterion A: copied from a guide.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SectionLabel(tt.docType, tt.chunk); got != tt.want {
				t.Errorf("SectionLabel(%q, %q) = %q, want %q", tt.docType, tt.chunk, got, tt.want)
			}
		})
	}
}

func TestSyllabusChunkerNoMarkers(t *testing.T) {
	text := "A short curriculum note without any topic numbering at all"
	chunks := syllabusChunker{maxSize: defaultMaxChunkSize}.Chunk(text)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("fallback chunking = %q, want the whole text", chunks)
	}
}

func TestSizeChunker(t *testing.T) {
	word := "word"
	text := strings.TrimSpace(strings.Repeat(word+" ", 100))

	chunks := sizeChunker{maxSize: 50}.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want text split across several", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 50 {
			t.Errorf("chunks[%d] length %d exceeds budget 50", i, len(c))
		}
		for _, w := range strings.Fields(c) {
			if w != word {
				t.Errorf("chunks[%d] broke a word: %q", i, w)
			}
		}
	}
}

func TestSizeChunkerEmpty(t *testing.T) {
	if chunks := (sizeChunker{maxSize: 50}).Chunk("   "); len(chunks) != 0 {
		t.Errorf("got %d chunks for blank input, want 0", len(chunks))
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First sentence. Second one! Third? Last without terminator")
	want := []string{"First sentence.", "Second one!", "Third?", "Last without terminator"}
	if len(got) != len(want) {
		t.Fatalf("got %d sentences %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentences[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentencesDecimalNotSplit(t *testing.T) {
	got := splitSentences("The value is 3.14 exactly.")
	if len(got) != 1 {
		t.Errorf("decimal point split a sentence: %q", got)
	}
}
