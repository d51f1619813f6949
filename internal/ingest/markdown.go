package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Section is a heading-delimited slice of a markdown document. The heading
// becomes the chunk's "section" metadata so it survives into provenance lines.
type Section struct {
	Heading string
	Text    string
}

// markdownParser is shared; goldmark parsers are safe for concurrent use.
var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// SplitSections parses markdown and returns one section per heading, each
// holding the plain text beneath it. Content before the first heading becomes
// a section with an empty heading. Non-markdown content comes through as a
// single headingless section.
func SplitSections(content []byte) []Section {
	if len(content) == 0 {
		return nil
	}

	reader := text.NewReader(content)
	doc := markdownParser.Parser().Parse(reader)

	var sections []Section
	currentHeading := ""
	var currentText strings.Builder

	flush := func() {
		body := strings.TrimSpace(currentText.String())
		if body != "" || currentHeading != "" {
			sections = append(sections, Section{Heading: currentHeading, Text: body})
		}
		currentText.Reset()
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			flush()
			currentHeading = nodeText(node, content)
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if txt := linesText(node, content); txt != "" {
				currentText.WriteString(txt)
				currentText.WriteString("\n")
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.ListItem, *ast.Blockquote:
			if txt := nodeText(node, content); txt != "" {
				currentText.WriteString(txt)
				currentText.WriteString("\n")
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	flush()

	if len(sections) == 0 {
		return []Section{{Text: strings.TrimSpace(string(content))}}
	}
	return sections
}

// linesText reads a block node's raw source lines (used for code blocks,
// which carry no text children).
func linesText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimSpace(sb.String())
}

// nodeText extracts the plain text of a node's subtree.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if txt, ok := child.(*ast.Text); ok {
			sb.Write(txt.Segment.Value(source))
			if txt.SoftLineBreak() || txt.HardLineBreak() {
				sb.WriteString(" ")
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
