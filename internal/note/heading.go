package note

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// heading is a parsed markdown heading with its position in the file.
type heading struct {
	Level int
	Line  int // 0-indexed
	Raw   string
}

// extractHeadings parses content with goldmark and returns its headings in
// document order, with the raw source line attached for exact matching.
func extractHeadings(content string) []heading {
	lines := strings.Split(content, "\n")
	lineStarts := computeLineStarts(content)

	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	var headings []heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		line := offsetToLine(lineStarts, h.Lines().At(0).Start)
		if line >= len(lines) {
			return ast.WalkContinue, nil
		}
		headings = append(headings, heading{
			Level: h.Level,
			Line:  line,
			Raw:   lines[line],
		})
		return ast.WalkContinue, nil
	})
	return headings
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
