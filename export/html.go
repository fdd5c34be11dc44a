// Package export converts refined term-sheet text into document artifacts.
// The text uses a minimal markdown convention: #/##/### headings, -/* list
// bullets, **bold** emphasis and --- rules.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// HTMLExporter renders the markdown convention into a standalone HTML
// document suitable for printing or conversion to paginated formats.
type HTMLExporter struct {
	md    goldmark.Markdown
	title string
}

// NewHTMLExporter creates a new HTML exporter
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{
		md:    goldmark.New(),
		title: "Term Sheet",
	}
}

// Export converts the term-sheet text into a complete HTML document
func (e *HTMLExporter) Export(content string) ([]byte, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(content), &body); err != nil {
		return nil, fmt.Errorf("failed to convert term sheet to HTML: %w", err)
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	doc.WriteString("<meta charset=\"utf-8\">\n")
	doc.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(e.title)))
	doc.WriteString("<style>\n")
	doc.WriteString("body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; }\n")
	doc.WriteString("h1 { text-align: center; font-size: 1.2rem; }\n")
	doc.WriteString("h2 { font-size: 1.05rem; margin-top: 1.5rem; }\n")
	doc.WriteString("h3 { font-size: 1rem; font-style: italic; }\n")
	doc.WriteString("hr { border: none; border-top: 1px solid #999; margin: 1.5rem 0; }\n")
	doc.WriteString("</style>\n</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")

	return []byte(doc.String()), nil
}
