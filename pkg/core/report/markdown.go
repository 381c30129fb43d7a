package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Markdown renders the report as a Markdown document: headings for the top
// levels, bold lines for substeps, plain lines for details.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# " + r.FullName + "\n\n")
	b.WriteString(fmt.Sprintf("## %d - %d\n\n", r.FromYear, r.ToYear))
	for _, f := range r.Findings {
		line := decorate(f)
		switch f.Level {
		case LevelTop:
			b.WriteString("### " + line + "\n")
			if f.Hyperlink != "" {
				b.WriteString(fmt.Sprintf("[декларація](%s)\n", f.Hyperlink))
			}
			b.WriteString("\n")
		case LevelStep:
			b.WriteString("**" + line + "**\n\n")
		case LevelSubstep:
			b.WriteString("- " + strings.ReplaceAll(line, "\n", "\n  ") + "\n")
		default:
			b.WriteString("  - " + strings.ReplaceAll(line, "\n", "\n    ") + "\n")
		}
	}
	return b.String()
}

// RenderHTML converts the Markdown rendering to HTML via Goldmark.
func (r *Report) RenderHTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return buf.String(), nil
}

// ValidateMarkdown checks that a string parses as Markdown. Goldmark is very
// permissive, so this is a basic sanity check used in tests.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	return parser.Parse(reader) != nil
}
