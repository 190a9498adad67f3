package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// GFM so the report's pipe tables render as real tables in the email body.
var mdRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// CleanMarkdown strips wrapping code fences so model answers and report
// bodies render as plain Markdown.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// MarkdownToHTML renders Markdown to an HTML fragment, for the email
// body of an exported report.
func MarkdownToHTML(input string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(CleanMarkdown(input)), &buf); err != nil {
		return "", fmt.Errorf("markdown render failed: %w", err)
	}
	return buf.String(), nil
}
