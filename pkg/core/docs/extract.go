package docs

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText flattens an HTML document into plain text for indexing and
// QA snippets. Scripts and styles are dropped; table rows become
// pipe-joined lines so payment schedules stay greppable.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("html parse failed: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) > 0 {
				b.WriteString(strings.Join(cells, " | "))
				b.WriteString("\n")
			}
		})
		// Tables are rendered above; remove so the body pass below does
		// not repeat their text.
		table.Remove()
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	text := body.Text()
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			b.WriteString(trimmed)
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// FindSnippets returns lines of an extracted document containing every
// query token, the crude QA layer behind "¿cuándo vence el pago?".
func FindSnippets(text, query string, limit int) []string {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 3
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		all := true
		for _, tok := range tokens {
			if !strings.Contains(lower, tok) {
				all = false
				break
			}
		}
		if all {
			out = append(out, line)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}
