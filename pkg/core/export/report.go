// Package export formats engine results for the spreadsheet and email
// collaborators. It consumes finished CalcResult/snapshot records and
// knows nothing about how they were computed.
package export

import (
	"fmt"
	"sort"
	"strings"

	"rama_assistant/pkg/core/numbers"
	"rama_assistant/pkg/core/store"
	"rama_assistant/pkg/core/utils"
)

// Report bundles everything the export surfaces: the latest calculation,
// the property's narrative summary and recent scenario history.
type Report struct {
	PropertyName string
	Summary      string
	Result       numbers.CalcResult
	Snapshots    []store.SnapshotRecord
}

func fmtValue(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}

// Markdown renders the report as Markdown tables: Inputs, Derived,
// Anomalies, Scenarios. This is also the email body before HTML
// conversion.
func (r Report) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Informe de números — %s\n\n", r.PropertyName)

	if r.Summary != "" {
		fmt.Fprintf(&b, "## Resumen\n\n%s\n\n", strings.TrimSpace(r.Summary))
	}

	b.WriteString("## Inputs\n\n| item_key | amount |\n|---|---|\n")
	inputRows := map[string]*float64{}
	var keys []string
	for _, f := range numbers.AllFields {
		inputRows[string(f)] = r.Result.Inputs.Get(f)
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s | %s |\n", k, fmtValue(inputRows[k]))
	}

	b.WriteString("\n## Derived\n\n| metric | value |\n|---|---|\n")
	for _, m := range numbers.AllMetrics {
		fmt.Fprintf(&b, "| %s | %s |\n", m, fmtValue(r.Result.Metrics.Get(m)))
	}

	b.WriteString("\n## Anomalies\n\n")
	if len(r.Result.Anomalies) == 0 {
		b.WriteString("Sin anomalías.\n")
	} else {
		b.WriteString("| field | code | message |\n|---|---|---|\n")
		for _, a := range r.Result.Anomalies {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", a.Field, a.Code, a.Message)
		}
	}

	if len(r.Snapshots) > 0 {
		b.WriteString("\n## Scenarios\n\n| name | created_at | deltas |\n|---|---|---|\n")
		for _, s := range r.Snapshots {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Name, s.CreatedAt.Format("2006-01-02 15:04"), string(s.Deltas))
		}
	}

	return b.String()
}

// HTML renders the report for the email collaborator.
func (r Report) HTML() (string, error) {
	return utils.MarkdownToHTML(r.Markdown())
}
