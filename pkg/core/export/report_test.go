package export

import (
	"strings"
	"testing"
	"time"

	"rama_assistant/pkg/core/numbers"
)

func sampleReport() Report {
	pv := 300000.0
	tax := 0.10
	net := 5000.0
	return Report{
		PropertyName: "Finca El Olivar",
		Result: numbers.CalcResult{
			Inputs:  numbers.InputModel{PrecioVenta: &pv, ImpuestosPct: &tax},
			Metrics: numbers.DerivedMetrics{NetProfit: &net},
			Anomalies: []numbers.Anomaly{
				{Field: "roi_pct", Code: numbers.AnomalyDivisionSkipped, Message: "roi_pct omitido: divisor cero o ausente"},
			},
			TriggerSource: "agent",
			TriggerType:   "export",
			Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestReportMarkdown(t *testing.T) {
	md := sampleReport().Markdown()

	for _, want := range []string{
		"# Informe de números — Finca El Olivar",
		"## Inputs",
		"| precio_venta | 300000.00 |",
		"## Derived",
		"| net_profit | 5000.00 |",
		// Absent metrics render as a dash, not zero.
		"| roi_pct | — |",
		"## Anomalies",
		"DIVISION_SKIPPED",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestReportMarkdownSummary(t *testing.T) {
	r := sampleReport()
	r.Summary = "Finca de olivos con acceso rodado y luz a pie de parcela."

	md := r.Markdown()
	if !strings.Contains(md, "## Resumen\n\nFinca de olivos") {
		t.Error("expected summary section")
	}

	// No summary stored: the section is omitted entirely.
	if strings.Contains(sampleReport().Markdown(), "## Resumen") {
		t.Error("empty summary should not render a section")
	}
}

func TestReportHTML(t *testing.T) {
	html, err := sampleReport().HTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Error("expected rendered tables in HTML report")
	}
}

func TestReportCSV(t *testing.T) {
	data, err := sampleReport().CSV()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(data)

	if !strings.HasPrefix(body, "section,key,value\n") {
		t.Error("expected header row")
	}
	if !strings.Contains(body, "input,precio_venta,300000") {
		t.Error("expected precio_venta input row")
	}
	// Absent value: empty cell.
	if !strings.Contains(body, "metric,roi_pct,\n") {
		t.Error("expected empty cell for absent roi_pct")
	}
	if !strings.Contains(body, "anomaly,roi_pct,DIVISION_SKIPPED") {
		t.Error("expected anomaly row")
	}
}
