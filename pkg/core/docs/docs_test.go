package docs

import (
	"strings"
	"testing"
)

func TestProposeSlotFromFilename(t *testing.T) {
	slot := ProposeSlot("factura_fontaneria_marzo.pdf", "")
	if slot.Group != "Reforma" || slot.Subgroup != "Docs facturas" {
		t.Errorf("expected Reforma/Docs facturas, got %s/%s", slot.Group, slot.Subgroup)
	}
	if slot.Name != "Factura" {
		t.Errorf("expected name Factura, got %s", slot.Name)
	}
}

func TestProposeSlotFromHint(t *testing.T) {
	slot := ProposeSlot("scan_0001.pdf", "licencia de obra del arquitecto")
	if slot.Group != "Reforma" || slot.Subgroup != "Docs diseño" {
		t.Errorf("expected Reforma/Docs diseño, got %s/%s", slot.Group, slot.Subgroup)
	}
}

func TestProposeSlotDefault(t *testing.T) {
	slot := ProposeSlot("foto_fachada.jpg", "")
	if slot.Group != "Compra" || slot.Name != "Contrato privado" {
		t.Errorf("expected default Compra slot, got %+v", slot)
	}
}

func TestExtractText(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head><body>
		<p>Contrato de arras</p>
		<script>alert("x")</script>
		<table><tr><th>Pago</th><th>Fecha</th></tr><tr><td>10.000 €</td><td>2025-09-01</td></tr></table>
	</body></html>`

	text, err := ExtractText(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Error("script/style content should be stripped")
	}
	if !strings.Contains(text, "Pago | Fecha") {
		t.Errorf("table rows should be pipe-joined, got:\n%s", text)
	}
	if !strings.Contains(text, "Contrato de arras") {
		t.Error("body text missing")
	}
}

func TestFindSnippets(t *testing.T) {
	text := "Pago | Fecha\n10.000 € | 2025-09-01\nContrato de arras firmado"
	hits := FindSnippets(text, "pago fecha", 3)
	if len(hits) != 1 || hits[0] != "Pago | Fecha" {
		t.Errorf("expected the header line, got %v", hits)
	}
	if got := FindSnippets(text, "hipoteca", 3); len(got) != 0 {
		t.Errorf("expected no hits, got %v", got)
	}
}
