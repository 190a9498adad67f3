package property

import (
	"testing"

	"rama_assistant/pkg/core/numbers"
)

func fptr(v float64) *float64 { return &v }

func TestSchemaNames(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef0123456789"
	if got := ShortID(id); got != "a1b2c3d4" {
		t.Errorf("expected a1b2c3d4, got %s", got)
	}
	if got := NumbersSchema(id); got != "prop_a1b2c3d4__numbers_framework" {
		t.Errorf("unexpected numbers schema: %s", got)
	}
	if got := DocsSchema(id); got != "prop_a1b2c3d4__documents_framework" {
		t.Errorf("unexpected docs schema: %s", got)
	}
	if got := SummarySchema(id); got != "prop_a1b2c3d4__framework_summary_property" {
		t.Errorf("unexpected summary schema: %s", got)
	}
}

func TestInputModelFromLineItems(t *testing.T) {
	items := []LineItem{
		{GroupName: "venta", ItemKey: "precio_venta", Amount: fptr(300000)},
		{GroupName: "venta", ItemKey: "impuestos_pct", IsPercent: true, Amount: fptr(0.10)},
		{GroupName: "costes", ItemKey: "costes_construccion", Amount: fptr(150000)},
		{GroupName: "costes", ItemKey: "terrenos_coste", Amount: nil},       // not filled yet
		{GroupName: "extra", ItemKey: "notas_registrales", Amount: fptr(1)}, // unknown key
	}

	in := InputModelFromLineItems(items)
	if in.PrecioVenta == nil || *in.PrecioVenta != 300000 {
		t.Error("precio_venta not mapped")
	}
	if in.TerrenosCoste != nil {
		t.Error("unfilled row should stay absent")
	}

	missing := MissingItems(items)
	if len(missing) != 1 || missing[0] != "terrenos_coste" {
		t.Errorf("expected [terrenos_coste], got %v", missing)
	}

	// Unknown keys are skipped silently, not an error.
	if err := numbers.CheckMalformed(in); err != nil {
		t.Errorf("snapshot should be well formed: %v", err)
	}
}

func TestRankMatches(t *testing.T) {
	props := []Property{
		{ID: "1", Name: "Finca El Olivar", Address: "Camino Viejo 3, Ronda"},
		{ID: "2", Name: "Cortijo La Umbría", Address: "Ctra. de Gaucín km 12"},
		{ID: "3", Name: "Finca Los Almendros", Address: "Ronda"},
	}

	ranked := RankMatches("finca ronda", props, 5)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(ranked))
	}
	// Properties 1 and 3 carry both tokens; property 2 carries none.
	if ranked[0].ID == "2" || ranked[1].ID == "2" {
		t.Error("property 2 should not match")
	}

	if got := RankMatches("castillo", props, 5); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
