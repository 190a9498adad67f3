package assistant

import (
	"math"
	"testing"

	"rama_assistant/pkg/core/numbers"
)

func TestParseAmountFormats(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		percent bool
	}{
		{"25.000", 25000, false},
		{"25,000", 25000, false},
		{"25000", 25000, false},
		{"1.250.000", 1250000, false},
		{"7%", 7, true},
		{"0,10", 0.10, false},
		{"3.14", 3.14, false},
		{"1.234,56", 1234.56, false},
		{"1,234.56", 1234.56, false},
		{"-500", -500, false},
	}
	for _, c := range cases {
		got, pct, err := ParseAmount(c.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", c.in, err)
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
		if pct != c.percent {
			t.Errorf("ParseAmount(%q) percent = %v, want %v", c.in, pct, c.percent)
		}
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "%"} {
		if _, _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) should fail", in)
		}
	}
}

func TestSetNumberIntent(t *testing.T) {
	it := ParseIntent("pon la construcción a 150.000")
	if it.Kind != IntentSetNumber {
		t.Fatalf("kind = %s, want set_number", it.Kind)
	}
	if it.Field != numbers.FieldCostesConstruccion {
		t.Errorf("field = %s, want costes_construccion", it.Field)
	}
	if it.Value != 150000 {
		t.Errorf("value = %v, want 150000", it.Value)
	}

	it = ParseIntent("pon impuestos a 7%")
	if it.Kind != IntentSetNumber || it.Field != numbers.FieldImpuestosPct {
		t.Fatalf("percent set not routed: %+v", it)
	}
	if !it.IsPercent || it.Value != 7 {
		t.Errorf("got value=%v percent=%v, want 7 true", it.Value, it.IsPercent)
	}
}

func TestWhatIfIntent(t *testing.T) {
	it := ParseIntent("¿Y si el precio baja un 10% y la construcción sube un 12%?")
	if it.Kind != IntentWhatIf {
		t.Fatalf("kind = %s, want what_if", it.Kind)
	}
	if len(it.Deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(it.Deltas))
	}
	d := it.Deltas[numbers.FieldPrecioVenta]
	if d.Mode != numbers.DeltaPercent || math.Abs(d.Value-(-0.10)) > 1e-9 {
		t.Errorf("precio delta = %+v, want percent -0.10", d)
	}
	d = it.Deltas[numbers.FieldCostesConstruccion]
	if d.Mode != numbers.DeltaPercent || math.Abs(d.Value-0.12) > 1e-9 {
		t.Errorf("construccion delta = %+v, want percent 0.12", d)
	}
}

func TestBreakEvenIntent(t *testing.T) {
	it := ParseIntent("¿cuál es el punto de equilibrio del precio?")
	if it.Kind != IntentBreakEven {
		t.Fatalf("kind = %s, want break_even", it.Kind)
	}
	if it.Variable != numbers.FieldPrecioVenta {
		t.Errorf("variable = %s, want precio_venta", it.Variable)
	}
	if it.TargetMetric != numbers.MetricNetProfit {
		t.Errorf("target = %s, want net_profit", it.TargetMetric)
	}
}

func TestOtherIntents(t *testing.T) {
	if it := ParseIntent("recalcula los números"); it.Kind != IntentCalc {
		t.Errorf("calc turn routed as %s", it.Kind)
	}
	if it := ParseIntent("muéstrame la tabla"); it.Kind != IntentShowTable {
		t.Errorf("table turn routed as %s", it.Kind)
	}
	if it := ParseIntent("hazme un análisis de sensibilidad"); it.Kind != IntentSensitivity {
		t.Errorf("sensitivity turn routed as %s", it.Kind)
	}
	if it := ParseIntent("háblame del tiempo en Asturias"); it.Kind != IntentUnknown {
		t.Errorf("off-topic turn routed as %s", it.Kind)
	}
}

func TestMatchFieldAliases(t *testing.T) {
	cases := map[string]numbers.Field{
		"precio de venta":     numbers.FieldPrecioVenta,
		"terreno urbano":      numbers.FieldTerrenoUrbano,
		"terrenos":            numbers.FieldTerrenosCoste,
		"project management":  numbers.FieldProjectManagementCoste,
		"costes_construccion": numbers.FieldCostesConstruccion,
		"superficie":          numbers.FieldSuperficieM2,
	}
	for in, want := range cases {
		got, ok := MatchField(in)
		if !ok || got != want {
			t.Errorf("MatchField(%q) = %s/%v, want %s", in, got, ok, want)
		}
	}
	if _, ok := MatchField("color de la fachada"); ok {
		t.Error("MatchField should not resolve unrelated text")
	}
}
