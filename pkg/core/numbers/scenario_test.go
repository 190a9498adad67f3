package numbers

import (
	"math"
	"testing"
)

func TestScenarioWhatIf(t *testing.T) {
	// precio_venta -10%, costes_construccion +12%
	res, err := ApplyScenario(seedInputs(), map[Field]Delta{
		FieldPrecioVenta:        {Mode: DeltaPercent, Value: -0.10},
		FieldCostesConstruccion: {Mode: DeltaPercent, Value: 0.12},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 300000 * 0.9 = 270000, 150000 * 1.12 = 168000
	wantMetric(t, "precio_venta", res.Inputs.PrecioVenta, 270000)
	wantMetric(t, "costes_construccion", res.Inputs.CostesConstruccion, 168000)
	// costes_totales = 265000 - 150000 + 168000 = 283000
	wantMetric(t, "costes_totales", res.Metrics.CostesTotales, 283000)
	// impuestos_total = 0.10 * 270000 = 27000
	wantMetric(t, "impuestos_total", res.Metrics.ImpuestosTotal, 27000)
	// gross_margin = 270000 - 283000 = -13000
	wantMetric(t, "gross_margin", res.Metrics.GrossMargin, -13000)
	// net_profit = -13000 - 27000 = -40000
	wantMetric(t, "net_profit", res.Metrics.NetProfit, -40000)

	if !hasAnomaly(res.Anomalies, "net_profit", AnomalyNegativeProfit) {
		t.Error("expected NEGATIVE_PROFIT anomaly in the what-if")
	}
}

func TestScenarioAbsoluteDelta(t *testing.T) {
	res, err := ApplyScenario(seedInputs(), map[Field]Delta{
		FieldPrecioVenta: {Mode: DeltaAbsolute, Value: 500000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantMetric(t, "precio_venta", res.Inputs.PrecioVenta, 500000)
	// Unlisted fields carry over.
	wantMetric(t, "total_pagado", res.Inputs.TotalPagado, 280000)
}

func TestScenarioIdempotence(t *testing.T) {
	// Empty delta set reproduces baseline metrics and anomalies exactly.
	base := seedInputs()
	direct := Compute(base)
	directAnomalies := Validate(base, direct)

	res, err := ApplyScenario(base, map[Field]Delta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range AllMetrics {
		a, b := direct.Get(m), res.Metrics.Get(m)
		switch {
		case (a == nil) != (b == nil):
			t.Errorf("%s presence differs", m)
		case a != nil && math.Abs(*a-*b) > tol:
			t.Errorf("%s differs: %f vs %f", m, *a, *b)
		}
	}
	if len(directAnomalies) != len(res.Anomalies) {
		t.Errorf("anomaly sets differ: %v vs %v", directAnomalies, res.Anomalies)
	}
}

func TestScenarioPercentSkipsAbsentBaseline(t *testing.T) {
	base := seedInputs()
	base.SuperficieM2 = nil

	res, err := ApplyScenario(base, map[Field]Delta{
		FieldSuperficieM2: {Mode: DeltaPercent, Value: 0.10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Inputs.SuperficieM2 != nil {
		t.Error("percent delta on an absent field should stay absent")
	}
}

func TestScenarioDoesNotMutateBaseline(t *testing.T) {
	base := seedInputs()
	if _, err := ApplyScenario(base, map[Field]Delta{
		FieldPrecioVenta: {Mode: DeltaPercent, Value: -0.5},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantMetric(t, "precio_venta baseline", base.PrecioVenta, 300000)
}

func TestScenarioRejectsBadDeltas(t *testing.T) {
	if _, err := ApplyScenario(seedInputs(), map[Field]Delta{
		FieldPrecioVenta: {Mode: DeltaPercent, Value: math.Inf(1)},
	}); err == nil {
		t.Error("expected error for non-finite delta")
	}
	if _, err := ApplyScenario(seedInputs(), map[Field]Delta{
		FieldPrecioVenta: {Mode: "relative", Value: 1},
	}); err == nil {
		t.Error("expected error for unknown delta mode")
	}
}
