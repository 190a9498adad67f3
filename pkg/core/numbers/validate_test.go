package numbers

import "testing"

func hasAnomaly(anomalies []Anomaly, field string, code AnomalyCode) bool {
	for _, a := range anomalies {
		if a.Field == field && a.Code == code {
			return true
		}
	}
	return false
}

func TestValidateTaxRateBoundary(t *testing.T) {
	// Exactly 0.25 is inside the policy band.
	in := seedInputs()
	in.ImpuestosPct = ptr(0.25)
	if a := Validate(in, Compute(in)); hasAnomaly(a, "impuestos_pct", AnomalyOutOfRange) {
		t.Error("impuestos_pct = 0.25 should pass")
	}

	// Just above flags.
	in.ImpuestosPct = ptr(0.250001)
	if a := Validate(in, Compute(in)); !hasAnomaly(a, "impuestos_pct", AnomalyOutOfRange) {
		t.Error("impuestos_pct = 0.250001 should flag OUT_OF_RANGE")
	}

	in.ImpuestosPct = ptr(-0.01)
	if a := Validate(in, Compute(in)); !hasAnomaly(a, "impuestos_pct", AnomalyOutOfRange) {
		t.Error("negative impuestos_pct should flag OUT_OF_RANGE")
	}
}

func TestValidateNegativeValues(t *testing.T) {
	in := seedInputs()
	in.TerrenosCoste = ptr(-100)
	in.Acometidas = ptr(-1)

	a := Validate(in, Compute(in))
	if !hasAnomaly(a, "terrenos_coste", AnomalyNegativeValue) {
		t.Error("expected NEGATIVE_VALUE on terrenos_coste")
	}
	if !hasAnomaly(a, "acometidas", AnomalyNegativeValue) {
		t.Error("expected NEGATIVE_VALUE on acometidas")
	}
}

func TestValidateOverpayment(t *testing.T) {
	in := seedInputs()
	in.TotalPagado = ptr(300001)

	if a := Validate(in, Compute(in)); !hasAnomaly(a, "total_pagado", AnomalyOverpayment) {
		t.Error("expected OVERPAYMENT when total_pagado > precio_venta")
	}

	// Equal is not an overpayment.
	in.TotalPagado = ptr(300000)
	if a := Validate(in, Compute(in)); hasAnomaly(a, "total_pagado", AnomalyOverpayment) {
		t.Error("total_pagado == precio_venta should pass")
	}
}

func TestValidateNegativeProfit(t *testing.T) {
	in := seedInputs()
	in.PrecioVenta = ptr(200000) // below total costs

	if a := Validate(in, Compute(in)); !hasAnomaly(a, "net_profit", AnomalyNegativeProfit) {
		t.Error("expected NEGATIVE_PROFIT")
	}
}

func TestValidateRulesFireIndependently(t *testing.T) {
	// One model tripping every rule at once: all applicable rules fire,
	// none masks another.
	in := InputModel{
		PrecioVenta:        ptr(100000),
		ImpuestosPct:       ptr(0.30),
		CostesConstruccion: ptr(-150000),
		TotalPagado:        ptr(200000),
		TerrenoUrbano:      ptr(500),
		// terreno_rustico absent: urbano_ratio denominator incomplete
	}
	m := Compute(in)
	a := Validate(in, m)

	for _, want := range []struct {
		field string
		code  AnomalyCode
	}{
		{"impuestos_pct", AnomalyOutOfRange},
		{"costes_construccion", AnomalyNegativeValue},
		{"total_pagado", AnomalyOverpayment},
		{"urbano_ratio", AnomalyDivisionSkipped},
	} {
		if !hasAnomaly(a, want.field, want.code) {
			t.Errorf("expected %s on %s, got %v", want.code, want.field, a)
		}
	}
}

func TestValidateDeterministicOrder(t *testing.T) {
	in := seedInputs()
	in.TerrenosCoste = ptr(-1)
	in.CostesConstruccion = ptr(-1)

	first := Validate(in, Compute(in))
	for i := 0; i < 10; i++ {
		again := Validate(in, Compute(in))
		if len(again) != len(first) {
			t.Fatalf("anomaly count changed between runs: %d vs %d", len(first), len(again))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("anomaly order changed at %d: %v vs %v", j, first[j], again[j])
			}
		}
	}
}
