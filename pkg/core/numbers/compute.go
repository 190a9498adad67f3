package numbers

import "time"

// safeDiv divides a by b, returning nil when either side is absent or the
// denominator is zero. Division never panics anywhere in the engine.
func safeDiv(a, b *float64) *float64 {
	if a == nil || b == nil || *b == 0 {
		return nil
	}
	v := *a / *b
	return &v
}

func ptr(v float64) *float64 { return &v }

// Compute evaluates the fixed metric set over one input snapshot.
// Formulas run in declaration order; later metrics reuse earlier ones.
// A metric whose required inputs are absent comes back nil, never an error.
func Compute(in InputModel) DerivedMetrics {
	var out DerivedMetrics

	// impuestos_total = impuestos_pct * precio_venta
	if in.ImpuestosPct != nil && in.PrecioVenta != nil {
		out.ImpuestosTotal = ptr(*in.ImpuestosPct * *in.PrecioVenta)
	}

	// costes_totales = sum of the five cost components (present ones only;
	// nil when every component is absent)
	acc := 0.0
	has := false
	for _, f := range costFields {
		if v := in.Get(f); v != nil {
			acc += *v
			has = true
		}
	}
	if has {
		out.CostesTotales = ptr(acc)
	}

	// gross_margin = precio_venta - costes_totales
	if in.PrecioVenta != nil && out.CostesTotales != nil {
		out.GrossMargin = ptr(*in.PrecioVenta - *out.CostesTotales)
	}

	// net_profit = gross_margin - impuestos_total
	if in.PrecioVenta != nil && out.CostesTotales != nil && out.ImpuestosTotal != nil {
		out.NetProfit = ptr(*in.PrecioVenta - *out.CostesTotales - *out.ImpuestosTotal)
	}

	// roi_pct = net_profit / total_pagado
	out.ROIPct = safeDiv(out.NetProfit, in.TotalPagado)

	// urbano_ratio = terreno_urbano / (terreno_urbano + terreno_rustico)
	if in.TerrenoUrbano != nil && in.TerrenoRustico != nil {
		denom := *in.TerrenoUrbano + *in.TerrenoRustico
		out.UrbanoRatio = safeDiv(in.TerrenoUrbano, &denom)
	}

	// price_per_m2 = precio_venta / superficie_m2
	out.PricePerM2 = safeDiv(in.PrecioVenta, in.SuperficieM2)

	return out
}

// Calculate is the compute+validate entry point collaborators call: it
// fails fast on malformed input, otherwise returns a timestamped CalcResult
// ready for the calc log.
func Calculate(in InputModel, triggerSource, triggerType string) (CalcResult, error) {
	if err := CheckMalformed(in); err != nil {
		return CalcResult{}, err
	}
	metrics := Compute(in)
	return CalcResult{
		Inputs:        in,
		Metrics:       metrics,
		Anomalies:     Validate(in, metrics),
		TriggerSource: triggerSource,
		TriggerType:   triggerType,
		Timestamp:     time.Now().UTC(),
	}, nil
}
