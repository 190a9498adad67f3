package numbers

import "fmt"

// Validate inspects inputs and derived metrics against the business
// guardrails. It is total and deterministic: every applicable rule fires,
// nothing ever raises, and the anomaly order is fixed (rule order, then
// canonical field order) so the set is reproducible.
func Validate(in InputModel, metrics DerivedMetrics) []Anomaly {
	anomalies := []Anomaly{}

	// Tax rate policy band.
	if v := in.ImpuestosPct; v != nil && (*v < 0 || *v > 0.25) {
		anomalies = append(anomalies, Anomaly{
			Field:   string(FieldImpuestosPct),
			Code:    AnomalyOutOfRange,
			Message: "impuestos_pct fuera de rango [0, 0.25]",
		})
	}

	// Currency and area fields must be non-negative. impuestos_pct is a
	// fraction, already covered by the range rule above.
	for _, f := range AllFields {
		if f == FieldImpuestosPct {
			continue
		}
		if v := in.Get(f); v != nil && *v < 0 {
			anomalies = append(anomalies, Anomaly{
				Field:   string(f),
				Code:    AnomalyNegativeValue,
				Message: fmt.Sprintf("%s es negativo", f),
			})
		}
	}

	if in.TotalPagado != nil && in.PrecioVenta != nil && *in.TotalPagado > *in.PrecioVenta {
		anomalies = append(anomalies, Anomaly{
			Field:   string(FieldTotalPagado),
			Code:    AnomalyOverpayment,
			Message: "total_pagado > precio_venta",
		})
	}

	if metrics.NetProfit != nil && *metrics.NetProfit < 0 {
		anomalies = append(anomalies, Anomaly{
			Field:   string(MetricNetProfit),
			Code:    AnomalyNegativeProfit,
			Message: "net_profit negativo",
		})
	}

	// Ratio metrics whose numerator was available but whose denominator was
	// zero or absent: the metric is nil, flag the skipped division.
	skipped := func(metric Metric, numeratorPresent bool, value *float64) {
		if numeratorPresent && value == nil {
			anomalies = append(anomalies, Anomaly{
				Field:   string(metric),
				Code:    AnomalyDivisionSkipped,
				Message: fmt.Sprintf("%s omitido: divisor cero o ausente", metric),
			})
		}
	}
	skipped(MetricROIPct, metrics.NetProfit != nil, metrics.ROIPct)
	skipped(MetricUrbanoRatio, in.TerrenoUrbano != nil, metrics.UrbanoRatio)
	skipped(MetricPricePerM2, in.PrecioVenta != nil, metrics.PricePerM2)

	return anomalies
}
