// Package numbers implements the property financial model engine: derived
// metric calculation, guardrail validation, what-if scenarios, break-even
// solving and sensitivity grids over a per-property input snapshot.
//
// Every operation is a pure function of an explicit InputModel plus explicit
// parameters. The package never touches storage, never renders charts and
// never produces user-facing prose; callers persist or narrate the result
// records it returns.
package numbers

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// INPUT MODEL
// =============================================================================

// InputModel is the raw per-property snapshot the engine computes over.
// A nil field means the value is absent upstream (incomplete or
// mid-correction data); the engine flags instead of rejecting.
type InputModel struct {
	PrecioVenta            *float64 `json:"precio_venta,omitempty"`
	ImpuestosPct           *float64 `json:"impuestos_pct,omitempty"`
	ProjectMgmtFees        *float64 `json:"project_mgmt_fees,omitempty"`
	TerrenosCoste          *float64 `json:"terrenos_coste,omitempty"`
	ProjectManagementCoste *float64 `json:"project_management_coste,omitempty"`
	Acometidas             *float64 `json:"acometidas,omitempty"`
	CostesConstruccion     *float64 `json:"costes_construccion,omitempty"`
	TotalPagado            *float64 `json:"total_pagado,omitempty"`
	TerrenoUrbano          *float64 `json:"terreno_urbano,omitempty"`
	TerrenoRustico         *float64 `json:"terreno_rustico,omitempty"`
	SuperficieM2           *float64 `json:"superficie_m2,omitempty"`
}

// =============================================================================
// DERIVED METRICS
// =============================================================================

// DerivedMetrics holds the computed metric set. A nil metric is "absent":
// a required input was missing or a denominator was zero.
type DerivedMetrics struct {
	ImpuestosTotal *float64 `json:"impuestos_total"`
	CostesTotales  *float64 `json:"costes_totales"`
	GrossMargin    *float64 `json:"gross_margin"`
	NetProfit      *float64 `json:"net_profit"`
	ROIPct         *float64 `json:"roi_pct"`
	UrbanoRatio    *float64 `json:"urbano_ratio"`
	PricePerM2     *float64 `json:"price_per_m2"`
}

// Metric identifies one derived metric. The enumeration is explicit so the
// formula set stays easy to extend without reflection.
type Metric string

const (
	MetricImpuestosTotal Metric = "impuestos_total"
	MetricCostesTotales  Metric = "costes_totales"
	MetricGrossMargin    Metric = "gross_margin"
	MetricNetProfit      Metric = "net_profit"
	MetricROIPct         Metric = "roi_pct"
	MetricUrbanoRatio    Metric = "urbano_ratio"
	MetricPricePerM2     Metric = "price_per_m2"
)

// AllMetrics lists every metric in formula evaluation order.
var AllMetrics = []Metric{
	MetricImpuestosTotal,
	MetricCostesTotales,
	MetricGrossMargin,
	MetricNetProfit,
	MetricROIPct,
	MetricUrbanoRatio,
	MetricPricePerM2,
}

// Get returns the value of the named metric, nil when absent.
func (d DerivedMetrics) Get(m Metric) *float64 {
	switch m {
	case MetricImpuestosTotal:
		return d.ImpuestosTotal
	case MetricCostesTotales:
		return d.CostesTotales
	case MetricGrossMargin:
		return d.GrossMargin
	case MetricNetProfit:
		return d.NetProfit
	case MetricROIPct:
		return d.ROIPct
	case MetricUrbanoRatio:
		return d.UrbanoRatio
	case MetricPricePerM2:
		return d.PricePerM2
	}
	return nil
}

// ParseMetric maps a wire name like "net_profit" onto a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllMetrics {
		if m == known {
			return m, nil
		}
	}
	return "", &ValidationError{Fields: []string{s}, Reason: "unknown metric"}
}

// =============================================================================
// ANOMALIES
// =============================================================================

// AnomalyCode classifies a guardrail finding.
type AnomalyCode string

const (
	AnomalyOutOfRange      AnomalyCode = "OUT_OF_RANGE"
	AnomalyNegativeValue   AnomalyCode = "NEGATIVE_VALUE"
	AnomalyOverpayment     AnomalyCode = "OVERPAYMENT"
	AnomalyNegativeProfit  AnomalyCode = "NEGATIVE_PROFIT"
	AnomalyDivisionSkipped AnomalyCode = "DIVISION_SKIPPED"
)

// Anomaly is an advisory, non-fatal flag. Same inputs always yield the
// same anomaly set in the same order.
type Anomaly struct {
	Field   string      `json:"field"`
	Code    AnomalyCode `json:"code"`
	Message string      `json:"message"`
}

// =============================================================================
// SCENARIO DELTAS
// =============================================================================

// DeltaMode selects how a scenario delta is applied to the baseline value.
type DeltaMode string

const (
	// DeltaPercent applies multiplicatively: new = baseline * (1 + value).
	DeltaPercent DeltaMode = "percent"
	// DeltaAbsolute replaces the baseline value outright.
	DeltaAbsolute DeltaMode = "absolute"
)

// Delta is one field adjustment inside a what-if scenario.
type Delta struct {
	Mode  DeltaMode `json:"mode"`
	Value float64   `json:"value"`
}

// =============================================================================
// RESULT CONTRACTS
// =============================================================================

// CalcResult is the record handed to the persistence collaborator after a
// plain compute+validate pass.
type CalcResult struct {
	Inputs        InputModel     `json:"inputs"`
	Metrics       DerivedMetrics `json:"metrics"`
	Anomalies     []Anomaly      `json:"anomalies"`
	TriggerSource string         `json:"trigger_source"`
	TriggerType   string         `json:"trigger_type"`
	Timestamp     time.Time      `json:"timestamp"`
}

// ScenarioResult is a derived, disposable what-if snapshot. The baseline
// InputModel it was built from is never mutated.
type ScenarioResult struct {
	Name      string          `json:"name,omitempty"`
	Deltas    map[Field]Delta `json:"deltas"`
	Inputs    InputModel      `json:"resulting_inputs"`
	Metrics   DerivedMetrics  `json:"resulting_metrics"`
	Anomalies []Anomaly       `json:"anomalies"`
}

// BreakEvenResult reports a solver run. Solution is nil when the target
// metric does not depend on the variable field or is undefined at the
// baseline; Converged is the only success signal.
type BreakEvenResult struct {
	TargetMetric  Metric   `json:"target_metric"`
	VariableField Field    `json:"variable_field"`
	Solution      *float64 `json:"solution"`
	Residual      float64  `json:"residual"`
	Iterations    int      `json:"iterations"`
	Converged     bool     `json:"converged"`
	Tolerance     float64  `json:"tolerance"`
}

// SensitivityGrid is a 2-D table of one metric across two varied fields.
// Row and column orderings are preserved exactly as supplied.
type SensitivityGrid struct {
	RowField     Field        `json:"row_field"`
	RowValues    []float64    `json:"row_values"`
	ColField     Field        `json:"col_field"`
	ColValues    []float64    `json:"col_values"`
	TargetMetric Metric       `json:"target_metric"`
	Cells        [][]*float64 `json:"cells"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ValidationError is the single fatal error the engine produces: the input
// was structurally malformed (NaN/Inf where a number is expected, unknown
// field or metric name). Ordinary out-of-policy data never raises it.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input (%s): %s", strings.Join(e.Fields, ", "), e.Reason)
}
