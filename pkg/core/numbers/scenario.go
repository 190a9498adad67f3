package numbers

import (
	"math"
)

// ApplyScenario builds a hypothetical snapshot from a baseline plus deltas,
// then runs the same compute+validate pass a fresh InputModel would get.
// Percent deltas are multiplicative against the baseline value and are
// skipped when the baseline has no value to scale; absolute deltas replace
// the field outright. Unlisted fields carry over unchanged.
//
// The baseline is never mutated, so the same baseline is safe to share
// across concurrent what-if calls. An empty delta set reproduces the
// baseline metrics and anomaly set exactly.
func ApplyScenario(baseline InputModel, deltas map[Field]Delta) (ScenarioResult, error) {
	if err := CheckMalformed(baseline); err != nil {
		return ScenarioResult{}, err
	}
	for f, d := range deltas {
		if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
			return ScenarioResult{}, &ValidationError{Fields: []string{string(f)}, Reason: "non-finite delta"}
		}
		switch d.Mode {
		case DeltaPercent, DeltaAbsolute:
		default:
			return ScenarioResult{}, &ValidationError{Fields: []string{string(f)}, Reason: "unknown delta mode"}
		}
	}

	inputs := baseline
	for f, d := range deltas {
		switch d.Mode {
		case DeltaPercent:
			if base := baseline.Get(f); base != nil {
				inputs = inputs.With(f, *base*(1.0+d.Value))
			}
		case DeltaAbsolute:
			inputs = inputs.With(f, d.Value)
		}
	}

	metrics := Compute(inputs)
	return ScenarioResult{
		Deltas:    deltas,
		Inputs:    inputs,
		Metrics:   metrics,
		Anomalies: Validate(inputs, metrics),
	}, nil
}
