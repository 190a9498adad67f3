package numbers

import "math"

// BreakEvenOptions tunes a solver run. Zero values fall back to the
// defaults (target 0, tolerance 1e-6, 100 iterations).
type BreakEvenOptions struct {
	TargetValue   float64 `json:"target_value"`
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"max_iterations"`
}

// DefaultBreakEvenOptions returns the standard solver settings.
func DefaultBreakEvenOptions() BreakEvenOptions {
	return BreakEvenOptions{TargetValue: 0, Tolerance: 1e-6, MaxIterations: 100}
}

// SolveBreakEven finds the value of one input field that drives one derived
// metric to a target value.
//
// Every metric in the current formula set is affine in any single input
// field, so the solver first probes the metric at three points: if the
// slope is constant it inverts the line algebraically, which is exact and
// cheap. When the probe detects curvature (a future nonlinear metric) it
// falls back to bisection on an expanding bracket around the baseline
// value. Non-convergence is reported, never raised: the caller decides
// whether to loosen the tolerance or surface the failure.
func SolveBreakEven(baseline InputModel, variable Field, target Metric, opts BreakEvenOptions) (BreakEvenResult, error) {
	if err := CheckMalformed(baseline); err != nil {
		return BreakEvenResult{}, err
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-6
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}

	result := BreakEvenResult{
		TargetMetric:  target,
		VariableField: variable,
		Tolerance:     opts.Tolerance,
	}

	evals := 0
	eval := func(x float64) *float64 {
		evals++
		return Compute(baseline.With(variable, x)).Get(target)
	}

	x0 := 0.0
	if v := baseline.Get(variable); v != nil {
		x0 = *v
	}
	step := math.Max(1, math.Abs(x0)*0.01)

	f0 := eval(x0)
	if f0 == nil {
		// Metric undefined at the baseline; nothing to invert.
		result.Iterations = evals
		return result, nil
	}
	g0 := *f0 - opts.TargetValue

	f1 := eval(x0 + step)
	f2 := eval(x0 + 2*step)
	if f1 != nil && f2 != nil {
		slope := (*f1 - *f0) / step
		// Constant slope across both probe intervals means affine.
		curvature := math.Abs(*f2 - 2**f1 + *f0)
		scale := 1 + math.Abs(*f0) + math.Abs(*f2)
		if curvature <= 1e-9*scale {
			if math.Abs(slope) <= 1e-12*(1+math.Abs(*f0))/step {
				// Metric does not depend on this field.
				result.Residual = g0
				result.Iterations = evals
				return result, nil
			}
			x := x0 - g0/slope
			fx := eval(x)
			if fx != nil {
				residual := *fx - opts.TargetValue
				result.Solution = &x
				result.Residual = residual
				result.Iterations = evals
				result.Converged = math.Abs(residual) < opts.Tolerance
				if result.Converged {
					return result, nil
				}
			}
		}
	}

	// Bisection fallback: bracket a sign change around the baseline value,
	// expanding outward a few times if both ends sit on the same side.
	span := math.Max(1, math.Abs(x0)*0.5)
	lo, hi := x0-span, x0+span
	var gLo, gHi float64
	bracketed := false
	for attempt := 0; attempt < 8; attempt++ {
		fLo, fHi := eval(lo), eval(hi)
		if fLo == nil || fHi == nil {
			break
		}
		gLo, gHi = *fLo-opts.TargetValue, *fHi-opts.TargetValue
		if gLo*gHi <= 0 {
			bracketed = true
			break
		}
		span *= 2
		lo, hi = x0-span, x0+span
	}
	if !bracketed {
		result.Residual = g0
		result.Iterations = evals
		return result, nil
	}

	mid := x0
	gMid := g0
	for i := 0; i < opts.MaxIterations; i++ {
		mid = 0.5 * (lo + hi)
		fMid := eval(mid)
		if fMid == nil {
			break
		}
		gMid = *fMid - opts.TargetValue
		if math.Abs(gMid) < opts.Tolerance {
			result.Solution = &mid
			result.Residual = gMid
			result.Iterations = evals
			result.Converged = true
			return result, nil
		}
		if gLo*gMid <= 0 {
			hi = mid
			gHi = gMid
		} else {
			lo = mid
			gLo = gMid
		}
	}

	// Out of iterations: report the best estimate and let the caller decide.
	result.Solution = &mid
	result.Residual = gMid
	result.Iterations = evals
	return result, nil
}
