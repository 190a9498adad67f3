package numbers

import "math"

// Sensitivity evaluates one metric over the cross product of two field
// value vectors. Each cell is an absolute-replacement scenario of the
// baseline; a cell comes back nil where the metric is undefined. Row and
// column orderings are preserved exactly as supplied, so the grid maps
// one-to-one onto whatever axes the caller asked for.
//
// Cost is O(len(rowValues) * len(colValues)) Compute passes; callers bound
// the vectors for very large grids.
func Sensitivity(baseline InputModel, rowField Field, rowValues []float64, colField Field, colValues []float64, target Metric) (SensitivityGrid, error) {
	if err := CheckMalformed(baseline); err != nil {
		return SensitivityGrid{}, err
	}
	for _, v := range rowValues {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return SensitivityGrid{}, &ValidationError{Fields: []string{string(rowField)}, Reason: "non-finite row value"}
		}
	}
	for _, v := range colValues {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return SensitivityGrid{}, &ValidationError{Fields: []string{string(colField)}, Reason: "non-finite column value"}
		}
	}

	cells := make([][]*float64, len(rowValues))
	for i, r := range rowValues {
		row := make([]*float64, len(colValues))
		base := baseline.With(rowField, r)
		for j, c := range colValues {
			row[j] = Compute(base.With(colField, c)).Get(target)
		}
		cells[i] = row
	}

	return SensitivityGrid{
		RowField:     rowField,
		RowValues:    rowValues,
		ColField:     colField,
		ColValues:    colValues,
		TargetMetric: target,
		Cells:        cells,
	}, nil
}
