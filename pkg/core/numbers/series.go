package numbers

// ChartSeries is the numeric contract for the external chart renderer:
// labels plus values, no pixels. Label text stays in the product's Spanish.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// costLabels pairs each cost component with its display label, in the
// order the charts stack them.
var costLabels = []struct {
	field Field
	label string
}{
	{FieldProjectMgmtFees, "Project Mgmt"},
	{FieldTerrenosCoste, "Terrenos"},
	{FieldProjectManagementCoste, "Project Management"},
	{FieldAcometidas, "Acometidas"},
	{FieldCostesConstruccion, "Construcción"},
}

// WaterfallSeries decomposes precio_venta down to net_profit: the sale
// price, each cost component as a negative step, taxes, then the net
// profit total. Absent components contribute zero steps; the sale price
// itself is required.
func WaterfallSeries(in InputModel) (ChartSeries, error) {
	if err := CheckMalformed(in); err != nil {
		return ChartSeries{}, err
	}
	if in.PrecioVenta == nil {
		return ChartSeries{}, &ValidationError{Fields: []string{string(FieldPrecioVenta)}, Reason: "precio_venta requerido"}
	}

	metrics := Compute(in)
	series := ChartSeries{
		Labels: []string{"Precio de venta"},
		Values: []float64{*in.PrecioVenta},
	}
	for _, c := range costLabels {
		v := 0.0
		if cv := in.Get(c.field); cv != nil {
			v = *cv
		}
		series.Labels = append(series.Labels, c.label)
		series.Values = append(series.Values, -v)
	}
	if metrics.ImpuestosTotal != nil {
		series.Labels = append(series.Labels, "Impuestos")
		series.Values = append(series.Values, -*metrics.ImpuestosTotal)
	}
	net := 0.0
	if metrics.NetProfit != nil {
		net = *metrics.NetProfit
	}
	series.Labels = append(series.Labels, "Net Profit")
	series.Values = append(series.Values, net)
	return series, nil
}

// CostStackSeries emits the five cost components plus their total, for the
// 100% stacked composition chart.
func CostStackSeries(in InputModel) (ChartSeries, error) {
	if err := CheckMalformed(in); err != nil {
		return ChartSeries{}, err
	}

	series := ChartSeries{}
	total := 0.0
	for _, c := range costLabels {
		v := 0.0
		if cv := in.Get(c.field); cv != nil {
			v = *cv
		}
		total += v
		series.Labels = append(series.Labels, c.label)
		series.Values = append(series.Values, v)
	}
	series.Labels = append(series.Labels, "Total")
	series.Values = append(series.Values, total)
	return series, nil
}
