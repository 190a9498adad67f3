// Manual walkthrough of the engine on a reference property. Run it to eyeball
// the metric chain, the what-if path, and the break-even solver without a
// database or a model key.
package main

import (
	"fmt"

	"rama_assistant/pkg/core/numbers"
)

func ptr(v float64) *float64 { return &v }

func show(name string, v *float64) {
	if v == nil {
		fmt.Printf("  %-16s —\n", name)
		return
	}
	fmt.Printf("  %-16s %.4f\n", name, *v)
}

func main() {
	inputs := numbers.InputModel{
		PrecioVenta:            ptr(300000),
		ImpuestosPct:           ptr(0.10),
		ProjectMgmtFees:        ptr(5000),
		TerrenosCoste:          ptr(100000),
		ProjectManagementCoste: ptr(8000),
		Acometidas:             ptr(2000),
		CostesConstruccion:     ptr(150000),
		TotalPagado:            ptr(280000),
		TerrenoUrbano:          ptr(600),
		TerrenoRustico:         ptr(400),
		SuperficieM2:           ptr(200),
	}

	fmt.Println("--- Derived Metrics ---")
	metrics := numbers.Compute(inputs)
	for _, m := range numbers.AllMetrics {
		show(string(m), metrics.Get(m))
	}

	fmt.Println("--- Anomalies ---")
	anomalies := numbers.Validate(inputs, metrics)
	if len(anomalies) == 0 {
		fmt.Println("  (none)")
	}
	for _, a := range anomalies {
		fmt.Printf("  [%s] %s: %s\n", a.Code, a.Field, a.Message)
	}

	fmt.Println("--- What-If: precio -10%, construccion +12% ---")
	scenario, err := numbers.ApplyScenario(inputs, map[numbers.Field]numbers.Delta{
		numbers.FieldPrecioVenta:        {Mode: numbers.DeltaPercent, Value: -0.10},
		numbers.FieldCostesConstruccion: {Mode: numbers.DeltaPercent, Value: 0.12},
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, m := range numbers.AllMetrics {
		show(string(m), scenario.Metrics.Get(m))
	}
	for _, a := range scenario.Anomalies {
		fmt.Printf("  [%s] %s: %s\n", a.Code, a.Field, a.Message)
	}

	fmt.Println("--- Break-Even: precio_venta for net_profit = 0 ---")
	be, err := numbers.SolveBreakEven(inputs, numbers.FieldPrecioVenta, numbers.MetricNetProfit, numbers.DefaultBreakEvenOptions())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if be.Solution != nil {
		fmt.Printf("  solution = %.4f (converged=%v, iterations=%d, residual=%g)\n",
			*be.Solution, be.Converged, be.Iterations, be.Residual)
	} else {
		fmt.Printf("  no solution (converged=%v)\n", be.Converged)
	}

	fmt.Println("--- Sensitivity: precio x construccion, net_profit ---")
	grid, err := numbers.Sensitivity(inputs,
		numbers.FieldPrecioVenta, []float64{270000, 300000, 330000},
		numbers.FieldCostesConstruccion, []float64{120000, 150000, 180000},
		numbers.MetricNetProfit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for i, row := range grid.Cells {
		fmt.Printf("  precio=%.0f:", grid.RowValues[i])
		for _, cell := range row {
			if cell == nil {
				fmt.Printf(" %10s", "—")
			} else {
				fmt.Printf(" %10.0f", *cell)
			}
		}
		fmt.Println()
	}
}
