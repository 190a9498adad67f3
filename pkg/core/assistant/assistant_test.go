package assistant

import (
	"context"
	"math"
	"strings"
	"testing"

	"rama_assistant/pkg/core/numbers"
)

func ptr(v float64) *float64 { return &v }

func baseInputs() numbers.InputModel {
	return numbers.InputModel{
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
}

func TestExecuteCalc(t *testing.T) {
	a := New(nil)
	res, err := a.Execute(Intent{Kind: IntentCalc}, baseInputs())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Calc == nil {
		t.Fatal("calc result missing")
	}
	if np := res.Calc.Metrics.NetProfit; np == nil || math.Abs(*np-5000) > 1e-9 {
		t.Errorf("net_profit = %v, want 5000", np)
	}
	if !strings.Contains(res.Summary, "net_profit") {
		t.Errorf("summary missing metrics: %q", res.Summary)
	}
}

func TestExecuteSetNumberConvertsPercent(t *testing.T) {
	a := New(nil)
	res, err := a.Execute(Intent{Kind: IntentSetNumber, Field: numbers.FieldImpuestosPct, Value: 7, IsPercent: true}, baseInputs())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if math.Abs(res.Intent.Value-0.07) > 1e-12 {
		t.Errorf("stored value = %v, want 0.07", res.Intent.Value)
	}
}

func TestExecuteWhatIfLeavesBaseline(t *testing.T) {
	a := New(nil)
	in := baseInputs()
	deltas := map[numbers.Field]numbers.Delta{
		numbers.FieldPrecioVenta: {Mode: numbers.DeltaPercent, Value: -0.10},
	}
	res, err := a.Execute(Intent{Kind: IntentWhatIf, Deltas: deltas}, in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Scenario == nil {
		t.Fatal("scenario result missing")
	}
	if *in.PrecioVenta != 300000 {
		t.Errorf("baseline mutated: precio_venta = %v", *in.PrecioVenta)
	}
	if got := res.Scenario.Inputs.PrecioVenta; got == nil || math.Abs(*got-270000) > 1e-9 {
		t.Errorf("scenario precio = %v, want 270000", got)
	}
}

func TestExecuteBreakEven(t *testing.T) {
	a := New(nil)
	res, err := a.Execute(Intent{
		Kind:         IntentBreakEven,
		Variable:     numbers.FieldPrecioVenta,
		TargetMetric: numbers.MetricNetProfit,
	}, baseInputs())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	be := res.BreakEven
	if be == nil || !be.Converged || be.Solution == nil {
		t.Fatalf("solver did not converge: %+v", be)
	}
	want := 265000.0 / 0.9
	if math.Abs(*be.Solution-want) > 1e-3 {
		t.Errorf("solution = %v, want %v", *be.Solution, want)
	}
	if !strings.Contains(res.Summary, "Punto de equilibrio") {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestExecuteSensitivityDefaultGrid(t *testing.T) {
	a := New(nil)
	res, err := a.Execute(Intent{Kind: IntentSensitivity, TargetMetric: numbers.MetricNetProfit}, baseInputs())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	g := res.Grid
	if g == nil {
		t.Fatal("grid missing")
	}
	if len(g.RowValues) != 5 || len(g.ColValues) != 5 {
		t.Fatalf("grid shape = %dx%d, want 5x5", len(g.RowValues), len(g.ColValues))
	}
	// Center cell is the baseline scenario.
	mid := g.Cells[2][2]
	if mid == nil || math.Abs(*mid-5000) > 1e-6 {
		t.Errorf("center cell = %v, want 5000", mid)
	}
}

func TestRouteWithoutManagerStaysOffline(t *testing.T) {
	a := New(nil)
	it := a.Route(context.Background(), "cuéntame un chiste")
	if it.Kind != IntentUnknown {
		t.Errorf("kind = %s, want unknown", it.Kind)
	}
	it = a.Route(context.Background(), "recalcula los números")
	if it.Kind != IntentCalc {
		t.Errorf("kind = %s, want calc", it.Kind)
	}
}
