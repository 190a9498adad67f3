package numbers

import (
	"math"
	"testing"
)

func TestWaterfallSeries(t *testing.T) {
	s, err := WaterfallSeries(seedInputs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// precio + 5 cost steps + taxes + net profit = 8 bars
	if len(s.Labels) != 8 || len(s.Values) != 8 {
		t.Fatalf("expected 8 bars, got %d labels / %d values", len(s.Labels), len(s.Values))
	}
	if s.Labels[0] != "Precio de venta" || s.Values[0] != 300000 {
		t.Errorf("first bar should be the sale price, got %s=%f", s.Labels[0], s.Values[0])
	}
	if s.Labels[7] != "Net Profit" || math.Abs(s.Values[7]-5000) > tol {
		t.Errorf("last bar should be net profit 5000, got %s=%f", s.Labels[7], s.Values[7])
	}

	// The relative steps must sum to the total bar.
	sum := 0.0
	for _, v := range s.Values[:7] {
		sum += v
	}
	if math.Abs(sum-s.Values[7]) > tol {
		t.Errorf("waterfall steps sum to %f, net profit is %f", sum, s.Values[7])
	}
}

func TestWaterfallRequiresPrecio(t *testing.T) {
	in := seedInputs()
	in.PrecioVenta = nil
	if _, err := WaterfallSeries(in); err == nil {
		t.Error("expected error without precio_venta")
	}
}

func TestCostStackSeries(t *testing.T) {
	s, err := CostStackSeries(seedInputs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Labels) != 6 {
		t.Fatalf("expected 5 components + total, got %d", len(s.Labels))
	}
	if s.Labels[5] != "Total" || math.Abs(s.Values[5]-265000) > tol {
		t.Errorf("expected total 265000, got %f", s.Values[5])
	}
}
