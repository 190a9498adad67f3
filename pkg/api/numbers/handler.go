package numbers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	core "rama_assistant/pkg/core/numbers"
	"rama_assistant/pkg/core/property"
	"rama_assistant/pkg/core/store"
)

var numbersRepo *store.NumbersRepo
var calcRepo *store.CalcRepo

func InitHandler() {
	numbersRepo = store.NewNumbersRepo()
	calcRepo = store.NewCalcRepo()
}

// cors sets permissive headers and short-circuits preflight. Returns true
// when the request was a preflight and is already answered.
func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// loadInputs reads the property's line items and maps them onto the input
// model.
func loadInputs(ctx context.Context, propertyID string) (core.InputModel, []property.LineItem, error) {
	items, err := numbersRepo.GetLineItems(ctx, propertyID)
	if err != nil {
		return core.InputModel{}, nil, fmt.Errorf("line items for %s: %w", propertyID, err)
	}
	return property.InputModelFromLineItems(items), items, nil
}

// HandleGet returns the raw framework table plus which cells are empty.
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	propertyID := r.URL.Query().Get("property_id")
	if propertyID == "" {
		http.Error(w, "property_id required", http.StatusBadRequest)
		return
	}

	_, items, err := loadInputs(r.Context(), propertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]interface{}{
		"items":   items,
		"missing": property.MissingItems(items),
	})
}

type setRequest struct {
	PropertyID string  `json:"property_id"`
	ItemKey    string  `json:"item_key"`
	Amount     float64 `json:"amount"`
}

// HandleSet writes one cell, then recomputes and persists the outputs so
// the stored metrics never lag the table.
func HandleSet(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PropertyID == "" || req.ItemKey == "" {
		http.Error(w, "property_id and item_key required", http.StatusBadRequest)
		return
	}

	if err := numbersRepo.SetAmount(r.Context(), req.PropertyID, req.ItemKey, req.Amount); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[NUMBERS] set %s.%s = %v\n", req.PropertyID, req.ItemKey, req.Amount)

	inputs, _, err := loadInputs(r.Context(), req.PropertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, err := core.Calculate(inputs, "api", "set_number")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	persist(r.Context(), req.PropertyID, result)
	respondJSON(w, result)
}

type calcRequest struct {
	PropertyID string `json:"property_id"`
}

// HandleCalc runs the full compute+validate pass and persists the result.
func HandleCalc(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inputs, _, err := loadInputs(r.Context(), req.PropertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, err := core.Calculate(inputs, "api", "calc")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	persist(r.Context(), req.PropertyID, result)
	respondJSON(w, result)
}

type whatIfRequest struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Deltas     map[string]struct {
		Mode  string  `json:"mode"`
		Value float64 `json:"value"`
	} `json:"deltas"`
}

// HandleWhatIf applies deltas to the stored baseline and optionally names
// the snapshot for later reports.
func HandleWhatIf(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req whatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deltas := map[core.Field]core.Delta{}
	for name, d := range req.Deltas {
		f, err := core.ParseField(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		deltas[f] = core.Delta{Mode: core.DeltaMode(d.Mode), Value: d.Value}
	}

	inputs, _, err := loadInputs(r.Context(), req.PropertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	scenario, err := core.ApplyScenario(inputs, deltas)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scenario.Name = req.Name

	if req.Name != "" && calcRepo != nil {
		if err := calcRepo.SaveSnapshot(r.Context(), req.PropertyID, req.Name, scenario.Deltas, scenario.Metrics); err != nil {
			fmt.Printf("[NUMBERS] snapshot save failed: %v\n", err)
		}
	}
	respondJSON(w, scenario)
}

type breakEvenRequest struct {
	PropertyID   string  `json:"property_id"`
	Variable     string  `json:"variable"`
	TargetMetric string  `json:"target_metric"`
	TargetValue  float64 `json:"target_value"`
}

func HandleBreakEven(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req breakEvenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	variable, err := core.ParseField(req.Variable)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	target := core.MetricNetProfit
	if req.TargetMetric != "" {
		if target, err = core.ParseMetric(req.TargetMetric); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	inputs, _, err := loadInputs(r.Context(), req.PropertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	opts := core.DefaultBreakEvenOptions()
	opts.TargetValue = req.TargetValue
	result, err := core.SolveBreakEven(inputs, variable, target, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, result)
}

type sensitivityRequest struct {
	PropertyID   string    `json:"property_id"`
	RowField     string    `json:"row_field"`
	RowValues    []float64 `json:"row_values"`
	ColField     string    `json:"col_field"`
	ColValues    []float64 `json:"col_values"`
	TargetMetric string    `json:"target_metric"`
}

func HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req sensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rowField, err := core.ParseField(req.RowField)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	colField, err := core.ParseField(req.ColField)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	target := core.MetricNetProfit
	if req.TargetMetric != "" {
		if target, err = core.ParseMetric(req.TargetMetric); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	inputs, _, err := loadInputs(r.Context(), req.PropertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	grid, err := core.Sensitivity(inputs, rowField, req.RowValues, colField, req.ColValues, target)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, grid)
}

// HandleSeries returns the chart-ready series for the dashboard.
func HandleSeries(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	propertyID := r.URL.Query().Get("property_id")
	if propertyID == "" {
		http.Error(w, "property_id required", http.StatusBadRequest)
		return
	}

	inputs, _, err := loadInputs(r.Context(), propertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	waterfall, err := core.WaterfallSeries(inputs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	costStack, err := core.CostStackSeries(inputs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, map[string]interface{}{
		"waterfall":  waterfall,
		"cost_stack": costStack,
	})
}

// persist stores outputs and the audit log entry. Failures are logged, not
// surfaced: the computed result is still correct and goes to the caller.
func persist(ctx context.Context, propertyID string, result core.CalcResult) {
	if calcRepo == nil {
		return
	}
	if err := calcRepo.SaveOutputs(ctx, propertyID, result); err != nil {
		fmt.Printf("[NUMBERS] outputs save failed: %v\n", err)
	}
	if err := calcRepo.AppendLog(ctx, propertyID, result); err != nil {
		fmt.Printf("[NUMBERS] calc log append failed: %v\n", err)
	}
}
