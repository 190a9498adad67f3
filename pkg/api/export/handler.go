package export

import (
	"fmt"
	"net/http"

	"rama_assistant/pkg/core/export"
	core "rama_assistant/pkg/core/numbers"
	"rama_assistant/pkg/core/property"
	"rama_assistant/pkg/core/store"
)

var propertyRepo *store.PropertyRepo
var numbersRepo *store.NumbersRepo
var calcRepo *store.CalcRepo
var summaryRepo *store.SummaryRepo

func InitHandler() {
	propertyRepo = store.NewPropertyRepo()
	numbersRepo = store.NewNumbersRepo()
	calcRepo = store.NewCalcRepo()
	summaryRepo = store.NewSummaryRepo()
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// HandleReport renders the numbers report for a property. ?format= picks
// markdown (default), html, or csv. The calculation runs fresh from the
// stored table so the report never shows stale metrics.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	propertyID := r.URL.Query().Get("property_id")
	if propertyID == "" {
		http.Error(w, "property_id required", http.StatusBadRequest)
		return
	}

	p, err := propertyRepo.Get(r.Context(), propertyID)
	if err != nil {
		http.Error(w, fmt.Sprintf("property not found: %s", propertyID), http.StatusNotFound)
		return
	}
	items, err := numbersRepo.GetLineItems(r.Context(), propertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, err := core.Calculate(property.InputModelFromLineItems(items), "api", "report")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshots, err := calcRepo.RecentSnapshots(r.Context(), propertyID, 10)
	if err != nil {
		fmt.Printf("[EXPORT] snapshot load failed: %v\n", err)
		snapshots = nil
	}
	summary, _, err := summaryRepo.GetSummary(r.Context(), propertyID)
	if err != nil {
		fmt.Printf("[EXPORT] summary load failed: %v\n", err)
		summary = ""
	}

	report := export.Report{
		PropertyName: p.Name,
		Summary:      summary,
		Result:       result,
		Snapshots:    snapshots,
	}

	switch r.URL.Query().Get("format") {
	case "html":
		html, err := report.HTML()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	case "csv":
		data, err := report.CSV()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=numeros.csv")
		w.Write(data)
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, report.Markdown())
	}
}
