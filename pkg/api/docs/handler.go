package docs

import (
	"encoding/json"
	"net/http"

	core "rama_assistant/pkg/core/docs"
)

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

type proposeRequest struct {
	Filename string `json:"filename"`
	Hint     string `json:"hint"`
}

// HandlePropose suggests a framework slot for an uploaded document.
func HandlePropose(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req proposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slot := core.ProposeSlot(req.Filename, req.Hint)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slot)
}

type snippetsRequest struct {
	HTML  string `json:"html"`
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// HandleSnippets extracts text from an HTML document and returns the lines
// matching the query.
func HandleSnippets(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req snippetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := core.ExtractText(req.HTML)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"snippets": core.FindSnippets(text, req.Query, req.Limit),
	})
}
