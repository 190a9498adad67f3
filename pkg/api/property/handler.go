package property

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"rama_assistant/pkg/core/store"
)

var propertyRepo *store.PropertyRepo
var summaryRepo *store.SummaryRepo

func InitHandler() {
	propertyRepo = store.NewPropertyRepo()
	summaryRepo = store.NewSummaryRepo()
}

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

type addRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// HandleProperties serves the collection: GET lists (optionally filtered by
// ?q=), POST registers a new property.
func HandleProperties(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		if q := r.URL.Query().Get("q"); q != "" {
			props, err := propertyRepo.Search(r.Context(), q, limit)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			respondJSON(w, props)
			return
		}
		props, err := propertyRepo.List(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, props)

	case http.MethodPost:
		var req addRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}
		// Re-registering an existing property returns it instead of
		// duplicating.
		if existing, err := propertyRepo.Find(r.Context(), req.Name, req.Address); err == nil && existing != nil {
			respondJSON(w, existing)
			return
		}
		p, err := propertyRepo.Add(r.Context(), req.Name, req.Address)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Printf("[PROPERTY] registered %s (%s)\n", p.Name, p.ID)
		respondJSON(w, p)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleProperty serves one property by ?id=.
func HandleProperty(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	p, err := propertyRepo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("property not found: %s", id), http.StatusNotFound)
		return
	}
	respondJSON(w, p)
}

type summaryRequest struct {
	PropertyID string `json:"property_id"`
	Content    string `json:"content"`
}

type summaryResponse struct {
	PropertyID string `json:"property_id"`
	Content    string `json:"content"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// HandleSummary serves the property's summary framework: GET reads the
// current summary text, POST replaces it.
func HandleSummary(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		id := r.URL.Query().Get("property_id")
		if id == "" {
			http.Error(w, "property_id required", http.StatusBadRequest)
			return
		}
		content, updatedAt, err := summaryRepo.GetSummary(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp := summaryResponse{PropertyID: id, Content: content}
		if !updatedAt.IsZero() {
			resp.UpdatedAt = updatedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
		respondJSON(w, resp)

	case http.MethodPost:
		var req summaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.PropertyID == "" {
			http.Error(w, "property_id required", http.StatusBadRequest)
			return
		}
		if err := summaryRepo.SaveSummary(r.Context(), req.PropertyID, req.Content); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Printf("[PROPERTY] summary updated for %s\n", req.PropertyID)
		respondJSON(w, summaryResponse{PropertyID: req.PropertyID, Content: req.Content})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
