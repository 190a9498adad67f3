package config

import (
	"encoding/json"
	"fmt"
	"net/http"

	"rama_assistant/pkg/core/agent"
)

var agentMgr *agent.Manager

func InitHandler(mgr *agent.Manager) {
	agentMgr = mgr
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

type configResponse struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

type switchRequest struct {
	Provider string `json:"provider"`
}

// HandleConfig reports the active model provider and accepts a switch:
// GET returns the current selection, POST {"provider": "..."} changes the
// global provider for every agent without an explicit override.
func HandleConfig(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(configResponse{
			ActiveProvider: agentMgr.GetActiveProvider(),
			Available:      []string{"gemini", "deepseek"},
		})

	case http.MethodPost:
		var req switchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := agentMgr.SetGlobalProvider(req.Provider); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Printf("[CONFIG] provider switched to %s\n", req.Provider)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(configResponse{
			ActiveProvider: agentMgr.GetActiveProvider(),
			Available:      []string{"gemini", "deepseek"},
		})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
