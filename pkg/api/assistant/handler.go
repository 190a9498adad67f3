package assistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"rama_assistant/pkg/core/agent"
	core "rama_assistant/pkg/core/assistant"
	"rama_assistant/pkg/core/llm"
	"rama_assistant/pkg/core/prompt"
	"rama_assistant/pkg/core/property"
	"rama_assistant/pkg/core/store"
)

var asst *core.Assistant
var numbersRepo *store.NumbersRepo
var calcRepo *store.CalcRepo

// One chat session per property, created lazily on the first /chat turn.
var chatMu sync.Mutex
var chatSessions = map[string]*llm.ChatSession{}

func InitHandler(mgr *agent.Manager) {
	asst = core.New(mgr)
	numbersRepo = store.NewNumbersRepo()
	calcRepo = store.NewCalcRepo()
}

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

type turnRequest struct {
	PropertyID string `json:"property_id"`
	Text       string `json:"text"`
}

// HandleTurn routes one user message: intent classification, engine
// execution against the property's stored baseline, dictated-value writes,
// then narration.
func HandleTurn(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PropertyID == "" || req.Text == "" {
		http.Error(w, "property_id and text required", http.StatusBadRequest)
		return
	}

	items, err := numbersRepo.GetLineItems(r.Context(), req.PropertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	baseline := property.InputModelFromLineItems(items)

	intent := asst.Route(r.Context(), req.Text)
	fmt.Printf("[ASSISTANT] %q -> %s\n", req.Text, intent.Kind)

	result, err := asst.Execute(intent, baseline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Dictated values hit the table immediately, then the metrics follow.
	if intent.Kind == core.IntentSetNumber {
		if err := numbersRepo.SetAmount(r.Context(), req.PropertyID, string(result.Intent.Field), result.Intent.Value); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if result.Calc != nil && calcRepo != nil {
		if err := calcRepo.SaveOutputs(r.Context(), req.PropertyID, *result.Calc); err != nil {
			fmt.Printf("[ASSISTANT] outputs save failed: %v\n", err)
		}
		if err := calcRepo.AppendLog(r.Context(), req.PropertyID, *result.Calc); err != nil {
			fmt.Printf("[ASSISTANT] calc log append failed: %v\n", err)
		}
	}

	asst.Narrate(r.Context(), req.Text, &result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleChat is the multi-turn variant: the engine runs exactly as in
// HandleTurn, but the reply comes from a per-property chat session that
// keeps conversational history, so follow-ups ("¿y con un 15%?") read
// naturally.
func HandleChat(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PropertyID == "" || req.Text == "" {
		http.Error(w, "property_id and text required", http.StatusBadRequest)
		return
	}

	items, err := numbersRepo.GetLineItems(r.Context(), req.PropertyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	baseline := property.InputModelFromLineItems(items)

	intent := asst.Route(r.Context(), req.Text)
	result, err := asst.Execute(intent, baseline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if intent.Kind == core.IntentSetNumber {
		if err := numbersRepo.SetAmount(r.Context(), req.PropertyID, string(result.Intent.Field), result.Intent.Value); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	chatMu.Lock()
	session, ok := chatSessions[req.PropertyID]
	if !ok {
		systemPrompt, _ := prompt.Get().GetSystemPrompt(prompt.PromptIDs.AssistantSystem)
		session, err = llm.NewChatSession(r.Context(), "", systemPrompt)
		if err == nil {
			chatSessions[req.PropertyID] = session
		}
	}
	chatMu.Unlock()

	result.Narration = result.Summary
	if session != nil {
		if reply, sendErr := session.Send(r.Context(), req.Text, result.Summary); sendErr == nil && reply != "" {
			result.Narration = reply
		} else if sendErr != nil {
			fmt.Printf("[ASSISTANT] chat turn failed, using summary: %v\n", sendErr)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
