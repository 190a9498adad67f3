package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	apiAssistant "rama_assistant/pkg/api/assistant"
	apiConfig "rama_assistant/pkg/api/config"
	apiDocs "rama_assistant/pkg/api/docs"
	apiExport "rama_assistant/pkg/api/export"
	apiNumbers "rama_assistant/pkg/api/numbers"
	apiProperty "rama_assistant/pkg/api/property"
	"rama_assistant/pkg/core/agent"
	"rama_assistant/pkg/core/prompt"
	"rama_assistant/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var agentMgr *agent.Manager

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Assistant narration will fall back to plain summaries")
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr = agent.NewManager(agentCfg)
	fmt.Printf("[CONFIG] Active provider: %s\n", agentMgr.GetActiveProvider())

	// Database (Postgres via DATABASE_URL)
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.EnsureCoreSchema(context.Background()); err != nil {
		fmt.Printf("[FATAL] Schema init failed: %v\n", err)
		os.Exit(1)
	}

	// Health and config endpoints
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ok")
	})
	apiConfig.InitHandler(agentMgr)
	http.HandleFunc("/api/config", apiConfig.HandleConfig)

	// Property endpoints
	apiProperty.InitHandler()
	http.HandleFunc("/api/properties", apiProperty.HandleProperties)
	http.HandleFunc("/api/property", apiProperty.HandleProperty)
	http.HandleFunc("/api/property/summary", apiProperty.HandleSummary)

	// Numbers framework endpoints
	apiNumbers.InitHandler()
	http.HandleFunc("/api/numbers/get", apiNumbers.HandleGet)
	http.HandleFunc("/api/numbers/set", apiNumbers.HandleSet)
	http.HandleFunc("/api/numbers/calc", apiNumbers.HandleCalc)
	http.HandleFunc("/api/numbers/whatif", apiNumbers.HandleWhatIf)
	http.HandleFunc("/api/numbers/breakeven", apiNumbers.HandleBreakEven)
	http.HandleFunc("/api/numbers/sensitivity", apiNumbers.HandleSensitivity)
	http.HandleFunc("/api/numbers/series", apiNumbers.HandleSeries)

	// Assistant endpoint
	apiAssistant.InitHandler(agentMgr)
	http.HandleFunc("/api/assistant/turn", apiAssistant.HandleTurn)
	http.HandleFunc("/api/assistant/chat", apiAssistant.HandleChat)

	// Document endpoints
	http.HandleFunc("/api/docs/propose", apiDocs.HandlePropose)
	http.HandleFunc("/api/docs/snippets", apiDocs.HandleSnippets)

	// Export endpoints
	apiExport.InitHandler()
	http.HandleFunc("/api/export/report", apiExport.HandleReport)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/health")
	fmt.Println("  - GET/POST /api/config")
	fmt.Println("  - GET/POST /api/properties")
	fmt.Println("  - GET  /api/property")
	fmt.Println("  - GET/POST /api/property/summary")
	fmt.Println("  - GET  /api/numbers/get")
	fmt.Println("  - POST /api/numbers/set")
	fmt.Println("  - POST /api/numbers/calc")
	fmt.Println("  - POST /api/numbers/whatif")
	fmt.Println("  - POST /api/numbers/breakeven")
	fmt.Println("  - POST /api/numbers/sensitivity")
	fmt.Println("  - GET  /api/numbers/series")
	fmt.Println("  - POST /api/assistant/turn")
	fmt.Println("  - POST /api/assistant/chat")
	fmt.Println("  - POST /api/docs/propose")
	fmt.Println("  - POST /api/docs/snippets")
	fmt.Println("  - GET  /api/export/report")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
