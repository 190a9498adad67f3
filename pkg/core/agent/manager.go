package agent

import (
	"context"
	"fmt"

	"rama_assistant/pkg/core/llm"
)

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

func (m *Manager) GetProvider(agentType string) llm.Provider {
	// 1. Check for agent-specific override
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}

	// 2. Use global active provider
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}

	// 3. Fallback
	return m.providers["gemini"]
}

// ExecutePrompt handles instruction adaptation before sending to the model
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)

	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Model != "" {
		if options == nil {
			options = map[string]interface{}{}
		}
		if _, set := options["model"]; !set {
			options["model"] = agentConfig.Model
		}
	}

	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)

	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, options)
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	fmt.Printf("Global provider set to: %s\n", newProvider)
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}
