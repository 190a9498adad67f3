// Package llm wraps the model providers behind one interface so the
// assistant can switch between Gemini and OpenAI-compatible backends from
// config without touching call sites.
package llm

import (
	"context"
)

// Provider is the interface every model backend implements.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions reshapes raw instructions into the model's
	// preferred prompting style.
	AdaptInstructions(rawInstructions string) string
}
