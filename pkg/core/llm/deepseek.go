package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DeepSeekProvider implements Provider on the OpenAI-compatible
// DeepSeek chat completions endpoint. Used as the fallback provider
// when Gemini is unavailable or disabled in config.
type DeepSeekProvider struct {
	Model string
}

var _ Provider = (*DeepSeekProvider)(nil)

type dsMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type dsRequest struct {
	Model          string      `json:"model"`
	Messages       []dsMessage `json:"messages"`
	Temperature    float64     `json:"temperature"`
	ResponseFormat *dsFormat   `json:"response_format,omitempty"`
}

type dsFormat struct {
	Type string `json:"type"`
}

type dsResponse struct {
	Choices []struct {
		Message dsMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *DeepSeekProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("DEEPSEEK_API_KEY environment variable not set")
	}

	model := p.Model
	if model == "" {
		model = "deepseek-chat"
	}
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	reqBody := dsRequest{
		Model:       model,
		Temperature: 0.1,
	}
	if systemPrompt != "" {
		reqBody.Messages = append(reqBody.Messages, dsMessage{Role: "system", Content: systemPrompt})
	}
	reqBody.Messages = append(reqBody.Messages, dsMessage{Role: "user", Content: prompt})

	if val, ok := options["response_format"].(map[string]interface{}); ok && val["type"] == "json_object" {
		reqBody.ResponseFormat = &dsFormat{Type: "json_object"}
	} else if strings.Contains(strings.ToLower(systemPrompt), "json") {
		reqBody.ResponseFormat = &dsFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.deepseek.com/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed dsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("deepseek API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices (status %d)", resp.StatusCode)
	}
	return parsed.Choices[0].Message.Content, nil
}

func (p *DeepSeekProvider) AdaptInstructions(raw string) string {
	return raw
}
