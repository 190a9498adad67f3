package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ChatSession holds a stateful multi-turn Gemini chat for the assistant
// UI. The session keeps conversational history on the SDK side; engine
// results are injected into each turn as tool output text.
type ChatSession struct {
	client  *genai.Client
	session *genai.ChatSession
}

// NewChatSession opens a chat with the assistant system prompt pinned as
// the model's system instruction.
func NewChatSession(ctx context.Context, modelName, systemPrompt string) (*ChatSession, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	return &ChatSession{client: client, session: model.StartChat()}, nil
}

// Send posts one user turn (plus optional tool context) and returns the
// model's reply text.
func (c *ChatSession) Send(ctx context.Context, userText, toolContext string) (string, error) {
	input := userText
	if toolContext != "" {
		input = fmt.Sprintf("%s\n\n[resultado de herramientas]\n%s", userText, toolContext)
	}

	resp, err := c.session.SendMessage(ctx, genai.Text(input))
	if err != nil {
		return "", fmt.Errorf("chat turn failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying client.
func (c *ChatSession) Close() error {
	return c.client.Close()
}
