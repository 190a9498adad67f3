package prompt

// Convenience functions for common prompt operations

// GetAssistantPrompt returns an assistant prompt's system prompt by name
func GetAssistantPrompt(name string) (string, error) {
	id := "assistant." + name
	return Get().GetSystemPrompt(id)
}

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	AssistantSystem    string
	AssistantIntent    string
	AssistantNarration string
}{
	AssistantSystem:    "assistant.system",
	AssistantIntent:    "assistant.intent",
	AssistantNarration: "assistant.narration",
}
