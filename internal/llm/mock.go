package llm

import (
	"context"
	"strings"
)

// MockClient produces canned replies so the backend stays usable in
// development without a provider key.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) Generate(_ context.Context, messages []Message, _ float64, _ int) (Completion, error) {
	lastMessage := ""
	if len(messages) > 0 {
		lastMessage = messages[len(messages)-1].Content
	}

	lower := strings.ToLower(lastMessage)
	var response string
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		response = "Hello! I'm BOT GPT, your AI assistant. How can I help you today?"
	case strings.Contains(lastMessage, "?"):
		response = "That's an interesting question! Based on your query '" + preview(lastMessage, 50) +
			"...', here's my response: [Mock LLM Response] I would need more context to provide a complete answer."
	default:
		response = "Thank you for your message. I understand you're asking about: '" + preview(lastMessage, 50) +
			"...'. [Mock LLM Response] This is a simulated response for development purposes."
	}

	return Completion{
		Content:    response,
		TokensUsed: EstimateTokens(lastMessage) + EstimateTokens(response),
		Model:      "mock-model",
	}, nil
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
