package llm

import "context"

// Message is one prompt turn. Roles match types.MessageRole* values.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is a generated reply plus the provider-reported token usage.
type Completion struct {
	Content    string
	TokensUsed int
	Model      string
}

// Client is the transport-level LLM capability. Implementations must not
// retry internally; failure handling belongs to the orchestration layer.
type Client interface {
	Generate(ctx context.Context, messages []Message, temperature float64, maxTokens int) (Completion, error)
}
