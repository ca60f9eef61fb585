package llm

import (
	"strings"
	"testing"
)

func TestSystemPrompt(t *testing.T) {
	if got := SystemPrompt("open_chat", ""); got != openChatPrompt {
		t.Errorf("open_chat prompt = %q", got)
	}

	grounded := SystemPrompt("grounded_rag", "[Context 1]\nsome facts")
	if !strings.Contains(grounded, "[Context 1]\nsome facts") {
		t.Errorf("grounded prompt does not embed the context: %q", grounded)
	}
	if !strings.Contains(grounded, "grounded in specific documents") {
		t.Errorf("grounded prompt missing persona text: %q", grounded)
	}

	// Grounded mode with nothing retrieved falls back to the open persona.
	if got := SystemPrompt("grounded_rag", ""); got != openChatPrompt {
		t.Errorf("grounded prompt without context = %q, want open persona", got)
	}
}
