package llm

import "fmt"

const openChatPrompt = "You are BOT GPT, a helpful and knowledgeable AI assistant. Provide clear, accurate, and helpful responses to the user's questions."

const groundedRAGPromptFormat = `You are BOT GPT, a helpful AI assistant. You are having a conversation that is grounded in specific documents.

Use the following context from the documents to answer the user's questions. If the answer cannot be found in the context, say so clearly.

Context:
%s

Answer the user's questions based on this context.`

// SystemPrompt returns the persona prompt for a conversation mode, embedding
// the retrieved document context in grounded mode when there is any.
func SystemPrompt(mode string, ragContext string) string {
	if mode == "grounded_rag" && ragContext != "" {
		return fmt.Sprintf(groundedRAGPromptFormat, ragContext)
	}
	return openChatPrompt
}
