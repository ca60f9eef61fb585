package llm

// EstimateTokens is the fixed chars/4 approximation used everywhere a token
// count is needed without a real tokenizer. Callers must not expect exactness.
func EstimateTokens(text string) int {
	return len(text) / 4
}
