package llm

// TruncateHistory fits messages into maxTokens. System messages are always
// retained in their original order; the remaining budget is filled with the
// most recent non-system messages, walking backward and stopping at the first
// message that would exceed it. The result is systems first, then the retained
// messages in chronological order. Inputs are never mutated.
func TruncateHistory(messages []Message, maxTokens int, estimateTokens func(string) int) []Message {
	if len(messages) == 0 {
		return nil
	}
	if estimateTokens == nil {
		estimateTokens = EstimateTokens
	}

	var system, rest []Message
	for _, m := range messages {
		if m.Role == "system" {
			system = append(system, m)
		} else {
			rest = append(rest, m)
		}
	}

	systemTokens := 0
	for _, m := range system {
		systemTokens += estimateTokens(m.Content)
	}
	available := maxTokens - systemTokens
	if available < 0 {
		available = 0
	}

	kept := 0
	currentTokens := 0
	for i := len(rest) - 1; i >= 0; i-- {
		messageTokens := estimateTokens(rest[i].Content)
		if currentTokens+messageTokens > available {
			break
		}
		currentTokens += messageTokens
		kept++
	}

	result := make([]Message, 0, len(system)+kept)
	result = append(result, system...)
	result = append(result, rest[len(rest)-kept:]...)
	return result
}
