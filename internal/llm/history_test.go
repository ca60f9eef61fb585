package llm

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "abc", want: 0},
		{text: "abcd", want: 1},
		{text: strings.Repeat("x", 100), want: 25},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestTruncateHistoryKeepsSystemAndNewest(t *testing.T) {
	fortyChars := strings.Repeat("m", 40) // 10 tokens each
	messages := []Message{
		{Role: "system", Content: strings.Repeat("s", 16)}, // 4 tokens
		{Role: "user", Content: fortyChars},
		{Role: "assistant", Content: fortyChars},
		{Role: "user", Content: "final question please answer this one now ok"}, // 44 chars, 11 tokens
	}

	// Budget fits the system message plus exactly the newest user turn.
	got := TruncateHistory(messages, 15, EstimateTokens)

	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Role != "system" {
		t.Errorf("first retained message role = %q, want system", got[0].Role)
	}
	if got[1].Content != messages[3].Content {
		t.Errorf("retained message = %q, want the newest user turn", got[1].Content)
	}
}

func TestTruncateHistoryEmptyInput(t *testing.T) {
	if got := TruncateHistory(nil, 100, nil); got != nil {
		t.Fatalf("got %d messages, want nil", len(got))
	}
}

func TestTruncateHistoryZeroBudget(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "keep me regardless"},
		{Role: "user", Content: "drop me"},
	}
	got := TruncateHistory(messages, 0, EstimateTokens)

	if len(got) != 1 || got[0].Role != "system" {
		t.Fatalf("got %+v, want only the system message", got)
	}
}

func TestTruncateHistorySystemOverBudget(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: strings.Repeat("s", 400)}, // 100 tokens
		{Role: "user", Content: "anything"},
	}
	got := TruncateHistory(messages, 50, EstimateTokens)

	if len(got) != 1 || got[0].Role != "system" {
		t.Fatalf("got %+v, want only the system message even over budget", got)
	}
}

func TestTruncateHistoryAllFitInOrder(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "persona"},
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}
	got := TruncateHistory(messages, 10000, nil)

	if len(got) != len(messages) {
		t.Fatalf("got %d messages, want all %d", len(got), len(messages))
	}
	for i, m := range messages {
		if got[i].Content != m.Content {
			t.Errorf("message %d = %q, want %q (chronological order)", i, got[i].Content, m.Content)
		}
	}
}

func TestTruncateHistoryCustomEstimator(t *testing.T) {
	perMessage := func(string) int { return 10 }
	messages := []Message{
		{Role: "user", Content: "one"},
		{Role: "user", Content: "two"},
		{Role: "user", Content: "three"},
	}
	got := TruncateHistory(messages, 20, perMessage)

	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Content != "two" || got[1].Content != "three" {
		t.Errorf("retained %q then %q, want the two newest in order", got[0].Content, got[1].Content)
	}
}
