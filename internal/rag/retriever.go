package rag

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/botgpt/botgpt-backend/internal/types"
)

var wordPattern = regexp.MustCompile(`\w+`)

// stopWords are stripped from the query keyword set only; candidate text keeps
// them so substring matches still count against real keywords.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"is": {}, "are": {}, "was": {}, "were": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

type scoredChunk struct {
	score float64
	chunk *types.DocumentChunk
}

// Search scores chunks against the query by keyword overlap plus a half-point
// per query keyword appearing as a substring of the chunk text. Chunks that
// score zero are excluded entirely. Ties keep input order.
func Search(query string, chunks []*types.DocumentChunk, topK int) []*types.DocumentChunk {
	if len(chunks) == 0 || topK <= 0 {
		return nil
	}

	queryKeywords := tokenSet(strings.ToLower(query))
	for word := range stopWords {
		delete(queryKeywords, word)
	}
	if len(queryKeywords) == 0 {
		return nil
	}

	scored := make([]scoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		text := strings.ToLower(chunk.Content)
		chunkKeywords := tokenSet(text)

		overlap := 0
		phraseMatches := 0
		for keyword := range queryKeywords {
			if _, ok := chunkKeywords[keyword]; ok {
				overlap++
			}
			if strings.Contains(text, keyword) {
				phraseMatches++
			}
		}

		score := float64(overlap) + 0.5*float64(phraseMatches)
		if score > 0 {
			scored = append(scored, scoredChunk{score: score, chunk: chunk})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	out := make([]*types.DocumentChunk, 0, len(scored))
	for _, sc := range scored {
		out = append(out, sc.chunk)
	}
	return out
}

// BuildContext assembles ranked chunks into a single prompt-ready context
// string of numbered blocks separated by blank lines.
func BuildContext(chunks []*types.DocumentChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("[Context %d]\n%s", i+1, chunk.Content))
	}
	return strings.Join(parts, "\n\n")
}

func tokenSet(text string) map[string]struct{} {
	words := wordPattern.FindAllString(text, -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
