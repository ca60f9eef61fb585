package rag

import (
	"strings"
	"testing"
)

func TestNewChunkerRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{name: "valid", chunkSize: 500, overlap: 50, wantErr: false},
		{name: "zero_overlap", chunkSize: 100, overlap: 0, wantErr: false},
		{name: "zero_chunk_size", chunkSize: 0, overlap: 0, wantErr: true},
		{name: "negative_chunk_size", chunkSize: -5, overlap: 0, wantErr: true},
		{name: "negative_overlap", chunkSize: 100, overlap: -1, wantErr: true},
		{name: "overlap_equals_chunk_size", chunkSize: 100, overlap: 100, wantErr: true},
		{name: "overlap_exceeds_chunk_size", chunkSize: 100, overlap: 150, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewChunker(tc.chunkSize, tc.overlap)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewChunker(%d, %d) error = %v, wantErr %v", tc.chunkSize, tc.overlap, err, tc.wantErr)
			}
		})
	}
}

func TestChunkDocumentEmptyInput(t *testing.T) {
	chunker, err := NewChunker(500, 50)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	for _, content := range []string{"", "   ", "\n\n\n", " \n \n "} {
		if got := chunker.ChunkDocument(content); len(got) != 0 {
			t.Errorf("ChunkDocument(%q) = %d chunks, want 0", content, len(got))
		}
	}
}

func TestChunkDocumentSingleChunkRoundTrip(t *testing.T) {
	chunker, err := NewChunker(100, 0)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	content := "Para one.\n\nPara two.\n\nPara three."
	chunks := chunker.ChunkDocument(content)

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	chunk := chunks[0]
	if chunk.Content != content {
		t.Errorf("chunk content = %q, want the three joined paragraphs", chunk.Content)
	}
	if chunk.Index != 0 {
		t.Errorf("chunk index = %d, want 0", chunk.Index)
	}
	if chunk.StartChar != 0 || chunk.EndChar != len(content) {
		t.Errorf("chunk span = [%d,%d), want [0,%d)", chunk.StartChar, chunk.EndChar, len(content))
	}
}

func TestChunkDocumentOverlapSeeding(t *testing.T) {
	chunker, err := NewChunker(20, 5)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	content := "alpha bravo\n\ncharlie delta\n\necho foxtrot"
	chunks := chunker.ChunkDocument(content)

	want := []Chunk{
		{Content: "alpha bravo", StartChar: 0, EndChar: 11, Index: 0},
		{Content: "bravo charlie delta", StartChar: 6, EndChar: 25, Index: 1},
		{Content: "delta echo foxtrot", StartChar: 20, EndChar: 38, Index: 2},
	}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i, w := range want {
		if chunks[i] != w {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], w)
		}
	}
}

func TestChunkDocumentMonotonicIndices(t *testing.T) {
	chunker, err := NewChunker(30, 10)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	paragraphs := []string{
		"one two three four five",
		"six seven eight nine ten",
		"eleven twelve thirteen",
		"fourteen fifteen sixteen",
		"seventeen eighteen nineteen",
	}
	chunks := chunker.ChunkDocument(strings.Join(paragraphs, "\n\n"))

	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d", i, chunk.Index)
		}
		if chunk.StartChar >= chunk.EndChar {
			t.Errorf("chunk %d span [%d,%d) is not half-open increasing", i, chunk.StartChar, chunk.EndChar)
		}
		if i > 0 && chunk.StartChar < chunks[i-1].StartChar {
			t.Errorf("chunk %d start %d before chunk %d start %d", i, chunk.StartChar, i-1, chunks[i-1].StartChar)
		}
	}
}

func TestChunkDocumentOversizedParagraphEmittedWhole(t *testing.T) {
	chunker, err := NewChunker(10, 2)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	paragraph := strings.Repeat("x", 50)
	chunks := chunker.ChunkDocument(paragraph)

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1 (oversized paragraphs are not split)", len(chunks))
	}
	if chunks[0].Content != paragraph {
		t.Errorf("oversized paragraph was altered: %q", chunks[0].Content)
	}
}

func TestChunkDocumentDropsBlankParagraphs(t *testing.T) {
	chunker, err := NewChunker(500, 0)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	chunks := chunker.ChunkDocument("first\n\n   \n\n\n\nsecond")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "first\n\nsecond" {
		t.Errorf("chunk content = %q, want blank paragraphs dropped", chunks[0].Content)
	}
}
