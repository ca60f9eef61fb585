package rag

import (
	"fmt"
	"regexp"
	"strings"
)

// Chunk is a bounded substring of a document with recorded character offsets.
// Offsets are half-open and chain chunk-to-chunk: each chunk starts at the
// previous chunk's end minus the length of the seeded overlap text, so spans
// overlap only at chunk boundaries.
type Chunk struct {
	Content   string
	StartChar int
	EndChar   int
	Index     int
}

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Chunker splits document text into overlapping, size-bounded chunks on
// blank-line paragraph boundaries. It is pure and safe for concurrent use.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker validates the chunking configuration up front so a bad overlap
// can never loop or misbehave per call.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, chunk size), got overlap=%d chunk_size=%d", overlap, chunkSize)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// ChunkDocument greedily packs paragraphs into chunks of at most the
// configured size, seeding each new chunk with the trailing overlap of the
// previous one. A single paragraph longer than the chunk size is emitted
// whole; splitting inside a paragraph is a documented non-feature.
func (c *Chunker) ChunkDocument(content string) []Chunk {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	paragraphs := paragraphSplit.Split(content, -1)

	var chunks []Chunk
	current := ""
	startChar := 0
	index := 0

	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if len(current)+len(paragraph) > c.chunkSize && current != "" {
			endChar := startChar + len(current)
			chunks = append(chunks, Chunk{
				Content:   current,
				StartChar: startChar,
				EndChar:   endChar,
				Index:     index,
			})

			seed := ""
			if len(current) > c.overlap {
				seed = current[len(current)-c.overlap:]
			}
			current = seed + " " + paragraph
			startChar = endChar - len(seed)
			index++
		} else if current != "" {
			current += "\n\n" + paragraph
		} else {
			current = paragraph
		}
	}

	if current != "" {
		chunks = append(chunks, Chunk{
			Content:   current,
			StartChar: startChar,
			EndChar:   startChar + len(current),
			Index:     index,
		})
	}
	return chunks
}
