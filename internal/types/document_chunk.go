package types

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one retrieval unit of a document. Offsets are half-open
// character positions that chain across chunks of the same processing pass;
// they are only valid against the document content they were produced from.
type DocumentChunk struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index:idx_document_chunk_doc_idx,unique,priority:1" json:"document_id"`
	Document   *Document `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"document,omitempty"`

	ChunkIndex int    `gorm:"not null;column:chunk_index;index:idx_document_chunk_doc_idx,unique,priority:2" json:"chunk_index"`
	Content    string `gorm:"type:text;not null;column:content" json:"content"`
	StartChar  int    `gorm:"not null;column:start_char" json:"start_char"`
	EndChar    int    `gorm:"not null;column:end_char" json:"end_char"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (DocumentChunk) TableName() string { return "document_chunk" }
