package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Filename string    `gorm:"not null;column:filename" json:"filename"`
	Content  string    `gorm:"type:text;not null;column:content" json:"-"`
	FileSize int       `gorm:"not null;column:file_size" json:"file_size"`
	MimeType string    `gorm:"column:mime_type" json:"mime_type,omitempty"`

	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	Chunks []*DocumentChunk `gorm:"foreignKey:DocumentID" json:"chunks,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Document) TableName() string { return "document" }
