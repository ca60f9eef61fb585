package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ConversationModeOpenChat    = "open_chat"
	ConversationModeGroundedRAG = "grounded_rag"
)

type Conversation struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Title       string `gorm:"column:title" json:"title,omitempty"`
	Mode        string `gorm:"not null;column:mode;index" json:"mode"`
	IsActive    bool   `gorm:"not null;column:is_active" json:"is_active"`
	TotalTokens int    `gorm:"not null;column:total_tokens" json:"total_tokens"`

	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	Messages  []*Message  `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
	Documents []*Document `gorm:"many2many:conversation_document;" json:"documents,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (Conversation) TableName() string { return "conversation" }
