package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one turn of a conversation. Rows are append-only: truncation for
// the LLM context never touches stored messages.
type Message struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID     `gorm:"type:uuid;not null;index;index:idx_message_conversation_seq,unique,priority:1" json:"conversation_id"`
	Conversation   *Conversation `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConversationID;references:ID" json:"conversation,omitempty"`

	Role           string `gorm:"not null;column:role;index" json:"role"`
	Content        string `gorm:"type:text;not null;column:content" json:"content"`
	Tokens         int    `gorm:"not null;column:tokens" json:"tokens"`
	SequenceNumber int    `gorm:"not null;column:sequence_number;index:idx_message_conversation_seq,unique,priority:2" json:"sequence_number"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Message) TableName() string { return "message" }
