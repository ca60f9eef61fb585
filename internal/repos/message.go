package repos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/types"
)

type MessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, messages []*types.Message) ([]*types.Message, error)
	ListByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]*types.Message, error)
	CountByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (int64, error)
	LastByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (*types.Message, error)
	MaxSequence(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (int, error)
	DeleteByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: baseLog.With("repo", "MessageRepo")}
}

func (mr *messageRepo) Create(ctx context.Context, tx *gorm.DB, messages []*types.Message) ([]*types.Message, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(messages) == 0 {
		return []*types.Message{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (mr *messageRepo) ListByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]*types.Message, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Message
	if err := transaction.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sequence_number").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *messageRepo) CountByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (mr *messageRepo) LastByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (*types.Message, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Message
	if err := transaction.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sequence_number DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (mr *messageRepo) MaxSequence(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var maxSeq sql.NullInt64
	if err := transaction.WithContext(ctx).
		Model(&types.Message{}).
		Where("conversation_id = ?", conversationID).
		Select("MAX(sequence_number)").
		Scan(&maxSeq).Error; err != nil {
		return 0, err
	}
	if !maxSeq.Valid {
		return 0, nil
	}
	return int(maxSeq.Int64), nil
}

func (mr *messageRepo) DeleteByConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&types.Message{}).Error
}
