package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/types"
)

type ConversationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, conversations []*types.Conversation) ([]*types.Conversation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) ([]*types.Conversation, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.Conversation, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) error
	Delete(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error
	LinkDocuments(ctx context.Context, tx *gorm.DB, conversation *types.Conversation, documents []*types.Document) error
	ListDocumentIDs(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]uuid.UUID, error)
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return &conversationRepo{db: db, log: baseLog.With("repo", "ConversationRepo")}
}

func (cr *conversationRepo) Create(ctx context.Context, tx *gorm.DB, conversations []*types.Conversation) ([]*types.Conversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(conversations) == 0 {
		return []*types.Conversation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

func (cr *conversationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) ([]*types.Conversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Conversation
	if len(conversationIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", conversationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *conversationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.Conversation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Conversation
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *conversationRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Conversation{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (cr *conversationRepo) Save(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(conversation).Error
}

func (cr *conversationRepo) Delete(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	conversation := &types.Conversation{ID: conversationID}
	if err := transaction.WithContext(ctx).
		Model(conversation).
		Association("Documents").
		Clear(); err != nil {
		return err
	}
	return transaction.WithContext(ctx).Delete(conversation).Error
}

func (cr *conversationRepo) LinkDocuments(ctx context.Context, tx *gorm.DB, conversation *types.Conversation, documents []*types.Document) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(documents) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(conversation).
		Association("Documents").
		Append(documents)
}

func (cr *conversationRepo) ListDocumentIDs(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var documents []*types.Document
	if err := transaction.WithContext(ctx).
		Model(&types.Conversation{ID: conversationID}).
		Association("Documents").
		Find(&documents); err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(documents))
	for _, doc := range documents {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
