package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/types"
)

type DocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, documents []*types.Document) ([]*types.Document, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) ([]*types.Document, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Document, error)
	CountForUser(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, documentID uuid.UUID) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (dr *documentRepo) Create(ctx context.Context, tx *gorm.DB, documents []*types.Document) ([]*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(documents) == 0 {
		return []*types.Document{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (dr *documentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) ([]*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Document
	if len(documentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", documentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Document
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentRepo) CountForUser(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(documentIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Document{}).
		Where("id IN ? AND user_id = ?", documentIDs, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *documentRepo) Delete(ctx context.Context, tx *gorm.DB, documentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", documentID).
		Delete(&types.Document{}).Error
}
