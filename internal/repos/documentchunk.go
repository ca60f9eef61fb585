package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/types"
)

type DocumentChunkRepo interface {
	// ReplaceForDocument discards any prior chunks for the document before
	// inserting the new set. Offsets are only valid against one frozen text,
	// so chunk rows are always replaced wholesale, never patched.
	ReplaceForDocument(ctx context.Context, tx *gorm.DB, documentID uuid.UUID, chunks []*types.DocumentChunk) error
	ListByDocumentIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) ([]*types.DocumentChunk, error)
	CountByDocumentIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteByDocument(ctx context.Context, tx *gorm.DB, documentID uuid.UUID) error
}

type documentChunkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentChunkRepo(db *gorm.DB, baseLog *logger.Logger) DocumentChunkRepo {
	return &documentChunkRepo{db: db, log: baseLog.With("repo", "DocumentChunkRepo")}
}

func (cr *documentChunkRepo) ReplaceForDocument(ctx context.Context, tx *gorm.DB, documentID uuid.UUID, chunks []*types.DocumentChunk) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).
		Where("document_id = ?", documentID).
		Delete(&types.DocumentChunk{}).Error; err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&chunks).Error
}

func (cr *documentChunkRepo) ListByDocumentIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) ([]*types.DocumentChunk, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.DocumentChunk
	if len(documentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("document_id IN ?", documentIDs).
		Order("document_id, chunk_index").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *documentChunkRepo) CountByDocumentIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	counts := make(map[uuid.UUID]int64, len(documentIDs))
	if len(documentIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		DocumentID uuid.UUID
		N          int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.DocumentChunk{}).
		Select("document_id, COUNT(*) AS n").
		Where("document_id IN ?", documentIDs).
		Group("document_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.DocumentID] = row.N
	}
	return counts, nil
}

func (cr *documentChunkRepo) DeleteByDocument(ctx context.Context, tx *gorm.DB, documentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("document_id = ?", documentID).
		Delete(&types.DocumentChunk{}).Error
}
