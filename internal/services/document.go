package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/apierr"
	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/rag"
	"github.com/botgpt/botgpt-backend/internal/repos"
	"github.com/botgpt/botgpt-backend/internal/types"
)

// DocumentView is the API shape of a document: metadata plus the number of
// retrieval chunks, never the raw content.
type DocumentView struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Filename   string    `json:"filename"`
	FileSize   int       `json:"file_size"`
	MimeType   string    `json:"mime_type,omitempty"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type DocumentService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename, content, mimeType string) (*DocumentView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*DocumentView, error)
	Get(ctx context.Context, documentID uuid.UUID) (*DocumentView, error)
	Delete(ctx context.Context, documentID uuid.UUID) error
}

type documentService struct {
	db        *gorm.DB
	log       *logger.Logger
	chunker   *rag.Chunker
	userRepo  repos.UserRepo
	docRepo   repos.DocumentRepo
	chunkRepo repos.DocumentChunkRepo
}

func NewDocumentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	chunker *rag.Chunker,
	userRepo repos.UserRepo,
	docRepo repos.DocumentRepo,
	chunkRepo repos.DocumentChunkRepo,
) DocumentService {
	return &documentService{
		db:        db,
		log:       baseLog.With("service", "DocumentService"),
		chunker:   chunker,
		userRepo:  userRepo,
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
	}
}

func (ds *documentService) Upload(ctx context.Context, userID uuid.UUID, filename, content, mimeType string) (*DocumentView, error) {
	users, err := ds.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user not found: %s", userID))
	}

	if mimeType == "" {
		mimeType = "text/plain"
	}
	document := &types.Document{
		ID:       uuid.New(),
		UserID:   userID,
		Filename: filename,
		Content:  content,
		FileSize: len(content),
		MimeType: mimeType,
	}

	chunks := ds.chunker.ChunkDocument(content)
	rows := make([]*types.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		rows = append(rows, &types.DocumentChunk{
			ID:         uuid.New(),
			DocumentID: document.ID,
			ChunkIndex: chunk.Index,
			Content:    chunk.Content,
			StartChar:  chunk.StartChar,
			EndChar:    chunk.EndChar,
		})
	}

	err = ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ds.docRepo.Create(ctx, tx, []*types.Document{document}); err != nil {
			return err
		}
		return ds.chunkRepo.ReplaceForDocument(ctx, tx, document.ID, rows)
	})
	if err != nil {
		return nil, err
	}

	ds.log.Info("Uploaded document", "document_id", document.ID, "chunks", len(rows))
	return ds.view(document, int64(len(rows))), nil
}

func (ds *documentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*DocumentView, error) {
	documents, err := ds.docRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(documents))
	for _, doc := range documents {
		ids = append(ids, doc.ID)
	}
	counts, err := ds.chunkRepo.CountByDocumentIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*DocumentView, 0, len(documents))
	for _, doc := range documents {
		views = append(views, ds.view(doc, counts[doc.ID]))
	}
	return views, nil
}

func (ds *documentService) Get(ctx context.Context, documentID uuid.UUID) (*DocumentView, error) {
	documents, err := ds.docRepo.GetByIDs(ctx, nil, []uuid.UUID{documentID})
	if err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, apierr.NotFound("document_not_found", fmt.Errorf("document not found: %s", documentID))
	}
	counts, err := ds.chunkRepo.CountByDocumentIDs(ctx, nil, []uuid.UUID{documentID})
	if err != nil {
		return nil, err
	}
	return ds.view(documents[0], counts[documentID]), nil
}

func (ds *documentService) Delete(ctx context.Context, documentID uuid.UUID) error {
	documents, err := ds.docRepo.GetByIDs(ctx, nil, []uuid.UUID{documentID})
	if err != nil {
		return err
	}
	if len(documents) == 0 {
		return apierr.NotFound("document_not_found", fmt.Errorf("document not found: %s", documentID))
	}
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ds.chunkRepo.DeleteByDocument(ctx, tx, documentID); err != nil {
			return err
		}
		return ds.docRepo.Delete(ctx, tx, documentID)
	})
}

func (ds *documentService) view(document *types.Document, chunkCount int64) *DocumentView {
	return &DocumentView{
		ID:         document.ID,
		UserID:     document.UserID,
		Filename:   document.Filename,
		FileSize:   document.FileSize,
		MimeType:   document.MimeType,
		ChunkCount: int(chunkCount),
		CreatedAt:  document.CreatedAt,
	}
}
