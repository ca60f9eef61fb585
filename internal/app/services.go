package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/llm"
	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/rag"
	"github.com/botgpt/botgpt-backend/internal/services"
)

type Services struct {
	LLM           *llm.Service
	Users         services.UserService
	Documents     services.DocumentService
	Conversations services.ConversationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	chunker, err := rag.NewChunker(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	if err != nil {
		return Services{}, fmt.Errorf("invalid chunking configuration: %w", err)
	}

	llmService, err := llm.NewService(llm.Config{
		Provider:          cfg.LLM.Provider,
		APIKey:            LLMAPIKey(log),
		BaseURL:           cfg.LLM.BaseURL,
		Model:             cfg.LLM.Model,
		MaxContextTokens:  cfg.LLM.MaxContextTokens,
		MaxResponseTokens: cfg.LLM.MaxResponseTokens,
		Temperature:       cfg.LLM.Temperature,
	}, log)
	if err != nil {
		return Services{}, fmt.Errorf("init llm service: %w", err)
	}

	return Services{
		LLM:       llmService,
		Users:     services.NewUserService(db, log, reposet.Users),
		Documents: services.NewDocumentService(db, log, chunker, reposet.Users, reposet.Documents, reposet.DocumentChunks),
		Conversations: services.NewConversationService(
			db,
			log,
			llmService,
			cfg.RAG.TopK,
			reposet.Users,
			reposet.Documents,
			reposet.DocumentChunks,
			reposet.Conversations,
			reposet.Messages,
		),
	}, nil
}
