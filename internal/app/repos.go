package app

import (
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/repos"
)

type Repos struct {
	Users          repos.UserRepo
	Documents      repos.DocumentRepo
	DocumentChunks repos.DocumentChunkRepo
	Conversations  repos.ConversationRepo
	Messages       repos.MessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Users:          repos.NewUserRepo(db, log),
		Documents:      repos.NewDocumentRepo(db, log),
		DocumentChunks: repos.NewDocumentChunkRepo(db, log),
		Conversations:  repos.NewConversationRepo(db, log),
		Messages:       repos.NewMessageRepo(db, log),
	}
}
