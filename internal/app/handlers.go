package app

import (
	"strings"

	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/handlers"
	"github.com/botgpt/botgpt-backend/internal/server"
	"github.com/botgpt/botgpt-backend/internal/utils"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Users         *handlers.UserHandler
	Documents     *handlers.DocumentHandler
	Conversations *handlers.ConversationHandler
}

func wireHandlers(db *gorm.DB, cfg Config, serviceset Services) Handlers {
	return Handlers{
		Health:        handlers.NewHealthHandler(db, cfg.App.Name, cfg.App.Version, serviceset.LLM.Provider()),
		Users:         handlers.NewUserHandler(serviceset.Users),
		Documents:     handlers.NewDocumentHandler(serviceset.Documents),
		Conversations: handlers.NewConversationHandler(serviceset.Conversations),
	}
}

func wireRouter(cfg Config, handlerset Handlers) *server.RouterConfig {
	var allowOrigins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", nil); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowOrigins = append(allowOrigins, origin)
			}
		}
	}

	return &server.RouterConfig{
		ServiceName:         cfg.App.Name,
		AllowOrigins:        allowOrigins,
		HealthHandler:       handlerset.Health,
		UserHandler:         handlerset.Users,
		DocumentHandler:     handlerset.Documents,
		ConversationHandler: handlerset.Conversations,
	}
}
