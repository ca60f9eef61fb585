package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/botgpt/botgpt-backend/internal/llm"
	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/rag"
	"github.com/botgpt/botgpt-backend/internal/repos"
	"github.com/botgpt/botgpt-backend/internal/types"
)

// testEnv wires the full service stack against a throwaway in-memory sqlite
// database with the mock LLM provider.
type testEnv struct {
	db            *gorm.DB
	users         UserService
	documents     DocumentService
	conversations ConversationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	dsn := fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Document{},
		&types.DocumentChunk{},
		&types.Conversation{},
		&types.Message{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	chunker, err := rag.NewChunker(500, 50)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	llmService, err := llm.NewService(llm.Config{Provider: "mock"}, log)
	if err != nil {
		t.Fatalf("llm.NewService: %v", err)
	}

	userRepo := repos.NewUserRepo(db, log)
	docRepo := repos.NewDocumentRepo(db, log)
	chunkRepo := repos.NewDocumentChunkRepo(db, log)
	convRepo := repos.NewConversationRepo(db, log)
	msgRepo := repos.NewMessageRepo(db, log)

	return &testEnv{
		db:        db,
		users:     NewUserService(db, log, userRepo),
		documents: NewDocumentService(db, log, chunker, userRepo, docRepo, chunkRepo),
		conversations: NewConversationService(
			db, log, llmService, 3,
			userRepo, docRepo, chunkRepo, convRepo, msgRepo,
		),
	}
}

func (env *testEnv) createUser(t *testing.T, username string) *types.User {
	t.Helper()
	user, err := env.users.Create(context.Background(), username, username+"@example.com")
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return user
}
