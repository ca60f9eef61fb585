package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/botgpt/botgpt-backend/internal/handlers"
	"github.com/botgpt/botgpt-backend/internal/llm"
	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/rag"
	"github.com/botgpt/botgpt-backend/internal/repos"
	"github.com/botgpt/botgpt-backend/internal/services"
	"github.com/botgpt/botgpt-backend/internal/types"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	dsn := fmt.Sprintf("file:router-%s?mode=memory&cache=shared", uuid.NewString())
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

	userService := services.NewUserService(db, log, userRepo)
	documentService := services.NewDocumentService(db, log, chunker, userRepo, docRepo, chunkRepo)
	conversationService := services.NewConversationService(
		db, log, llmService, 3,
		userRepo, docRepo, chunkRepo, convRepo, msgRepo,
	)

	return NewRouter(RouterConfig{
		ServiceName:         "botgpt-test",
		HealthHandler:       handlers.NewHealthHandler(db, "botgpt", "test", llmService.Provider()),
		UserHandler:         handlers.NewUserHandler(userService),
		DocumentHandler:     handlers.NewDocumentHandler(documentService),
		ConversationHandler: handlers.NewConversationHandler(conversationService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestRouterPing(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/operations/ping", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["message"] != "pong" {
		t.Errorf("body = %v", body)
	}
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["status"] != "UP" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["database"] != "up" {
		t.Errorf("database field = %v", body["database"])
	}
	if body["llm_provider"] != "mock" {
		t.Errorf("llm_provider field = %v", body["llm_provider"])
	}
}

func TestRouterUserEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", `{"username": "alice", "email": "alice@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created types.User
	decodeBody(t, rec, &created)

	rec = doJSON(t, router, http.MethodPost, "/users", `{"username": "alice"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate username status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/users", `{"username": "ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short username status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/users/"+created.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/users/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad uuid status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/users/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/users", "")
	if rec.Code != http.StatusOK {
		t.Errorf("list status = %d", rec.Code)
	}
}

func TestRouterDocumentEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", `{"username": "alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d", rec.Code)
	}
	var user types.User
	decodeBody(t, rec, &user)

	payload := fmt.Sprintf(`{"user_id": %q, "filename": "notes.txt", "content": "First paragraph.\n\nSecond paragraph."}`, user.ID)
	rec = doJSON(t, router, http.MethodPost, "/documents", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}
	var doc services.DocumentView
	decodeBody(t, rec, &doc)
	if doc.ChunkCount != 1 {
		t.Errorf("chunk count = %d, want 1", doc.ChunkCount)
	}

	rec = doJSON(t, router, http.MethodPost, "/documents", fmt.Sprintf(`{"user_id": %q, "filename": "empty.txt"}`, user.ID))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing content status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/documents?user_id="+user.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Errorf("list status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/documents", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("list without user_id status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/documents/"+doc.ID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/documents/"+doc.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestRouterConversationEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", `{"username": "alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d", rec.Code)
	}
	var user types.User
	decodeBody(t, rec, &user)

	payload := fmt.Sprintf(`{"user_id": %q, "first_message": "hello there"}`, user.ID)
	rec = doJSON(t, router, http.MethodPost, "/conversations", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var reply services.ConversationReply
	decodeBody(t, rec, &reply)
	if reply.Message.Role != types.MessageRoleAssistant {
		t.Errorf("reply role = %q", reply.Message.Role)
	}

	rec = doJSON(t, router, http.MethodPost, "/conversations",
		fmt.Sprintf(`{"user_id": %q, "first_message": "hi", "mode": "freestyle"}`, user.ID))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid mode status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost,
		"/conversations/"+reply.ConversationID.String()+"/messages", `{"content": "tell me more"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add message status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/conversations?user_id="+user.ID.String()+"&page=1&page_size=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var page services.ConversationPage
	decodeBody(t, rec, &page)
	if page.Total != 1 {
		t.Errorf("total = %d, want 1", page.Total)
	}

	rec = doJSON(t, router, http.MethodGet, "/conversations/"+reply.ConversationID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d", rec.Code)
	}
	var detail services.ConversationDetail
	decodeBody(t, rec, &detail)
	if len(detail.Messages) != 4 {
		t.Errorf("got %d messages, want 4", len(detail.Messages))
	}

	rec = doJSON(t, router, http.MethodDelete, "/conversations/"+reply.ConversationID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/conversations/"+reply.ConversationID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("detail after delete status = %d, want 404", rec.Code)
	}
}
