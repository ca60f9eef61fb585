package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/llm"
	"github.com/botgpt/botgpt-backend/internal/platform/apierr"
	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/rag"
	"github.com/botgpt/botgpt-backend/internal/repos"
	"github.com/botgpt/botgpt-backend/internal/types"
)

const (
	titleMaxLength        = 50
	lastMessagePreviewLen = 100
	fallbackReply         = "I apologize, but I'm having trouble generating a response right now. Please try again."
)

type CreateConversationInput struct {
	UserID       uuid.UUID
	FirstMessage string
	Mode         string
	DocumentIDs  []uuid.UUID
	Title        string
}

type MessageView struct {
	ID             uuid.UUID `json:"id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Tokens         int       `json:"tokens"`
	SequenceNumber int       `json:"sequence_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationReply is what message-producing endpoints return: the assistant
// turn plus the conversation's running token total.
type ConversationReply struct {
	ConversationID uuid.UUID   `json:"conversation_id"`
	Message        MessageView `json:"message"`
	TotalTokens    int         `json:"total_tokens"`
}

type ConversationSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title,omitempty"`
	Mode         string    `json:"mode"`
	IsActive     bool      `json:"is_active"`
	MessageCount int       `json:"message_count"`
	TotalTokens  int       `json:"total_tokens"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastMessage  string    `json:"last_message,omitempty"`
}

type ConversationPage struct {
	Items      []*ConversationSummary `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
}

type ConversationDetail struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Title       string        `json:"title,omitempty"`
	Mode        string        `json:"mode"`
	IsActive    bool          `json:"is_active"`
	TotalTokens int           `json:"total_tokens"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Messages    []MessageView `json:"messages"`
	DocumentIDs []uuid.UUID   `json:"document_ids,omitempty"`
}

type ConversationService interface {
	Create(ctx context.Context, input CreateConversationInput) (*ConversationReply, error)
	AddMessage(ctx context.Context, conversationID uuid.UUID, content string) (*ConversationReply, error)
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*ConversationPage, error)
	GetDetail(ctx context.Context, conversationID uuid.UUID) (*ConversationDetail, error)
	Delete(ctx context.Context, conversationID uuid.UUID) error
}

type conversationService struct {
	db         *gorm.DB
	log        *logger.Logger
	llmService *llm.Service
	topK       int

	userRepo  repos.UserRepo
	docRepo   repos.DocumentRepo
	chunkRepo repos.DocumentChunkRepo
	convRepo  repos.ConversationRepo
	msgRepo   repos.MessageRepo
}

func NewConversationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	llmService *llm.Service,
	topK int,
	userRepo repos.UserRepo,
	docRepo repos.DocumentRepo,
	chunkRepo repos.DocumentChunkRepo,
	convRepo repos.ConversationRepo,
	msgRepo repos.MessageRepo,
) ConversationService {
	if topK <= 0 {
		topK = 3
	}
	return &conversationService{
		db:         db,
		log:        baseLog.With("service", "ConversationService"),
		llmService: llmService,
		topK:       topK,
		userRepo:   userRepo,
		docRepo:    docRepo,
		chunkRepo:  chunkRepo,
		convRepo:   convRepo,
		msgRepo:    msgRepo,
	}
}

func (cs *conversationService) Create(ctx context.Context, input CreateConversationInput) (*ConversationReply, error) {
	users, err := cs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{input.UserID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user not found: %s", input.UserID))
	}

	mode := input.Mode
	if mode == "" {
		mode = types.ConversationModeOpenChat
	}
	if mode != types.ConversationModeOpenChat && mode != types.ConversationModeGroundedRAG {
		return nil, apierr.BadRequest("invalid_mode", fmt.Errorf("invalid conversation mode: %s", mode))
	}

	var documents []*types.Document
	if mode == types.ConversationModeGroundedRAG && len(input.DocumentIDs) > 0 {
		count, err := cs.docRepo.CountForUser(ctx, nil, input.DocumentIDs, input.UserID)
		if err != nil {
			return nil, err
		}
		if count != int64(len(input.DocumentIDs)) {
			return nil, apierr.NotFound("documents_not_found",
				fmt.Errorf("one or more documents not found or don't belong to user"))
		}
		documents, err = cs.docRepo.GetByIDs(ctx, nil, input.DocumentIDs)
		if err != nil {
			return nil, err
		}
	}

	title := input.Title
	if title == "" {
		title = generateTitle(input.FirstMessage)
	}

	conversation := &types.Conversation{
		ID:       uuid.New(),
		UserID:   input.UserID,
		Title:    title,
		Mode:     mode,
		IsActive: true,
	}

	var reply *ConversationReply
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.convRepo.Create(ctx, tx, []*types.Conversation{conversation}); err != nil {
			return err
		}
		if err := cs.convRepo.LinkDocuments(ctx, tx, conversation, documents); err != nil {
			return err
		}

		userMessage := &types.Message{
			ID:             uuid.New(),
			ConversationID: conversation.ID,
			Role:           types.MessageRoleUser,
			Content:        input.FirstMessage,
			Tokens:         llm.EstimateTokens(input.FirstMessage),
			SequenceNumber: 1,
		}
		if _, err := cs.msgRepo.Create(ctx, tx, []*types.Message{userMessage}); err != nil {
			return err
		}

		assistantMessage, err := cs.generateAssistantReply(ctx, tx, conversation, input.FirstMessage, 2)
		if err != nil {
			return err
		}

		conversation.TotalTokens = userMessage.Tokens + assistantMessage.Tokens
		if err := cs.convRepo.Save(ctx, tx, conversation); err != nil {
			return err
		}

		reply = &ConversationReply{
			ConversationID: conversation.ID,
			Message:        messageView(assistantMessage),
			TotalTokens:    conversation.TotalTokens,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.log.Info("Created conversation", "conversation_id", conversation.ID, "mode", mode)
	return reply, nil
}

func (cs *conversationService) AddMessage(ctx context.Context, conversationID uuid.UUID, content string) (*ConversationReply, error) {
	conversations, err := cs.convRepo.GetByIDs(ctx, nil, []uuid.UUID{conversationID})
	if err != nil {
		return nil, err
	}
	if len(conversations) == 0 {
		return nil, apierr.NotFound("conversation_not_found", fmt.Errorf("conversation not found: %s", conversationID))
	}
	conversation := conversations[0]
	if !conversation.IsActive {
		return nil, apierr.BadRequest("conversation_inactive", fmt.Errorf("conversation is inactive"))
	}

	var reply *ConversationReply
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxSeq, err := cs.msgRepo.MaxSequence(ctx, tx, conversationID)
		if err != nil {
			return err
		}

		userMessage := &types.Message{
			ID:             uuid.New(),
			ConversationID: conversation.ID,
			Role:           types.MessageRoleUser,
			Content:        content,
			Tokens:         llm.EstimateTokens(content),
			SequenceNumber: maxSeq + 1,
		}
		if _, err := cs.msgRepo.Create(ctx, tx, []*types.Message{userMessage}); err != nil {
			return err
		}

		assistantMessage, err := cs.generateAssistantReply(ctx, tx, conversation, content, maxSeq+2)
		if err != nil {
			return err
		}

		conversation.TotalTokens += userMessage.Tokens + assistantMessage.Tokens
		if err := cs.convRepo.Save(ctx, tx, conversation); err != nil {
			return err
		}

		reply = &ConversationReply{
			ConversationID: conversation.ID,
			Message:        messageView(assistantMessage),
			TotalTokens:    conversation.TotalTokens,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.log.Info("Added message to conversation", "conversation_id", conversationID)
	return reply, nil
}

// generateAssistantReply assembles the prompt (persona + optional retrieved
// context + stored history), calls the LLM, and persists the assistant turn.
// A provider failure is downgraded to the fixed apology reply; transport
// errors never reach the end user.
func (cs *conversationService) generateAssistantReply(
	ctx context.Context,
	tx *gorm.DB,
	conversation *types.Conversation,
	userContent string,
	sequenceNumber int,
) (*types.Message, error) {
	history, err := cs.msgRepo.ListByConversation(ctx, tx, conversation.ID)
	if err != nil {
		return nil, err
	}

	ragContext := ""
	if conversation.Mode == types.ConversationModeGroundedRAG {
		ragContext, err = cs.retrieveContext(ctx, tx, conversation.ID, userContent)
		if err != nil {
			return nil, err
		}
	}

	prompt := make([]llm.Message, 0, len(history)+2)
	prompt = append(prompt, llm.Message{
		Role:    types.MessageRoleSystem,
		Content: llm.SystemPrompt(conversation.Mode, ragContext),
	})
	for _, msg := range history {
		prompt = append(prompt, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	if len(history) == 0 || history[len(history)-1].Role != types.MessageRoleUser {
		prompt = append(prompt, llm.Message{Role: types.MessageRoleUser, Content: userContent})
	}

	var content string
	var tokens int
	completion, err := cs.llmService.GenerateResponse(ctx, prompt)
	if err != nil {
		cs.log.Error("LLM generation failed, using fallback reply", "conversation_id", conversation.ID, "error", err)
		content = fallbackReply
		tokens = llm.EstimateTokens(content)
	} else {
		content = completion.Content
		tokens = completion.TokensUsed
	}

	assistantMessage := &types.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		Role:           types.MessageRoleAssistant,
		Content:        content,
		Tokens:         tokens,
		SequenceNumber: sequenceNumber,
	}
	if _, err := cs.msgRepo.Create(ctx, tx, []*types.Message{assistantMessage}); err != nil {
		return nil, err
	}
	return assistantMessage, nil
}

func (cs *conversationService) retrieveContext(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, query string) (string, error) {
	documentIDs, err := cs.convRepo.ListDocumentIDs(ctx, tx, conversationID)
	if err != nil {
		return "", err
	}
	if len(documentIDs) == 0 {
		return "", nil
	}
	chunks, err := cs.chunkRepo.ListByDocumentIDs(ctx, tx, documentIDs)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		cs.log.Warn("No chunks found for conversation documents", "conversation_id", conversationID)
		return "", nil
	}
	top := rag.Search(query, chunks, cs.topK)
	return rag.BuildContext(top), nil
}

func (cs *conversationService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*ConversationPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	total, err := cs.convRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	conversations, err := cs.convRepo.ListByUser(ctx, nil, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		count, err := cs.msgRepo.CountByConversation(ctx, nil, conversation.ID)
		if err != nil {
			return nil, err
		}
		lastMessage := ""
		last, err := cs.msgRepo.LastByConversation(ctx, nil, conversation.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			lastMessage = preview(last.Content, lastMessagePreviewLen)
		}
		items = append(items, &ConversationSummary{
			ID:           conversation.ID,
			Title:        conversation.Title,
			Mode:         conversation.Mode,
			IsActive:     conversation.IsActive,
			MessageCount: int(count),
			TotalTokens:  conversation.TotalTokens,
			CreatedAt:    conversation.CreatedAt,
			UpdatedAt:    conversation.UpdatedAt,
			LastMessage:  lastMessage,
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &ConversationPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (cs *conversationService) GetDetail(ctx context.Context, conversationID uuid.UUID) (*ConversationDetail, error) {
	conversations, err := cs.convRepo.GetByIDs(ctx, nil, []uuid.UUID{conversationID})
	if err != nil {
		return nil, err
	}
	if len(conversations) == 0 {
		return nil, apierr.NotFound("conversation_not_found", fmt.Errorf("conversation not found: %s", conversationID))
	}
	conversation := conversations[0]

	messages, err := cs.msgRepo.ListByConversation(ctx, nil, conversationID)
	if err != nil {
		return nil, err
	}
	documentIDs, err := cs.convRepo.ListDocumentIDs(ctx, nil, conversationID)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, messageView(msg))
	}
	return &ConversationDetail{
		ID:          conversation.ID,
		UserID:      conversation.UserID,
		Title:       conversation.Title,
		Mode:        conversation.Mode,
		IsActive:    conversation.IsActive,
		TotalTokens: conversation.TotalTokens,
		CreatedAt:   conversation.CreatedAt,
		UpdatedAt:   conversation.UpdatedAt,
		Messages:    views,
		DocumentIDs: documentIDs,
	}, nil
}

func (cs *conversationService) Delete(ctx context.Context, conversationID uuid.UUID) error {
	conversations, err := cs.convRepo.GetByIDs(ctx, nil, []uuid.UUID{conversationID})
	if err != nil {
		return err
	}
	if len(conversations) == 0 {
		return apierr.NotFound("conversation_not_found", fmt.Errorf("conversation not found: %s", conversationID))
	}
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.msgRepo.DeleteByConversation(ctx, tx, conversationID); err != nil {
			return err
		}
		return cs.convRepo.Delete(ctx, tx, conversationID)
	})
	if err != nil {
		return err
	}
	cs.log.Info("Deleted conversation", "conversation_id", conversationID)
	return nil
}

func messageView(msg *types.Message) MessageView {
	return MessageView{
		ID:             msg.ID,
		Role:           msg.Role,
		Content:        msg.Content,
		Tokens:         msg.Tokens,
		SequenceNumber: msg.SequenceNumber,
		CreatedAt:      msg.CreatedAt,
	}
}

func generateTitle(firstMessage string) string {
	if len(firstMessage) <= titleMaxLength {
		return firstMessage
	}
	return firstMessage[:titleMaxLength] + "..."
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
