package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/botgpt/botgpt-backend/internal/platform/apierr"
	"github.com/botgpt/botgpt-backend/internal/services"
)

type ConversationHandler struct {
	conversationService services.ConversationService
}

func NewConversationHandler(conversationService services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

type CreateConversationRequest struct {
	UserID       uuid.UUID   `json:"user_id" binding:"required"`
	FirstMessage string      `json:"first_message" binding:"required,min=1,max=10000"`
	Mode         string      `json:"mode" binding:"omitempty,oneof=open_chat grounded_rag"`
	DocumentIDs  []uuid.UUID `json:"document_ids" binding:"omitempty"`
	Title        string      `json:"title" binding:"omitempty,max=500"`
}

type AddMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

func (ch *ConversationHandler) Create(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := ch.conversationService.Create(c.Request.Context(), services.CreateConversationInput{
		UserID:       req.UserID,
		FirstMessage: req.FirstMessage,
		Mode:         req.Mode,
		DocumentIDs:  req.DocumentIDs,
		Title:        req.Title,
	})
	if err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (ch *ConversationHandler) List(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing user_id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := ch.conversationService.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ch *ConversationHandler) Get(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}
	detail, err := ch.conversationService.GetDetail(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (ch *ConversationHandler) AddMessage(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}
	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := ch.conversationService.AddMessage(c.Request.Context(), conversationID, req.Content)
	if err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (ch *ConversationHandler) Delete(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}
	if err := ch.conversationService.Delete(c.Request.Context(), conversationID); err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
