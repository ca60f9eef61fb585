package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/botgpt/botgpt-backend/internal/platform/apierr"
	"github.com/botgpt/botgpt-backend/internal/services"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

type UploadDocumentRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Filename string    `json:"filename" binding:"required,min=1,max=500"`
	Content  string    `json:"content" binding:"required,min=1"`
	MimeType string    `json:"mime_type" binding:"omitempty,max=100"`
}

func (dh *DocumentHandler) Upload(c *gin.Context) {
	var req UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := dh.documentService.Upload(c.Request.Context(), req.UserID, req.Filename, req.Content, req.MimeType)
	if err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (dh *DocumentHandler) List(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing user_id"})
		return
	}
	views, err := dh.documentService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (dh *DocumentHandler) Get(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	view, err := dh.documentService.Get(c.Request.Context(), documentID)
	if err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (dh *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}
	if err := dh.documentService.Delete(c.Request.Context(), documentID); err != nil {
		c.JSON(apierr.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
