package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db          *gorm.DB
	appName     string
	appVersion  string
	llmProvider string
}

func NewHealthHandler(db *gorm.DB, appName, appVersion, llmProvider string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName, appVersion: appVersion, llmProvider: llmProvider}
}

func (hh *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": hh.appName + " API",
		"version": hh.appVersion,
		"status":  "running",
	})
}

func (hh *HealthHandler) Health(c *gin.Context) {
	database := "up"
	if sqlDB, err := hh.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		database = "down"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "UP",
		"timestamp":    time.Now().UTC(),
		"database":     database,
		"llm_provider": hh.llmProvider,
	})
}

func (hh *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
