package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/botgpt/botgpt-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName         string
	AllowOrigins        []string
	HealthHandler       *handlers.HealthHandler
	UserHandler         *handlers.UserHandler
	DocumentHandler     *handlers.DocumentHandler
	ConversationHandler *handlers.ConversationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/", cfg.HealthHandler.Root)
	router.GET("/health", cfg.HealthHandler.Health)
	router.GET("/api/v1/operations/ping", cfg.HealthHandler.Ping)

	users := router.Group("/users")
	{
		users.POST("", cfg.UserHandler.Create)
		users.GET("", cfg.UserHandler.List)
		users.GET("/:id", cfg.UserHandler.Get)
	}

	documents := router.Group("/documents")
	{
		documents.POST("", cfg.DocumentHandler.Upload)
		documents.GET("", cfg.DocumentHandler.List)
		documents.GET("/:id", cfg.DocumentHandler.Get)
		documents.DELETE("/:id", cfg.DocumentHandler.Delete)
	}

	conversations := router.Group("/conversations")
	{
		conversations.POST("", cfg.ConversationHandler.Create)
		conversations.GET("", cfg.ConversationHandler.List)
		conversations.GET("/:id", cfg.ConversationHandler.Get)
		conversations.POST("/:id/messages", cfg.ConversationHandler.AddMessage)
		conversations.DELETE("/:id", cfg.ConversationHandler.Delete)
	}

	return router
}
