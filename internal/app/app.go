package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/db"
	"github.com/botgpt/botgpt-backend/internal/observability"
	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/server"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *gorm.DB
	Router   *gin.Engine
	Repos    Repos
	Services Services

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.App.Name,
		Environment: os.Getenv("PROFILE"),
		Version:     cfg.App.Version,
	})

	database, err := db.NewService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := database.DB()

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(theDB, cfg, serviceset)
	router := server.NewRouter(*wireRouter(cfg, handlerset))

	log.Info("Application initialized", "name", cfg.App.Name, "version", cfg.App.Version)
	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           theDB,
		Router:       router,
		Repos:        reposet,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := fmt.Sprintf("%s:%d", a.Cfg.Server.Host, a.Cfg.Server.Port)
	a.Log.Info("Server listening", "addr", addr)
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
