package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/utils"
)

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LLMConfig struct {
	Provider          string  `yaml:"provider"`
	Model             string  `yaml:"model"`
	BaseURL           string  `yaml:"base_url"`
	MaxContextTokens  int     `yaml:"max_context_tokens"`
	MaxResponseTokens int     `yaml:"max_response_tokens"`
	Temperature       float64 `yaml:"temperature"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

type Config struct {
	App    AppConfig    `yaml:"app"`
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	RAG    RAGConfig    `yaml:"rag"`
}

func defaultConfig() Config {
	return Config{
		App:    AppConfig{Name: "botgpt", Version: "1.0.0"},
		Server: ServerConfig{Host: "0.0.0.0", Port: 8000},
		LLM: LLMConfig{
			Provider:          "groq",
			MaxContextTokens:  8000,
			MaxResponseTokens: 1000,
			Temperature:       0.7,
		},
		RAG: RAGConfig{ChunkSize: 500, ChunkOverlap: 50, TopK: 3},
	}
}

// LoadConfig reads the optional profile file (botgpt-<PROFILE>.yaml) over the
// built-in defaults, then applies env overrides. Secrets come from env only.
func LoadConfig(log *logger.Logger) Config {
	cfg := defaultConfig()

	profile := utils.GetEnv("PROFILE", "local", log)
	path := utils.GetEnv("CONFIG_PATH", fmt.Sprintf("botgpt-%s.yaml", profile), log)
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Config file not found, using defaults", "path", path)
	} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Warn("Config file could not be parsed, using defaults", "path", path, "error", err)
		cfg = defaultConfig()
	} else {
		log.Info("Loaded configuration", "path", path)
	}

	cfg.Server.Port = utils.GetEnvAsInt("SERVER_PORT", cfg.Server.Port, log)
	cfg.LLM.Provider = utils.GetEnv("LLM_PROVIDER", cfg.LLM.Provider, log)
	cfg.LLM.Model = utils.GetEnv("LLM_MODEL", cfg.LLM.Model, log)
	cfg.LLM.BaseURL = utils.GetEnv("LLM_BASE_URL", cfg.LLM.BaseURL, log)
	cfg.RAG.ChunkSize = utils.GetEnvAsInt("RAG_CHUNK_SIZE", cfg.RAG.ChunkSize, log)
	cfg.RAG.ChunkOverlap = utils.GetEnvAsInt("RAG_CHUNK_OVERLAP", cfg.RAG.ChunkOverlap, log)
	cfg.RAG.TopK = utils.GetEnvAsInt("RAG_TOP_K", cfg.RAG.TopK, log)

	return cfg
}

// LLMAPIKey is read from env on demand and never stored in Config so it can't
// leak through config dumps.
func LLMAPIKey(log *logger.Logger) string {
	key := utils.GetEnv("LLM_API_KEY", "", log)
	if key == "" {
		key = utils.GetEnv("GROQ_API_KEY", "", log)
	}
	return key
}
