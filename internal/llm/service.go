package llm

import (
	"context"
	"strings"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
)

type Config struct {
	Provider          string
	APIKey            string
	BaseURL           string
	Model             string
	MaxContextTokens  int
	MaxResponseTokens int
	Temperature       float64
}

// Service wraps a provider client with the shared generation policy: trim the
// prompt to the context budget, then hand it to the transport. Timeouts live
// in the client; retries do not exist at this layer.
type Service struct {
	client Client
	cfg    Config
	log    *logger.Logger
}

func NewService(cfg Config, log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "LLMService")

	if cfg.MaxContextTokens <= 0 {
		cfg.MaxContextTokens = 8000
	}
	if cfg.MaxResponseTokens <= 0 {
		cfg.MaxResponseTokens = 1000
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = "groq"
	}
	if provider == "groq" && strings.TrimSpace(cfg.APIKey) == "" {
		serviceLog.Warn("Groq API key not provided, falling back to mock provider")
		provider = "mock"
	}

	var client Client
	switch provider {
	case "groq":
		groq, err := NewGroqClient(cfg.BaseURL, cfg.APIKey, cfg.Model, log)
		if err != nil {
			return nil, err
		}
		client = groq
	default:
		client = NewMockClient()
	}
	cfg.Provider = provider

	serviceLog.Info("LLM service initialized", "provider", provider, "model", cfg.Model)
	return &Service{client: client, cfg: cfg, log: serviceLog}, nil
}

func (s *Service) Provider() string {
	return s.cfg.Provider
}

// GenerateResponse truncates the prompt history to the context budget less
// the response allowance, then calls the provider.
func (s *Service) GenerateResponse(ctx context.Context, messages []Message) (Completion, error) {
	budget := s.cfg.MaxContextTokens - s.cfg.MaxResponseTokens
	truncated := TruncateHistory(messages, budget, EstimateTokens)
	if len(truncated) < len(messages) {
		s.log.Debug("Truncated prompt history", "before", len(messages), "after", len(truncated))
	}
	return s.client.Generate(ctx, truncated, s.cfg.Temperature, s.cfg.MaxResponseTokens)
}
