package encoding

import (
	"fmt"

	"essayqa/config"
	"essayqa/internal/port"
)

// FromConfig builds an encoder for the configured provider.
func FromConfig(cfg config.EncoderConfig) (port.Encoder, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.BaseURL != "" {
			return NewCompatibleEncoder(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL, cfg.BatchSize)
		}
		return NewOpenAIEncoder(cfg.APIKeyEnv, cfg.Model, cfg.BatchSize)
	case "jina":
		return NewJinaEncoder(cfg.APIKeyEnv, cfg.Model, cfg.BatchSize)
	case "ollama":
		return NewOllamaEncoder(cfg.Model, cfg.BaseURL, cfg.BatchSize)
	case "mock":
		return NewMockEncoder(cfg.Dimension), nil
	}
	return nil, fmt.Errorf("unsupported encoder provider: %s", cfg.Provider)
}
