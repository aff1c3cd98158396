package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the essay answer service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Listen         string `yaml:"listen"`
	RequestTimeout int    `yaml:"request_timeout"` // seconds; 0 disables
}

// EncoderConfig holds embedding encoder configuration.
type EncoderConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "jina", "ollama", "mock"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// SegmenterConfig holds structural segmentation configuration.
type SegmenterConfig struct {
	MaxHeadingChars int    `yaml:"max_heading_chars"`
	DefaultTitle    string `yaml:"default_title"`
}

// RetrievalConfig holds retrieval configuration.
type RetrievalConfig struct {
	Mode string `yaml:"mode"` // "flat", "section", "two-tier"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:         ":8080",
			RequestTimeout: 60,
		},
		Encoder: EncoderConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		Segmenter: SegmenterConfig{
			MaxHeadingChars: 100,
			DefaultTitle:    "Introduction",
		},
		Retrieval: RetrievalConfig{
			Mode: "flat",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for essayqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "essayqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".essayqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
