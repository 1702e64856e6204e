package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full ingest service configuration.
type Config struct {
	Listen          string        `yaml:"listen"`
	UploadDir       string        `yaml:"upload_dir"`
	OutputDir       string        `yaml:"output_dir"`
	DBPath          string        `yaml:"db_path"`
	MaxFileMB       int           `yaml:"max_file_mb"`
	ExtractTimeoutS int           `yaml:"extract_timeout_s"`
	Mistral         MistralConfig `yaml:"mistral"`
}

// MistralConfig configures the OCR and narrative collaborators.
type MistralConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	OCRModel  string `yaml:"ocr_model"`
	ChatModel string `yaml:"chat_model"`
	Narrative bool   `yaml:"narrative"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:          ":8093",
		UploadDir:       "uploads",
		OutputDir:       "output",
		DBPath:          "tariffpipe.db",
		MaxFileMB:       25,
		ExtractTimeoutS: 300,
		Mistral: MistralConfig{
			APIKeyEnv: "MISTRAL_API_KEY",
			Narrative: true,
		},
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig
// merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("upload_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.MaxFileMB <= 0 {
		return fmt.Errorf("max_file_mb must be > 0")
	}
	if c.ExtractTimeoutS <= 0 {
		return fmt.Errorf("extract_timeout_s must be > 0")
	}
	if c.Mistral.APIKeyEnv == "" {
		return fmt.Errorf("mistral.api_key_env is required")
	}
	return nil
}

// MaxFileBytes returns max upload size in bytes.
func (c *Config) MaxFileBytes() int64 { return int64(c.MaxFileMB) * 1024 * 1024 }
