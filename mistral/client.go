// Package mistral is an HTTP client for the Mistral platform covering the
// two endpoints the tariff pipeline needs: document OCR and chat
// completions. It implements tariff.OCRProvider and
// tariff.NarrativeExtractor.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL   = "https://api.mistral.ai"
	defaultOCRModel  = "mistral-ocr-latest"
	defaultChatModel = "mistral-large-latest"
	defaultTimeout   = 120 * time.Second
)

// Config configures a Client. APIKey is required; everything else has a
// working default.
type Config struct {
	APIKey    string
	BaseURL   string
	OCRModel  string
	ChatModel string
	Timeout   time.Duration
	Logger    *slog.Logger
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.OCRModel == "" {
		c.OCRModel = defaultOCRModel
	}
	if c.ChatModel == "" {
		c.ChatModel = defaultChatModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client talks to the Mistral REST API.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mistral: API key is required")
	}
	cfg.defaults()
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger,
	}, nil
}

// post sends a JSON POST to path and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	reqJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+path, bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.Debug("Sending Mistral request",
		"path", path,
		"payload_size", len(reqJSON))

	startTime := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mistral HTTP error",
			"path", path,
			"status", resp.StatusCode,
			"body", string(respBody),
			"duration", duration)
		return fmt.Errorf("mistral returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("Mistral response received",
		"path", path,
		"duration", duration)
	return nil
}
