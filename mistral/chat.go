package mistral

import (
	"context"
	"fmt"
)

// chatRequest is the /v1/chat/completions request payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the /v1/chat/completions response payload.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ExtractTable asks the chat model to rewrite tariff text as a markdown
// table per instructions. Temperature is pinned low; this is a transcription
// task, not a creative one.
func (c *Client) ExtractTable(ctx context.Context, text, instructions string) (string, error) {
	req := chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "user", Content: instructions + "\n\n" + text},
		},
		Temperature: 0.2,
	}

	var resp chatResponse
	if err := c.post(ctx, "/v1/chat/completions", req, &resp); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("chat completion returned no choices")
		return "", nil
	}

	c.logger.Info("narrative table extracted",
		"tokens", resp.Usage.TotalTokens,
		"finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
