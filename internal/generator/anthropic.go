// Package generator calls the generation model that turns a composed
// prompt into copy. Kept behind a small interface so the API layer and
// tests can stub it.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/tidwall/gjson"
)

const anthropicAPI = "https://api.anthropic.com/v1/messages"

// Generator produces copy from a prompt at a given sampling temperature.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Client talks to the Anthropic messages API.
type Client struct {
	apiKey    string
	model     string
	maxTokens int
	http      *http.Client
}

// New creates a Client from the environment.
func New(model string, maxTokens int) (*Client, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Client{apiKey: apiKey, model: model, maxTokens: maxTokens, http: http.DefaultClient}, nil
}

type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
	Messages    []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generate sends one user message and returns the text of the reply.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	reqBody := apiRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: temperature,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", anthropicAPI, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	if errMsg := gjson.GetBytes(body, "error.message"); errMsg.Exists() {
		return "", fmt.Errorf("api error: %s", errMsg.String())
	}

	text := gjson.GetBytes(body, "content.0.text")
	if !text.Exists() || text.String() == "" {
		return "", fmt.Errorf("empty response")
	}
	return text.String(), nil
}
