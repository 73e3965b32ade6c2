package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPIURL    = "https://api.anthropic.com/v1/messages"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
	anthropicVersion = "2023-06-01"
)

// ClaudeClient is a Claude API client implementing Client.
type ClaudeClient struct {
	apiKey      string
	model       string
	apiURL      string
	httpClient  *http.Client
	temperature float64
}

// NewClaude creates a new Claude API client
func NewClaude(apiKey, model string, temperature float64) *ClaudeClient {
	if model == "" {
		model = defaultModel
	}
	if temperature <= 0 {
		temperature = 0.1
	}

	return &ClaudeClient{
		apiKey:      apiKey,
		model:       model,
		apiURL:      defaultAPIURL,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// anthropicRequest represents the API request structure
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse represents the API response structure
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the prompt as a single user message and returns the model's
// text reply.
func (c *ClaudeClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := anthropicRequest{
		Model:       c.model,
		MaxTokens:   defaultMaxTokens,
		Temperature: c.temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return apiResp.Content[0].Text, nil
}
