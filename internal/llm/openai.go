package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client against any OpenAI-compatible endpoint.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float64
}

// NewOpenAI creates a completion client backed by the chat completions API.
// baseURL may point at an OpenAI-compatible gateway; empty uses the default.
func NewOpenAI(apiKey, baseURL, model string, temperature float64) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if temperature <= 0 {
		temperature = 0.1
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Complete sends the prompt as a single user message and returns the model's
// text reply.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: float32(c.temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return resp.Choices[0].Message.Content, nil
}
