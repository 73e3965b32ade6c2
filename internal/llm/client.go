package llm

import (
	"context"
	"fmt"
)

// Client is the text-completion capability the agent depends on. The agent
// treats it as a black box: one prompt in, free text out, no retries.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options configures a completion client.
type Options struct {
	Provider    string // "claude" or "openai"
	APIKey      string
	BaseURL     string // openai only, for OpenAI-compatible gateways
	Model       string
	Temperature float64
}

// New builds a completion client for the configured provider.
func New(opts Options) (Client, error) {
	switch opts.Provider {
	case "claude", "":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("claude provider requires an API key")
		}
		return NewClaude(opts.APIKey, opts.Model, opts.Temperature), nil
	case "openai":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return NewOpenAI(opts.APIKey, opts.BaseURL, opts.Model, opts.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", opts.Provider)
	}
}
