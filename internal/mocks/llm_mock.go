package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLLMClient is a mock implementation of the completion client
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
