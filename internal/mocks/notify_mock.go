package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAgentNotifier is a mock implementation of the agent's notification hook
type MockAgentNotifier struct {
	mock.Mock
}

func (m *MockAgentNotifier) Notify(ctx context.Context, subject, body string) {
	m.Called(ctx, subject, body)
}

// MockNotifier is a mock implementation of the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockNotifier) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockNotifier) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}
