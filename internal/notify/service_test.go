package notify

import (
	"context"
	"testing"

	"github.com/gcanale/agendabot/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewService(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	service := NewService(notifier, "utente@example.com")

	assert.NotNil(t, service)
	assert.Equal(t, notifier, service.notifier)
	assert.Equal(t, "utente@example.com", service.to)
}

func TestIsAvailable(t *testing.T) {
	t.Run("available when notifier configured", func(t *testing.T) {
		notifier := &mocks.MockNotifier{}
		notifier.On("IsConfigured").Return(true)

		service := NewService(notifier, "utente@example.com")
		assert.True(t, service.IsAvailable())
	})

	t.Run("unavailable when notifier not configured", func(t *testing.T) {
		notifier := &mocks.MockNotifier{}
		notifier.On("IsConfigured").Return(false)

		service := NewService(notifier, "utente@example.com")
		assert.False(t, service.IsAvailable())
	})

	t.Run("unavailable with nil notifier", func(t *testing.T) {
		service := NewService(nil, "utente@example.com")
		assert.False(t, service.IsAvailable())
	})
}

func TestNotifySends(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	notifier.On("IsConfigured").Return(true)
	notifier.On("Name").Return("resend")
	notifier.On("Send", mock.Anything, "utente@example.com", "Nuovo evento creato", "Evento creato: dentista").Return(nil)

	service := NewService(notifier, "utente@example.com")
	service.Notify(context.Background(), "Nuovo evento creato", "Evento creato: dentista")

	notifier.AssertExpectations(t)
}

func TestNotifySendFailureDoesNotPanic(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	notifier.On("IsConfigured").Return(true)
	notifier.On("Name").Return("resend")
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	service := NewService(notifier, "utente@example.com")
	service.Notify(context.Background(), "Evento cancellato", "corpo")

	notifier.AssertExpectations(t)
}

func TestNotifySkipsWithoutRecipient(t *testing.T) {
	notifier := &mocks.MockNotifier{}
	notifier.On("IsConfigured").Return(true)

	service := NewService(notifier, "")
	service.Notify(context.Background(), "Nuovo evento creato", "corpo")

	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
