package notify

import (
	"context"
	"log"
)

// Service routes agent notifications to the configured recipient.
// Errors are logged but don't fail the operation.
type Service struct {
	notifier Notifier
	to       string
	// Future: pushNotifier, webhookNotifier
}

// NewService creates a notification service
func NewService(notifier Notifier, to string) *Service {
	return &Service{notifier: notifier, to: to}
}

// Notify sends one message to the configured recipient, best-effort.
func (s *Service) Notify(ctx context.Context, subject, body string) {
	if !s.IsAvailable() {
		log.Printf("Notification: skipping %q, no notifier configured", subject)
		return
	}
	if s.to == "" {
		log.Printf("Notification: skipping %q, no recipient configured", subject)
		return
	}
	if err := s.notifier.Send(ctx, s.to, subject, body); err != nil {
		log.Printf("Notification: %s failed: %v", s.notifier.Name(), err)
		return
	}
	log.Printf("Notification: %s sent %q to %s", s.notifier.Name(), subject, s.to)
}

// IsAvailable returns true if notifications can be sent
func (s *Service) IsAvailable() bool {
	return s.notifier != nil && s.notifier.IsConfigured()
}
