package notify

import "context"

// Notifier delivers a plain-text message to a recipient address
type Notifier interface {
	// Send delivers one message to the specified recipient
	Send(ctx context.Context, to, subject, body string) error
	// Name returns the notifier type name (for logging)
	Name() string
	// IsConfigured returns true if the notifier has server-side config
	IsConfigured() bool
}
