package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends email notifications via Resend API
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
}

// NewResendNotifier creates a new Resend email notifier
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	if apiKey == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
	}
}

// IsConfigured returns true if the notifier has server-side config
func (r *ResendNotifier) IsConfigured() bool {
	return r != nil && r.client != nil && r.fromAddress != ""
}

// Send delivers one plain-text email to the specified recipient
func (r *ResendNotifier) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

// Name returns the notifier name
func (r *ResendNotifier) Name() string {
	return "resend"
}
