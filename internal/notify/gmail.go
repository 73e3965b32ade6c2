package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailNotifier sends email through the Gmail API using the calendar's
// OAuth credentials, so no separate mail provider account is needed.
type GmailNotifier struct {
	service *gmail.Service
}

// NewGmailNotifier creates a Gmail notifier on top of an already authorized
// HTTP client. The client must carry the gmail.send scope.
func NewGmailNotifier(ctx context.Context, httpClient *http.Client) (*GmailNotifier, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("no authorized HTTP client")
	}
	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &GmailNotifier{service: service}, nil
}

// IsConfigured returns true if the notifier has server-side config
func (g *GmailNotifier) IsConfigured() bool {
	return g != nil && g.service != nil
}

// Send delivers one plain-text email to the specified recipient
func (g *GmailNotifier) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	// Subjects carry Italian text and emoji, so RFC 2047 encode them.
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		to, mime.BEncoding.Encode("UTF-8", subject), body)

	msg := &gmail.Message{Raw: base64.RawURLEncoding.EncodeToString([]byte(raw))}
	if _, err := g.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail send failed: %w", err)
	}
	return nil
}

// Name returns the notifier name
func (g *GmailNotifier) Name() string {
	return "gmail"
}
