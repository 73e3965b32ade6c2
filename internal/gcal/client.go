package gcal

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar API client
type Client struct {
	service         *calendar.Service
	config          *oauth2.Config
	credentialsFile string
	tokenFile       string
	token           *oauth2.Token
}

// NewClient creates a new Google Calendar client from a credentials file and
// a previously saved token. An expired token is refreshed and saved back.
func NewClient(ctx context.Context, credentialsFile, tokenFile string) (*Client, error) {
	config, err := loadOAuthConfig(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth config: %w", err)
	}

	client := &Client{
		config:          config,
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
	}

	token, err := loadToken(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	client.token = token

	if err := client.initService(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

// initService refreshes the token when needed and builds the Calendar service.
func (c *Client) initService(ctx context.Context) error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	if !c.token.Valid() {
		if c.token.RefreshToken == "" {
			return fmt.Errorf("token expired and no refresh token available")
		}
		tokenSource := c.config.TokenSource(ctx, c.token)
		newToken, err := tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		if err := saveToken(c.tokenFile, newToken); err != nil {
			fmt.Printf("Warning: could not save refreshed token: %v\n", err)
		}
	}

	httpClient := c.config.Client(ctx, c.token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	c.service = service
	return nil
}

// IsAuthenticated returns true if the client is authenticated
func (c *Client) IsAuthenticated() bool {
	return c.service != nil
}

// HTTPClient returns an authorized HTTP client sharing this client's token,
// for sibling Google services (Gmail).
func (c *Client) HTTPClient(ctx context.Context) *http.Client {
	return c.config.Client(ctx, c.token)
}
