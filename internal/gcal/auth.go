package gcal

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// OAuthScopes covers calendar mutations plus sending notification mail.
var OAuthScopes = []string{
	calendar.CalendarScope,
	"https://www.googleapis.com/auth/gmail.send",
}

// loadOAuthConfig loads OAuth2 configuration from a credentials file or the
// GOOGLE_CREDENTIALS_JSON environment variable (useful for container
// deployments).
func loadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS_JSON"); credJSON != "" {
		config, err := google.ConfigFromJSON([]byte(credJSON), OAuthScopes...)
		if err == nil {
			return config, nil
		}
	}

	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, err
		}
		return google.ConfigFromJSON(data, OAuthScopes...)
	}

	return nil, fmt.Errorf("no credentials file found - please provide credentials.json or set GOOGLE_CREDENTIALS_JSON env var")
}

// loadToken reads a saved OAuth token from disk.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// saveToken persists an OAuth token to disk for the next start.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
