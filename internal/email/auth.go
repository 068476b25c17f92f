package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// Authorize obtains a token source for the Gmail send scope. A token stored
// at tokenFile is reused and auto-refreshed; otherwise the interactive
// authorization-code flow runs on the terminal. The current token is written
// back to tokenFile so later runs skip the prompt.
func Authorize(ctx context.Context, credentialsFile, tokenFile string) (oauth2.TokenSource, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to read credentials file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to parse credentials: %w", err)
	}

	tok, err := LoadToken(tokenFile)
	if err != nil {
		if tok, err = authorizeInteractive(ctx, cfg); err != nil {
			return nil, err
		}
	}

	// Exercise the source once so an unusable stored token fails before any
	// send, then persist whatever token the source settled on.
	ts := cfg.TokenSource(ctx, tok)
	current, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to obtain access token: %w", err)
	}
	if err := SaveToken(tokenFile, current); err != nil {
		return nil, err
	}

	return oauth2.ReuseTokenSource(current, ts), nil
}

// authorizeInteractive runs the console authorization-code flow. The state
// value is random per run; with a pasted code there is no redirect to check
// it against, but a fixed value has no business in an auth URL.
func authorizeInteractive(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	url := cfg.AuthCodeURL(randomHex(16), oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, authorize the application,\nthen paste the code here:\n\n%s\n\nCode: ", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("gmail: failed to read authorization code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to exchange authorization code: %w", err)
	}

	return tok, nil
}

// LoadToken reads a stored OAuth2 token from a JSON file.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to read token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("gmail: failed to parse token file: %w", err)
	}

	return &tok, nil
}

// SaveToken writes an OAuth2 token to a JSON file with owner-only access.
func SaveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("gmail: failed to encode token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("gmail: failed to write token file: %w", err)
	}

	return nil
}
