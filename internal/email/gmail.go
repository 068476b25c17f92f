package email

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	service       *gmail.Service
	senderAddress string
	senderName    string
}

// NewGmailSender creates a GmailSender from an authorized token source.
// senderAddress may be empty, in which case Gmail fills the From header with
// the authenticated account's address.
func NewGmailSender(ctx context.Context, ts oauth2.TokenSource, senderAddress, senderName string) (*GmailSender, error) {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// Send sends an email via the Gmail API.
func (g *GmailSender) Send(ctx context.Context, msg Message) error {
	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(g.buildMIME(msg))),
	}

	_, err := g.service.Users.Messages.Send("me", gmailMsg).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("gmail: send rejected (HTTP %d): %w", apiErr.Code, err)
		}
		return fmt.Errorf("gmail: failed to send email: %w", err)
	}

	return nil
}

// buildMIME assembles the raw RFC 2822 message for the Gmail API.
func (g *GmailSender) buildMIME(msg Message) string {
	headers := []string{}
	if g.senderAddress != "" {
		from := g.senderAddress
		if g.senderName != "" {
			from = fmt.Sprintf("%s <%s>", g.senderName, g.senderAddress)
		}
		headers = append(headers, "From: "+from)
	}
	headers = append(headers,
		"To: "+msg.To,
		"Subject: "+msg.Subject,
		"MIME-Version: 1.0",
	)

	if msg.HTMLBody != "" && msg.TextBody != "" {
		// Multipart alternative (text + HTML). The boundary is random per
		// message so body text can never collide with it.
		boundary := "coldmail_" + randomHex(12)
		return strings.Join(append(headers,
			"Content-Type: multipart/alternative; boundary="+boundary,
			"",
			"--"+boundary,
			"Content-Type: text/plain; charset=UTF-8",
			"Content-Transfer-Encoding: 7bit",
			"",
			msg.TextBody,
			"",
			"--"+boundary,
			"Content-Type: text/html; charset=UTF-8",
			"Content-Transfer-Encoding: 7bit",
			"",
			msg.HTMLBody,
			"",
			"--"+boundary+"--",
		), "\r\n")
	}

	if msg.HTMLBody != "" {
		return strings.Join(append(headers,
			"Content-Type: text/html; charset=UTF-8",
			"",
			msg.HTMLBody,
		), "\r\n")
	}

	return strings.Join(append(headers,
		"Content-Type: text/plain; charset=UTF-8",
		"",
		msg.TextBody,
	), "\r\n")
}

// randomHex returns n random bytes as a hex string. Used for MIME boundaries
// and OAuth state values.
func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
