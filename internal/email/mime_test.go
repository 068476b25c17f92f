package email

import (
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseMultipart parses a raw message and returns its alternative parts,
// keyed by content type.
func parseMultipart(t *testing.T, raw string) map[string]string {
	t.Helper()

	m, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(m.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)
	require.NotEmpty(t, params["boundary"])

	parts := map[string]string{}
	mr := multipart.NewReader(m.Body, params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(p)
		require.NoError(t, err)
		parts[p.Header.Get("Content-Type")] = string(body)
	}
	return parts
}

func TestBuildMIME_MultipartAlternative(t *testing.T) {
	g := &GmailSender{senderAddress: "s@example.com", senderName: "Sender"}
	raw := g.buildMIME(Message{
		To:       "a@example.com",
		Subject:  "Hello",
		TextBody: "plain body",
		HTMLBody: "<p>html body</p>",
	})

	m, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Sender <s@example.com>", m.Header.Get("From"))
	assert.Equal(t, "a@example.com", m.Header.Get("To"))
	assert.Equal(t, "Hello", m.Header.Get("Subject"))

	parts := parseMultipart(t, raw)
	require.Len(t, parts, 2)
	assert.Equal(t, "plain body", strings.TrimRight(parts["text/plain; charset=UTF-8"], "\r\n"))
	assert.Equal(t, "<p>html body</p>", strings.TrimRight(parts["text/html; charset=UTF-8"], "\r\n"))
}

func TestBuildMIME_BoundaryRandomPerMessage(t *testing.T) {
	g := &GmailSender{}
	msg := Message{To: "a@example.com", Subject: "Hi", TextBody: "t", HTMLBody: "<p>t</p>"}

	first := g.buildMIME(msg)
	second := g.buildMIME(msg)

	boundary := func(raw string) string {
		m, err := mail.ReadMessage(strings.NewReader(raw))
		require.NoError(t, err)
		_, params, err := mime.ParseMediaType(m.Header.Get("Content-Type"))
		require.NoError(t, err)
		return params["boundary"]
	}

	assert.NotEqual(t, boundary(first), boundary(second))
}

func TestBuildMIME_BoundaryLikeBodySurvives(t *testing.T) {
	g := &GmailSender{}
	text := "line one\n--coldmail_000000000000000000000000--\nline three"
	raw := g.buildMIME(Message{
		To:       "a@example.com",
		Subject:  "Hi",
		TextBody: text,
		HTMLBody: "<p>safe</p>",
	})

	parts := parseMultipart(t, raw)
	require.Len(t, parts, 2, "a boundary-shaped body line must not split the message")
	assert.Contains(t, parts["text/plain; charset=UTF-8"], "line three")
}

func TestRandomHex(t *testing.T) {
	a := randomHex(12)
	b := randomHex(12)

	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
}
