package email

import (
	"html"
	"regexp"
	"strings"
)

var urlRe = regexp.MustCompile(`https?://[^\s]+`)

// NewMessage builds the plain+HTML message for one recipient. The HTML body
// is derived from the rendered plain text; the plain text itself is carried
// unchanged.
func NewMessage(to, subject, textBody string) Message {
	return Message{
		To:       to,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: PlainToHTML(textBody),
	}
}

// PlainToHTML converts plain text to HTML, auto-linking bare URLs and
// preserving line breaks. Escaping happens before linking, so link targets
// carry entity-escaped characters rather than raw ones.
func PlainToHTML(text string) string {
	escaped := html.EscapeString(text)
	linked := urlRe.ReplaceAllString(escaped, `<a href="$0">$0</a>`)
	return strings.Join(strings.Split(linked, "\n"), "<br>\n")
}
