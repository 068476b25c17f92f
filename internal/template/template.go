package template

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Template parsing errors
var (
	ErrMissingSubject = errors.New("template must begin with 'Subject: ...'")
)

// Template is a two-part email template: a subject line and a body, both
// carrying $name-style placeholders. Immutable once loaded.
type Template struct {
	Subject string
	Body    string
}

// Load parses an email template file.
//
// Expected format:
//
//	Subject: Your subject with $variables
//	Body line one...
//	Body line two...
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	if !strings.HasPrefix(strings.ToLower(lines[0]), "subject:") {
		return nil, ErrMissingSubject
	}

	subject := strings.TrimSpace(lines[0][len("subject:"):])
	body := strings.TrimSpace(strings.Join(lines[1:], "\n"))

	return &Template{Subject: subject, Body: body}, nil
}

// placeholderRe matches $$, ${name} and $name tokens.
var placeholderRe = regexp.MustCompile(`\$(?:\$|\{(\w+)\}|(\w+))`)

// Render substitutes $name and ${name} placeholders in s with values from
// fields. Unknown names are left literal and "$$" escapes a dollar sign, so
// a recipient missing a referenced field never fails a render.
func Render(s string, fields map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		if m == "$$" {
			return "$"
		}
		name := m[1:]
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}
		if v, ok := fields[name]; ok {
			return v
		}
		return m
	})
}

// RenderSubject renders the subject line for one recipient's fields.
func (t *Template) RenderSubject(fields map[string]string) string {
	return Render(t.Subject, fields)
}

// RenderBody renders the body for one recipient's fields.
func (t *Template) RenderBody(fields map[string]string) string {
	return Render(t.Body, fields)
}
