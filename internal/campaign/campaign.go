package campaign

import (
	"context"
	"time"

	"github.com/coldmail/coldmail/internal/email"
	"github.com/coldmail/coldmail/internal/logger"
	"github.com/coldmail/coldmail/internal/recipient"
	"github.com/coldmail/coldmail/internal/template"
)

// SendResult records the outcome of one send attempt. Results are created in
// recipient order and never mutated afterwards.
type SendResult struct {
	Email   string
	SentAt  time.Time
	Success bool
	Error   string
}

// Runner drives the per-recipient send loop.
type Runner struct {
	sender email.Sender
	tmpl   *template.Template
	delay  time.Duration
	sleep  func(time.Duration)
	log    *logger.Logger
}

// NewRunner creates a new Runner. delay is the fixed pause inserted between
// consecutive sends; zero disables it.
func NewRunner(sender email.Sender, tmpl *template.Template, delay time.Duration, log *logger.Logger) *Runner {
	return &Runner{
		sender: sender,
		tmpl:   tmpl,
		delay:  delay,
		sleep:  time.Sleep,
		log:    log.WithComponent("campaign"),
	}
}

// Run sends one message per recipient, in order. Every recipient yields
// exactly one result; a transport failure is captured into its result and
// the loop continues with the next recipient.
func (r *Runner) Run(ctx context.Context, recipients []recipient.Recipient) []SendResult {
	results := make([]SendResult, 0, len(recipients))

	for i, rcpt := range recipients {
		results = append(results, r.sendOne(ctx, rcpt))

		if r.delay > 0 && i < len(recipients)-1 {
			r.sleep(r.delay)
		}
	}

	return results
}

func (r *Runner) sendOne(ctx context.Context, rcpt recipient.Recipient) SendResult {
	res := SendResult{
		Email:  rcpt.Email,
		SentAt: time.Now().UTC().Truncate(time.Second),
	}

	// A row with a blank email still produces a result, it just never
	// reaches the transport.
	if rcpt.Email == "" {
		res.Error = "recipient row has no email address"
		r.log.Error().Str("error", res.Error).Msg("send failed")
		return res
	}

	msg := email.NewMessage(
		rcpt.Email,
		r.tmpl.RenderSubject(rcpt.Fields),
		r.tmpl.RenderBody(rcpt.Fields),
	)

	if err := r.sender.Send(ctx, msg); err != nil {
		res.Error = err.Error()
		r.log.Error().Str("email", rcpt.Email).Err(err).Msg("send failed")
		return res
	}

	res.Success = true
	r.log.Info().Str("email", rcpt.Email).Msg("sent")
	return res
}

// Summary counts successful and failed results.
func Summary(results []SendResult) (sent, failed int) {
	for _, res := range results {
		if res.Success {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed
}
