package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coldmail/coldmail/internal/campaign"
	"github.com/coldmail/coldmail/internal/config"
	"github.com/coldmail/coldmail/internal/email"
	"github.com/coldmail/coldmail/internal/logger"
	"github.com/coldmail/coldmail/internal/recipient"
	"github.com/coldmail/coldmail/internal/template"
)

var (
	csvPath      string
	templatePath string
	delaySeconds float64
	previewIndex int
	previewHTML  bool
)

var rootCmd = &cobra.Command{
	Use:   "coldmail",
	Short: "Send personalized bulk emails via the Gmail API",
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one personalized email per recipient in the CSV",
	RunE:  runSend,
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Run the OAuth2 flow and store the Gmail token",
	RunE:  runAuth,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a recipient's message without sending it",
	RunE:  runPreview,
}

func init() {
	for _, cmd := range []*cobra.Command{sendCmd, previewCmd} {
		cmd.Flags().StringVar(&csvPath, "csv", "", "path to the recipient CSV (required)")
		cmd.Flags().StringVar(&templatePath, "template", "", "path to the email template (required)")
		cmd.MarkFlagRequired("csv")
		cmd.MarkFlagRequired("template")
	}
	sendCmd.Flags().Float64Var(&delaySeconds, "delay", 0, "seconds to wait between sends")
	previewCmd.Flags().IntVar(&previewIndex, "index", 0, "recipient row to render (0-based)")
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "also show the derived HTML body")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(previewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)

	tmpl, err := template.Load(templatePath)
	if err != nil {
		return err
	}

	recipients, err := recipient.Load(csvPath)
	if err != nil {
		return err
	}
	log.Info().Int("recipients", len(recipients)).Str("file", csvPath).Msg("recipients loaded")

	ctx := cmd.Context()

	ts, err := email.Authorize(ctx, cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile)
	if err != nil {
		return err
	}

	sender, err := email.NewGmailSender(ctx, ts, cfg.Gmail.SenderAddress, cfg.Gmail.SenderName)
	if err != nil {
		return err
	}

	// The --delay flag overrides the configured delay.
	delay := cfg.Send.DelaySeconds
	if cmd.Flags().Changed("delay") {
		delay = delaySeconds
	}

	runner := campaign.NewRunner(sender, tmpl, time.Duration(delay*float64(time.Second)), log)
	results := runner.Run(ctx, recipients)

	if err := campaign.WriteSentLog(cfg.Send.SentLogFile, results); err != nil {
		return err
	}

	sent, failed := campaign.Summary(results)
	if sent > 0 {
		log.Info().Str("file", cfg.Send.SentLogFile).Msg("sent log written")
	}
	log.Info().Int("sent", sent).Int("failed", failed).Msg("done")

	return nil
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)

	if _, err := email.Authorize(cmd.Context(), cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile); err != nil {
		return err
	}

	log.Info().Str("file", cfg.Gmail.TokenFile).Msg("token stored")
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	tmpl, err := template.Load(templatePath)
	if err != nil {
		return err
	}

	recipients, err := recipient.Load(csvPath)
	if err != nil {
		return err
	}

	if previewIndex < 0 || previewIndex >= len(recipients) {
		return fmt.Errorf("recipient index %d out of range (0..%d)", previewIndex, len(recipients)-1)
	}

	rcpt := recipients[previewIndex]
	msg := email.NewMessage(
		rcpt.Email,
		tmpl.RenderSubject(rcpt.Fields),
		tmpl.RenderBody(rcpt.Fields),
	)

	fmt.Printf("To: %s\nSubject: %s\n\n%s\n", msg.To, msg.Subject, msg.TextBody)
	if previewHTML {
		fmt.Printf("\n--- HTML ---\n%s\n", msg.HTMLBody)
	}

	return nil
}
