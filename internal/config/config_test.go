package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldmail/coldmail/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "coldmail.log", cfg.Log.File)
	assert.Equal(t, "credentials.json", cfg.Gmail.CredentialsFile)
	assert.Equal(t, "token.json", cfg.Gmail.TokenFile)
	assert.Equal(t, "sent.csv", cfg.Send.SentLogFile)
	assert.Equal(t, 0.0, cfg.Send.DelaySeconds)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	content := `
log:
  level: debug
gmail:
  sender_address: ada@example.com
  sender_name: Ada
send:
  delay_seconds: 1.5
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(content), 0644))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "ada@example.com", cfg.Gmail.SenderAddress)
	assert.Equal(t, "Ada", cfg.Gmail.SenderName)
	assert.Equal(t, 1.5, cfg.Send.DelaySeconds)
	assert.Equal(t, "token.json", cfg.Gmail.TokenFile, "unset keys keep defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COLDMAIL_GMAIL_TOKEN_FILE", "/tmp/other-token.json")
	t.Setenv("COLDMAIL_LOG_LEVEL", "warn")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other-token.json", cfg.Gmail.TokenFile)
	assert.Equal(t, "warn", cfg.Log.Level)
}
