package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Gmail GmailConfig `mapstructure:"gmail"`
	Send  SendConfig  `mapstructure:"send"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File is the process log file; every event is written here as well as
	// to stdout. Empty disables the file output.
	File string `mapstructure:"file"`
}

// GmailConfig holds Gmail API and OAuth2 configuration
type GmailConfig struct {
	// CredentialsFile is the path to the OAuth2 client credentials JSON
	// downloaded from the Google Cloud console.
	CredentialsFile string `mapstructure:"credentials_file"`
	// TokenFile is where the authorized user token is persisted. It is
	// created by the interactive flow and rewritten when refreshed.
	TokenFile string `mapstructure:"token_file"`
	// SenderAddress is the "From" email address. Empty means the
	// authenticated account's address ("me").
	SenderAddress string `mapstructure:"sender_address"`
	// SenderName is the display name for the sender.
	SenderName string `mapstructure:"sender_name"`
}

// SendConfig holds batch-send configuration
type SendConfig struct {
	// SentLogFile is the CSV recording successfully sent recipients.
	SentLogFile string `mapstructure:"sent_log_file"`
	// DelaySeconds is the fixed pause between consecutive sends.
	DelaySeconds float64 `mapstructure:"delay_seconds"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/coldmail")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("COLDMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "coldmail.log")

	// Gmail defaults
	v.SetDefault("gmail.credentials_file", "credentials.json")
	v.SetDefault("gmail.token_file", "token.json")
	v.SetDefault("gmail.sender_address", "")
	v.SetDefault("gmail.sender_name", "")

	// Send defaults
	v.SetDefault("send.sent_log_file", "sent.csv")
	v.SetDefault("send.delay_seconds", 0)
}
