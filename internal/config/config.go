// Package config содержит логику чтения конфигурации сервиса продаж.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultRunAddress  = "localhost:8080"
	defaultSMTPHost    = "localhost"
	defaultSMTPPort    = "587"
	defaultSMTPTimeout = 10 * time.Second
)

// Config содержит параметры конфигурации сервиса продаж.
type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseURI string `env:"DATABASE_URI"`

	// Параметры отправки подтверждений заказов.
	MailFrom              string        `env:"DEFAULT_FROM_EMAIL"`
	ConfirmationRecipient string        `env:"CONFIRMATION_EMAIL_RECIPIENT"`
	SMTPHost              string        `env:"EMAIL_HOST"`
	SMTPPort              string        `env:"EMAIL_PORT"`
	SMTPUsername          string        `env:"EMAIL_HOST_USER"`
	SMTPPassword          string        `env:"EMAIL_HOST_PASSWORD"`
	SMTPTimeout           time.Duration `env:"EMAIL_TIMEOUT"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envMailFrom := cfg.MailFrom
	envRecipient := cfg.ConfirmationRecipient
	envSMTPHost := cfg.SMTPHost
	envSMTPPort := cfg.SMTPPort

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.MailFrom, "from", "", "sender address for order confirmations")
	flag.StringVar(&cfg.ConfirmationRecipient, "to", "", "recipient address for order confirmations")
	flag.StringVar(&cfg.SMTPHost, "smtp-host", defaultSMTPHost, "SMTP server host")
	flag.StringVar(&cfg.SMTPPort, "smtp-port", defaultSMTPPort, "SMTP server port")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envMailFrom != "" {
		cfg.MailFrom = envMailFrom
	}
	if envRecipient != "" {
		cfg.ConfirmationRecipient = envRecipient
	}
	if envSMTPHost != "" {
		cfg.SMTPHost = envSMTPHost
	}
	if envSMTPPort != "" {
		cfg.SMTPPort = envSMTPPort
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.SMTPTimeout <= 0 {
		cfg.SMTPTimeout = defaultSMTPTimeout
	}

	return cfg, nil
}
