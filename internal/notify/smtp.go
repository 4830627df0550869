package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"
)

const defaultSMTPTimeout = 10 * time.Second

// SMTPTransport отправляет письма через SMTP-сервер.
// Порт 465 использует TLS сразу, остальные порты переходят на STARTTLS, если сервер его поддерживает.
type SMTPTransport struct {
	host     string
	port     string
	username string
	password string
	timeout  time.Duration
}

// NewSMTPTransport создаёт SMTP-транспорт по конфигурации.
func NewSMTPTransport(cfg Config) *SMTPTransport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}
	return &SMTPTransport{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		timeout:  timeout,
	}
}

// Send доставляет сообщение. Общее время ограничено таймаутом транспорта.
func (t *SMTPTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	if t.host == "" {
		return fmt.Errorf("smtp host: %w", ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	conn, err := t.dial(ctx)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if t.port != "465" {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: t.host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	if t.username != "" {
		if err := client.Auth(smtp.PlainAuth("", t.username, t.password, t.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", addr, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

func (t *SMTPTransport) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(t.host, t.port)
	if t.port == "465" {
		d := &tls.Dialer{Config: &tls.Config{ServerName: t.host}}
		return d.DialContext(ctx, "tcp", addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}
