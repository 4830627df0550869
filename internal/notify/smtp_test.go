package notify

import (
	"context"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startFakeSMTP поднимает минимальный SMTP-сервер на одно соединение и возвращает принятое тело письма.
func startFakeSMTP(t *testing.T) (string, string, <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	received := make(chan string, 1)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		_ = tp.PrintfLine("220 fake ESMTP")

		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}

			switch {
			case strings.HasPrefix(line, "EHLO"), strings.HasPrefix(line, "HELO"):
				_ = tp.PrintfLine("250 fake")
			case strings.HasPrefix(line, "MAIL FROM:"), strings.HasPrefix(line, "RCPT TO:"):
				_ = tp.PrintfLine("250 OK")
			case line == "DATA":
				_ = tp.PrintfLine("354 go ahead")
				data, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				received <- string(data)
				_ = tp.PrintfLine("250 queued")
			case line == "QUIT":
				_ = tp.PrintfLine("221 bye")
				return
			default:
				_ = tp.PrintfLine("502 not implemented")
			}
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	return host, port, received
}

func TestSMTPTransport_Send(t *testing.T) {
	host, port, received := startFakeSMTP(t)

	transport := NewSMTPTransport(Config{Host: host, Port: port, Timeout: 2 * time.Second})
	msg := BuildMessage("a@example.com", "b@example.com", "Hola", "cuerpo", time.Now())

	err := transport.Send(context.Background(), "a@example.com", []string{"b@example.com"}, msg)
	require.NoError(t, err)

	select {
	case data := <-received:
		assert.Contains(t, data, "To: b@example.com")
		assert.Contains(t, data, "cuerpo")
	case <-time.After(2 * time.Second):
		t.Fatalf("fake smtp server did not receive message")
	}
}

func TestSMTPTransport_DialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	transport := NewSMTPTransport(Config{Host: host, Port: port, Timeout: time.Second})
	err = transport.Send(context.Background(), "a@example.com", []string{"b@example.com"}, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp dial")
}

func TestSMTPTransport_MissingHost(t *testing.T) {
	transport := NewSMTPTransport(Config{})
	err := transport.Send(context.Background(), "a@example.com", []string{"b@example.com"}, []byte("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}
