package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/ventas-system/internal/model"
)

type captureTransport struct {
	from string
	to   []string
	msg  []byte
	err  error
}

func (c *captureTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	c.from = from
	c.to = to
	c.msg = msg
	return c.err
}

func testConfirmation() Confirmation {
	return Confirmation{
		Pedido: model.Pedido{
			ID:    7,
			Total: decimal.RequireFromString("150.5"),
		},
		Cliente: model.Cliente{
			ID:        1,
			Nombre:    "Aarón",
			Apellido1: "Rivero",
		},
		Comercial: model.Comercial{
			ID:        2,
			Nombre:    "Daniel",
			Apellido1: "Sáez",
		},
	}
}

func TestConfirmationBody(t *testing.T) {
	body := ConfirmationBody(testConfirmation())

	want := "Estimado Aarón Rivero,\n\n" +
		"Su pedido ha sido registrado exitosamente.\n\n" +
		"Detalles del Pedido:\n" +
		"- Comercial: Daniel Sáez\n" +
		"- Total: $150.50\n\n" +
		"Gracias por su compra."
	assert.Equal(t, want, body)
}

func TestSendPedidoConfirmation_UsesConfiguredRecipient(t *testing.T) {
	transport := &captureTransport{}
	reg := prometheus.NewRegistry()
	n := NewNotifier(Config{From: "ventas@example.com", Recipient: "confirmaciones@example.com"}, transport, reg)
	n.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	err := n.SendPedidoConfirmation(context.Background(), testConfirmation())
	require.NoError(t, err)

	assert.Equal(t, "ventas@example.com", transport.from)
	assert.Equal(t, []string{"confirmaciones@example.com"}, transport.to)

	msg := string(transport.msg)
	assert.Contains(t, msg, "To: confirmaciones@example.com\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?Confirmaci=C3=B3n_de_Compra?=\r\n")
	assert.Contains(t, msg, "- Total: $150.50\r\n")
	assert.Equal(t, 1.0, testutil.ToFloat64(n.sent.WithLabelValues("sent")))
}

func TestSendPedidoConfirmation_NotConfigured(t *testing.T) {
	transport := &captureTransport{}
	n := NewNotifier(Config{From: "ventas@example.com"}, transport, nil)

	err := n.SendPedidoConfirmation(context.Background(), testConfirmation())
	require.ErrorIs(t, err, ErrNotConfigured)

	assert.Nil(t, transport.msg, "transport must not be called without recipient")
	assert.Equal(t, 1.0, testutil.ToFloat64(n.sent.WithLabelValues("failed")))
}

func TestSendPedidoConfirmation_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	transport := &captureTransport{err: boom}
	n := NewNotifier(Config{From: "a@example.com", Recipient: "b@example.com"}, transport, nil)

	err := n.SendPedidoConfirmation(context.Background(), testConfirmation())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "pedido 7")
}

func TestBuildMessage_HeadersAndCRLF(t *testing.T) {
	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	raw := string(BuildMessage("a@example.com", "b@example.com", "Hola", "uno\ndos", date))

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)

	assert.Contains(t, headers, "From: a@example.com")
	assert.Contains(t, headers, "MIME-Version: 1.0")
	assert.Contains(t, headers, "Date: Wed, 01 May 2024 10:00:00 +0000")
	assert.Equal(t, "uno\r\ndos\r\n", body)
}
