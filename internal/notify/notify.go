// Package notify отправляет письма-подтверждения о созданных заказах.
package notify

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmeshcher/ventas-system/internal/model"
)

// ConfirmationSubject тема письма-подтверждения.
const ConfirmationSubject = "Confirmación de Compra"

// ErrNotConfigured возвращается, если не заданы адрес отправителя или получателя.
var ErrNotConfigured = errors.New("mail sender or recipient not configured")

// Config содержит параметры почтовой доставки. Передаётся явно, глобальные настройки не читаются.
type Config struct {
	From      string
	Recipient string
	Host      string
	Port      string
	Username  string
	Password  string
	Timeout   time.Duration
}

// Transport доставляет готовое сообщение.
type Transport interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// Confirmation содержит данные для письма о заказе.
type Confirmation struct {
	Pedido    model.Pedido
	Cliente   model.Cliente
	Comercial model.Comercial
}

// Notifier формирует и отправляет письма-подтверждения.
type Notifier struct {
	cfg       Config
	transport Transport
	sent      *prometheus.CounterVec
	now       func() time.Time
}

// NewNotifier создаёт отправителя писем. reg может быть nil, тогда метрики не регистрируются.
func NewNotifier(cfg Config, transport Transport, reg prometheus.Registerer) *Notifier {
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ventas",
		Name:      "notifications_total",
		Help:      "Order confirmation emails by delivery result.",
	}, []string{"result"})
	if reg != nil {
		reg.MustRegister(sent)
	}

	return &Notifier{
		cfg:       cfg,
		transport: transport,
		sent:      sent,
		now:       time.Now,
	}
}

// SendPedidoConfirmation отправляет подтверждение заказа на настроенный адрес.
func (n *Notifier) SendPedidoConfirmation(ctx context.Context, c Confirmation) error {
	err := n.send(ctx, c)
	if err != nil {
		n.sent.WithLabelValues("failed").Inc()
		return err
	}
	n.sent.WithLabelValues("sent").Inc()
	return nil
}

func (n *Notifier) send(ctx context.Context, c Confirmation) error {
	if n.cfg.From == "" || n.cfg.Recipient == "" {
		return ErrNotConfigured
	}

	msg := BuildMessage(n.cfg.From, n.cfg.Recipient, ConfirmationSubject, ConfirmationBody(c), n.now())
	if err := n.transport.Send(ctx, n.cfg.From, []string{n.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("send confirmation for pedido %d: %w", c.Pedido.ID, err)
	}
	return nil
}

// ConfirmationBody формирует текст письма.
func ConfirmationBody(c Confirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimado %s %s,\n\n", c.Cliente.Nombre, c.Cliente.Apellido1)
	b.WriteString("Su pedido ha sido registrado exitosamente.\n\n")
	b.WriteString("Detalles del Pedido:\n")
	fmt.Fprintf(&b, "- Comercial: %s %s\n", c.Comercial.Nombre, c.Comercial.Apellido1)
	fmt.Fprintf(&b, "- Total: $%s\n\n", c.Pedido.Total.StringFixed(2))
	b.WriteString("Gracias por su compra.")
	return b.String()
}

// BuildMessage собирает письмо в формате RFC 5322 с телом text/plain в UTF-8.
func BuildMessage(from, to, subject, body string, date time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
