// Package mailer sends transactional email through SendGrid.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"campusHub/internal/config"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	ErrDeliveryFailed = errors.New("email delivery failed")
	ErrNoRecipient    = errors.New("email has no recipient")
)

type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Client
type Client interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type Mailer struct {
	log    *slog.Logger
	client Client
	from   *mail.Email
}

func New(log *slog.Logger, cfg config.Mailer) *Mailer {
	return NewWithClient(log, sendgrid.NewSendClient(cfg.APIKey), cfg.FromEmail, cfg.FromName)
}

func NewWithClient(log *slog.Logger, client Client, fromEmail, fromName string) *Mailer {
	return &Mailer{
		log:    log.With(slog.String("component", "mailer")),
		client: client,
		from:   mail.NewEmail(fromName, fromEmail),
	}
}

// Send delivers msg. Upstream failures are wrapped in ErrDeliveryFailed
// with the provider's details in the message.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	const op = "mailer.Send"

	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRecipient)
	}

	text := msg.Text
	if text == "" && msg.HTML == "" {
		text = " "
	}

	email := mail.NewSingleEmail(m.from, msg.Subject, mail.NewEmail(msg.ToName, msg.To), text, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w: %s", op, ErrDeliveryFailed, err.Error())
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %w: status %d: %s", op, ErrDeliveryFailed, resp.StatusCode, resp.Body)
	}

	m.log.Debug("email sent", slog.String("subject", msg.Subject), slog.Int("status", resp.StatusCode))

	return nil
}
