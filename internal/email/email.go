package email

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Message is a rendered notification. Text is the plain fallback for clients
// that do not render HTML.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. Used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email not delivered (local)", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: deliver to %s: %w", msg.To, err)
	}
	return nil
}

func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger.With("component", "email")}
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

// Welcome renders the message sent after a successful registration.
func Welcome(to string) Message {
	return Message{
		To:      to,
		Subject: "Welcome to Estate Listings",
		HTML: fmt.Sprintf(
			`<p>Your account <b>%s</b> is ready.</p><p>You can now publish your first listing.</p>`,
			html.EscapeString(to),
		),
		Text: fmt.Sprintf("Your account %s is ready. You can now publish your first listing.", to),
	}
}
