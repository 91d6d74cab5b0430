package email_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/estate-listings/internal/email"
)

func TestWelcome_EscapesAddress(t *testing.T) {
	msg := email.Welcome(`<x>@example.com`)
	if msg.Subject == "" {
		t.Fatal("empty subject")
	}
	if msg.To != `<x>@example.com` {
		t.Errorf("To = %q", msg.To)
	}
	if strings.Contains(msg.HTML, "<x>") {
		t.Errorf("address not escaped: %s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "&lt;x&gt;@example.com") {
		t.Errorf("escaped address missing: %s", msg.HTML)
	}
	if !strings.Contains(msg.Text, `<x>@example.com`) {
		t.Errorf("plain text should carry the raw address: %s", msg.Text)
	}
}

func TestNewSender_LocalLogsInsteadOfSending(t *testing.T) {
	s := email.NewSender("local", "", "", slog.Default())
	if _, ok := s.(*email.LogSender); !ok {
		t.Fatalf("sender = %T, want *email.LogSender", s)
	}
	if err := s.Send(context.Background(), email.Welcome("a@example.com")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewSender_ProductionUsesResend(t *testing.T) {
	s := email.NewSender("production", "re_test", "noreply@example.com", slog.Default())
	if _, ok := s.(*email.ResendSender); !ok {
		t.Fatalf("sender = %T, want *email.ResendSender", s)
	}
}
