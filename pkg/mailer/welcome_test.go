package mailer

import (
	"strings"
	"testing"
)

func TestRenderWelcome(t *testing.T) {
	msg, err := RenderWelcome(WelcomeData{Name: "Ann", Email: "ann@x.com", AppName: "Accounts"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if msg.To != "ann@x.com" || msg.Subject != "Welcome to Accounts" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if !strings.Contains(msg.Text, "Hi Ann,") || !strings.Contains(msg.HTML, "Welcome, Ann!") {
		t.Fatalf("expected name in both bodies:\n%s\n%s", msg.Text, msg.HTML)
	}
}

func TestRenderWelcomeEscapesHTML(t *testing.T) {
	msg, err := RenderWelcome(WelcomeData{Name: "<script>x</script>", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatalf("expected escaped html, got %s", msg.HTML)
	}
	if !strings.Contains(msg.Subject, "our service") {
		t.Fatalf("expected default app name, got %q", msg.Subject)
	}
}

func TestRenderWelcomeDefaultsName(t *testing.T) {
	msg, err := RenderWelcome(WelcomeData{Name: "  ", Email: "a@x.com", AppName: "Accounts"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(msg.Text, "Hi there,") {
		t.Fatalf("expected fallback greeting, got %q", msg.Text)
	}
}
