package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/allaithw/taskboard/pkg/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	cfg, err := cm.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":3000" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.DefaultPriority != models.PriorityMedium || cfg.DefaultStatus != models.StatusTodo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SMTP.Host != "smtp.gmail.com" || cfg.SMTP.Port != 587 {
		t.Fatalf("unexpected SMTP defaults: %+v", cfg.SMTP)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `server:
  listen_addr: ":8080"
admin:
  password: "hunter2"
defaults:
  priority: high
smtp:
  host: mail.example.com
  port: 2525
`
	if err := os.WriteFile(filepath.Join(dir, ".taskboardrc"), []byte(content), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.ListenAddr)
	}
	if cfg.AdminPassword != "hunter2" {
		t.Fatalf("expected configured admin password, got %q", cfg.AdminPassword)
	}
	if cfg.DefaultPriority != models.PriorityHigh {
		t.Fatalf("expected high priority default, got %q", cfg.DefaultPriority)
	}
	if cfg.SMTP.Host != "mail.example.com" || cfg.SMTP.Port != 2525 {
		t.Fatalf("unexpected SMTP config: %+v", cfg.SMTP)
	}
	// Unset keys keep their defaults.
	if cfg.DefaultStatus != models.StatusTodo {
		t.Fatalf("expected default status todo, got %q", cfg.DefaultStatus)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "env-secret")
	t.Setenv("EMAIL_PASS", "env-smtp-pass")
	t.Setenv("EMAIL_USER", "board@example.com")

	cfg, err := NewConfigurationManager(t.TempDir()).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AdminPassword != "env-secret" {
		t.Fatalf("expected env admin password, got %q", cfg.AdminPassword)
	}
	if cfg.SMTP.Password != "env-smtp-pass" {
		t.Fatalf("expected env SMTP password, got %q", cfg.SMTP.Password)
	}
	if cfg.SMTP.Username != "board@example.com" || cfg.SMTP.From != "board@example.com" {
		t.Fatalf("EMAIL_USER should set username and default From, got %+v", cfg.SMTP)
	}
}

func TestValidateConfig(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	good := defaultConfig()
	if err := cm.ValidateConfig(good); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}

	bad := defaultConfig()
	bad.ListenAddr = ""
	bad.DefaultPriority = "urgent"
	bad.SMTP.Port = 99999
	err := cm.ValidateConfig(bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	for _, want := range []string{"listen_addr", "urgent", "99999"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error should mention %q: %v", want, err)
		}
	}

	if err := cm.ValidateConfig(nil); err == nil {
		t.Fatal("nil config must not validate")
	}
}
