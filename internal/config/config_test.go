package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("data dir = %q, want data", cfg.DataDir)
	}
	if cfg.StoreBackend != "file" {
		t.Fatalf("backend = %q, want file", cfg.StoreBackend)
	}
	if cfg.WhatsAppNotify {
		t.Fatal("expected notifications disabled by default")
	}
	if cfg.WhatsAppDataDir != cfg.DataDir {
		t.Fatalf("whatsapp dir = %q, want %q", cfg.WhatsAppDataDir, cfg.DataDir)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/event-rsvp")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("WHATSAPP_NOTIFY", "true")
	t.Setenv("WHATSAPP_DATA_DIR", "/var/lib/whatsapp")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/var/lib/event-rsvp" || cfg.StoreBackend != "sqlite" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.WhatsAppNotify || cfg.WhatsAppDataDir != "/var/lib/whatsapp" {
		t.Fatalf("whatsapp cfg = %+v", cfg)
	}
}

func TestLoadConfigDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ADMIN_PASSPHRASE=segredo\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("ADMIN_PASSPHRASE", "")
	os.Unsetenv("ADMIN_PASSPHRASE")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AdminPassphrase != "segredo" {
		t.Fatalf("passphrase = %q, want segredo", cfg.AdminPassphrase)
	}
}

func TestLoadConfigInvalidBool(t *testing.T) {
	t.Setenv("WHATSAPP_NOTIFY", "talvez")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
