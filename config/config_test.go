package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rdfany.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Timeout.Std() != 30*time.Second {
		t.Fatalf("Timeout = %v, want 30s", cfg.Timeout.Std())
	}
	if cfg.DefaultOutput != "json" {
		t.Fatalf("DefaultOutput = %q, want json", cfg.DefaultOutput)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
headers:
  X-Api-Key: secret
  Authorization: Bearer tok
timeout: 10s
endpoint: https://example.org/sparql
default_output: table
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err = %v", err)
	}
	if cfg.Headers["X-Api-Key"] != "secret" || cfg.Headers["Authorization"] != "Bearer tok" {
		t.Fatalf("Headers = %v", cfg.Headers)
	}
	if cfg.Timeout.Std() != 10*time.Second {
		t.Fatalf("Timeout = %v, want 10s", cfg.Timeout.Std())
	}
	if cfg.Endpoint != "https://example.org/sparql" {
		t.Fatalf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.DefaultOutput != "table" {
		t.Fatalf("DefaultOutput = %q", cfg.DefaultOutput)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "endpoint: https://example.org/sparql\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err = %v", err)
	}
	if cfg.Timeout.Std() != 30*time.Second || cfg.DefaultOutput != "json" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "retries: 3\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted unknown key")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "timeout: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted invalid duration")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded on missing file")
	}
}
