package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `urls:
  - https://acme.example/
  - https://acme.example/pricing
workers: 2
brand:
  names:
    - Acme Scheduler
    - Acme
  domains:
    - acme.example
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.URLs) != 2 || cfg.WorkerCount != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Brand.Names) != 2 || cfg.Brand.Names[0] != "Acme Scheduler" {
		t.Errorf("Brand.Names = %v", cfg.Brand.Names)
	}
	if len(cfg.Brand.Domains) != 1 || cfg.Brand.Domains[0] != "acme.example" {
		t.Errorf("Brand.Domains = %v", cfg.Brand.Domains)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("urls: [unclosed"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}
