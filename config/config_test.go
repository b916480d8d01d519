package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Backend != BackendBolt {
		t.Fatalf("expected bolt backend, got %q", cfg.Backend)
	}
	if cfg.DBPath != "data/shopsmart.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.Addr != "127.0.0.1:8082" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.BcryptCost != 10 || cfg.Dev {
		t.Fatalf("unexpected cost/dev %+v", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"SHOPSMART_BACKEND":      "postgres",
		"SHOPSMART_DATABASE_URL": "postgres://localhost/shop",
		"SHOPSMART_ADDR":         ":9000",
		"SHOPSMART_BCRYPT_COST":  "4",
		"SHOPSMART_DEV":          "true",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Backend != BackendPostgres || cfg.DatabaseURL != "postgres://localhost/shop" || cfg.Addr != ":9000" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.BcryptCost != 4 || !cfg.Dev {
		t.Fatalf("unexpected cost/dev %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"parse env:":             {"SHOPSMART_BCRYPT_COST": "lots"},
		"unknown backend":        {"SHOPSMART_BACKEND": "redis"},
		"SHOPSMART_DATABASE_URL": {"SHOPSMART_BACKEND": "postgres"},
		"out of range":           {"SHOPSMART_BCRYPT_COST": "2"},
	}
	for want, environment := range cases {
		_, err := Parse(environment)
		if err == nil {
			t.Fatalf("%v: expected error", environment)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %v", want, err)
		}
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SHOPSMART_BACKEND=memory\nSHOPSMART_ADDR=:7000\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	// variables already in the environment win over the file
	t.Setenv("SHOPSMART_ADDR", ":7100")
	t.Setenv("SHOPSMART_BACKEND", "")
	os.Unsetenv("SHOPSMART_BACKEND")

	cfg, err := Load(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Fatalf("expected backend from file, got %q", cfg.Backend)
	}
	if cfg.Addr != ":7100" {
		t.Fatalf("expected process env to win, got %q", cfg.Addr)
	}
}
