package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVerifyURL(t *testing.T) {
	cases := []struct {
		name     string
		endpoint Endpoint
		want     string
	}{
		{
			name:     "zero value falls back to defaults",
			endpoint: Endpoint{},
			want:     "https://www.google.com/recaptcha/api/siteverify",
		},
		{
			name:     "default constructor",
			endpoint: Default(),
			want:     "https://www.google.com/recaptcha/api/siteverify",
		},
		{
			name:     "explicit default port is omitted",
			endpoint: Endpoint{Scheme: "https", Host: "example.com", Path: "/verify", Port: 443},
			want:     "https://example.com/verify",
		},
		{
			name:     "http default port is omitted",
			endpoint: Endpoint{Scheme: "http", Host: "example.com", Path: "/verify", Port: 80},
			want:     "http://example.com/verify",
		},
		{
			name:     "custom port is kept",
			endpoint: Endpoint{Scheme: "http", Host: "127.0.0.1", Path: "/siteverify", Port: 8081},
			want:     "http://127.0.0.1:8081/siteverify",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.endpoint.VerifyURL(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recaptcha-toolbox-configs.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
credentials:
  site_key: the-site-key
  secret: the-secret
endpoint:
  scheme: http
  host: 127.0.0.1
  port: 8081
timeout_seconds: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Credentials.SiteKey != "the-site-key" || cfg.Credentials.Secret != "the-secret" {
		t.Errorf("unexpected credentials: %+v", cfg.Credentials)
	}
	if got := cfg.Endpoint.VerifyURL(); got != "http://127.0.0.1:8081/recaptcha/api/siteverify" {
		t.Errorf("unexpected verify URL: %q", got)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Timeout())
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
credentials:
  secret: the-secret
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Endpoint.VerifyURL(); got != "https://www.google.com/recaptcha/api/siteverify" {
		t.Errorf("expected the canonical endpoint, got %q", got)
	}
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("expected DefaultTimeout, got %v", cfg.Timeout())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
