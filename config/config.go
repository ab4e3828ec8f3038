package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScheme = "https"
	DefaultHost   = "www.google.com"
	DefaultPath   = "/recaptcha/api/siteverify"

	DefaultTimeout = 5 * time.Second
)

// Endpoint locates the siteverify service. Zero-value fields fall back
// to the reCAPTCHA defaults, so tests can point at a local stub by
// filling in only what they need.
type Endpoint struct {
	Scheme string `yaml:"scheme"`
	Host   string `yaml:"host"`
	Path   string `yaml:"path"`
	Port   int    `yaml:"port"`
}

type CredentialsConfig struct {
	SiteKey string `yaml:"site_key"`
	Secret  string `yaml:"secret"`
}

type Config struct {
	Credentials    CredentialsConfig `yaml:"credentials"`
	Endpoint       Endpoint          `yaml:"endpoint"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// Timeout converts the configured seconds into a duration, falling back
// to DefaultTimeout when unset.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the canonical reCAPTCHA siteverify endpoint.
func Default() Endpoint {
	return Endpoint{Scheme: DefaultScheme, Host: DefaultHost, Path: DefaultPath}
}

// VerifyURL renders the full endpoint URL. The port is omitted when it
// matches the scheme default, so resty sees the canonical form.
func (e Endpoint) VerifyURL() string {
	scheme := e.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	host := e.Host
	if host == "" {
		host = DefaultHost
	}
	path := e.Path
	if path == "" {
		path = DefaultPath
	}
	if e.Port != 0 && e.Port != schemeDefaultPort(scheme) {
		return fmt.Sprintf("%s://%s:%d%s", scheme, host, e.Port, path)
	}
	return fmt.Sprintf("%s://%s%s", scheme, host, path)
}

func schemeDefaultPort(scheme string) int {
	if scheme == "http" {
		return 80
	}
	return 443
}

// Load reads a yaml config file. Missing endpoint fields keep their
// defaults; a missing timeout keeps DefaultTimeout.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
