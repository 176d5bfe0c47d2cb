package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for callback-redirect.
type Config struct {
	// CanonicalHost is the production host every redirect is pinned to.
	// It may carry a port but never a scheme or path.
	CanonicalHost string `env:"CANONICAL_HOST"`

	// Application paths on the canonical host.
	DefaultPath  string `env:"DEFAULT_PATH" envDefault:"/auth/callback"`
	LoginPath    string `env:"LOGIN_PATH" envDefault:"/auth"`
	CallbackPath string `env:"CALLBACK_PATH" envDefault:"/auth/callback"`

	// VerifyPath is where the identity provider sends recovery links.
	// Every other path is handled by the generic redirect endpoint.
	VerifyPath string `env:"VERIFY_PATH" envDefault:"/auth/v1/verify"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// MetricsAddr serves /metrics on a separate listener. Empty disables it.
	MetricsAddr string `env:"METRICS_ADDR"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.CanonicalHost = strings.ToLower(strings.TrimSpace(cfg.CanonicalHost))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CanonicalHost == "" {
		return fmt.Errorf("CANONICAL_HOST is required")
	}

	if err := validateHost(c.CanonicalHost); err != nil {
		return fmt.Errorf("CANONICAL_HOST: %w", err)
	}

	paths := []struct {
		name  string
		value string
	}{
		{"DEFAULT_PATH", c.DefaultPath},
		{"LOGIN_PATH", c.LoginPath},
		{"CALLBACK_PATH", c.CallbackPath},
		{"VERIFY_PATH", c.VerifyPath},
	}

	for _, p := range paths {
		if !strings.HasPrefix(p.value, "/") {
			return fmt.Errorf("%s must be an absolute path, got %q", p.name, p.value)
		}

		if strings.ContainsAny(p.value, "?# \t") {
			return fmt.Errorf("%s must be a bare path without query, fragment or whitespace", p.name)
		}
	}

	if strings.TrimRight(c.VerifyPath, "/") == "" {
		return fmt.Errorf("VERIFY_PATH must not be the root path")
	}

	// The verify route shadows whatever it is mounted on, so it must not
	// collide with a page the generic redirect sends users to.
	for _, p := range paths[:3] {
		if strings.TrimRight(p.value, "/") == strings.TrimRight(c.VerifyPath, "/") {
			return fmt.Errorf("VERIFY_PATH must differ from %s", p.name)
		}
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR must not be empty")
	}

	if c.MetricsAddr != "" && c.MetricsAddr == c.ListenAddr {
		return fmt.Errorf("METRICS_ADDR must differ from LISTEN_ADDR")
	}

	return nil
}

// validateHost accepts "host" or "host:port" and rejects anything that
// would let the value carry a scheme, credentials, path or query.
func validateHost(host string) error {
	if strings.ContainsAny(host, "/?#@ \t") || strings.Contains(host, "://") {
		return fmt.Errorf("must be a bare host, got %q", host)
	}

	u, err := url.Parse("https://" + host)
	if err != nil {
		return fmt.Errorf("invalid host %q: %w", host, err)
	}

	if u.Hostname() == "" {
		return fmt.Errorf("invalid host %q", host)
	}

	return nil
}

// CanonicalOrigin returns the https origin every redirect targets.
func (c *Config) CanonicalOrigin() string {
	return "https://" + c.CanonicalHost
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
