package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.HTTP.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", s.HTTP.Port)
	}
	if s.Env != "local" {
		t.Errorf("expected default env local, got %q", s.Env)
	}
	if !s.VisitorTrackingEnabled() {
		t.Error("expected visitor tracking to be enabled by default")
	}
	if s.Privacy.HashSalt == "" {
		t.Error("expected a generated hash salt")
	}
	if s.Analytics.FlushIntervalSec != 30 {
		t.Errorf("expected default analytics flush interval 30s, got %d", s.Analytics.FlushIntervalSec)
	}
	if s.Filter.MaxQueryLength != 200 {
		t.Errorf("expected default max query length 200, got %d", s.Filter.MaxQueryLength)
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_PORT", "9090")
	t.Setenv("PORTFOLIO_TEST_EMPTY", "")

	path := writeConfig(t, `
env: prod
http:
  port: ${PORTFOLIO_TEST_PORT}
database:
  path: ${PORTFOLIO_TEST_EMPTY:-/var/lib/portfolio.db}
smtp:
  host: ${PORTFOLIO_TEST_UNSET:-}
privacy:
  track_visitors: false
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.HTTP.Port != 9090 {
		t.Errorf("expected port from environment, got %d", s.HTTP.Port)
	}
	if s.Database.Path != "/var/lib/portfolio.db" {
		t.Errorf("expected default for empty variable, got %q", s.Database.Path)
	}
	if s.SMTP.Host != "" {
		t.Errorf("expected empty smtp host, got %q", s.SMTP.Host)
	}
	if s.VisitorTrackingEnabled() {
		t.Error("expected visitor tracking to be disabled")
	}
}

func TestLoad_SampleConfig(t *testing.T) {
	s, err := Load("portfolio.yaml")
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if s.Jobs.MaxWorkers != 2 {
		t.Errorf("expected 2 workers, got %d", s.Jobs.MaxWorkers)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	if _, err := Load(writeConfig(t, "http: [not, a, map]")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *Settings)
		contains string
	}{
		{
			name:     "invalid port",
			mutate:   func(s *Settings) { s.HTTP.Port = 70000 },
			contains: "http.port",
		},
		{
			name:     "unknown env",
			mutate:   func(s *Settings) { s.Env = "staging" },
			contains: "env must be",
		},
		{
			name:     "smtp without recipient",
			mutate:   func(s *Settings) { s.SMTP.Host = "smtp.example.com" },
			contains: "smtp.to",
		},
		{
			name:     "bad log level",
			mutate:   func(s *Settings) { s.Logging.Level = "verbose" },
			contains: "logging.level",
		},
		{
			name:     "short admin token",
			mutate:   func(s *Settings) { s.Admin.Token = "short" },
			contains: "admin.token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)

			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error to mention %q, got %q", tt.contains, err.Error())
			}
		})
	}

	s := Default()
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_NAME", "value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${PORTFOLIO_TEST_NAME}", "value"},
		{"${PORTFOLIO_TEST_NAME:-fallback}", "value"},
		{"${PORTFOLIO_TEST_MISSING:-fallback}", "fallback"},
		{"${PORTFOLIO_TEST_MISSING}", ""},
		{"plain", "plain"},
	}

	for _, tc := range tests {
		if got := string(expandEnvVars([]byte(tc.input))); got != tc.expected {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
