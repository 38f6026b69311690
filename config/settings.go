// Package config provides the configuration structures of the portfolio service.
// Settings are read from a YAML file whose values may reference environment
// variables as ${VAR} or ${VAR:-default}.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings contains every configuration option of the service.
type Settings struct {
	Env       string            `yaml:"env"` // local, dev, docker, prod
	HTTP      HTTPSettings      `yaml:"http"`
	Content   ContentSettings   `yaml:"content"`
	Database  DatabaseSettings  `yaml:"database"`
	Analytics AnalyticsSettings `yaml:"analytics"`
	SMTP      SMTPSettings      `yaml:"smtp"`
	Admin     AdminSettings     `yaml:"admin"`
	Privacy   PrivacySettings   `yaml:"privacy"`
	Jobs      JobSettings       `yaml:"jobs"`
	Filter    FilterSettings    `yaml:"filter"`
	Logging   LoggingSettings   `yaml:"logging"`
}

// HTTPSettings holds HTTP server settings.
type HTTPSettings struct {
	Port               int      `yaml:"port"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes       int64    `yaml:"max_body_bytes"`  // Request body limit for POST endpoints
	CORSOrigins        []string `yaml:"cors_origins"`    // Allowed origins; empty allows any
	TrustedProxies     []string `yaml:"trusted_proxies"` // Proxies whose X-Forwarded-For is honoured
}

// ContentSettings points at an optional directory overriding the embedded content.
type ContentSettings struct {
	Dir string `yaml:"dir"`
}

// DatabaseSettings holds the SQLite database location.
type DatabaseSettings struct {
	Path string `yaml:"path"`
}

// AnalyticsSettings holds filter analytics settings.
type AnalyticsSettings struct {
	DataFile         string `yaml:"data_file"` // Snapshot file; empty keeps events in memory only
	FlushIntervalSec int    `yaml:"flush_interval_sec"`
}

// SMTPSettings holds contact notification settings. Notifications are only
// logged unless host, username, password and recipient are all set.
type SMTPSettings struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// AdminSettings holds the operations endpoint credentials.
type AdminSettings struct {
	Token string `yaml:"token"` // Empty disables the /admin endpoints
}

// PrivacySettings controls visitor tracking.
type PrivacySettings struct {
	TrackVisitors        *bool  `yaml:"track_visitors"` // default true
	RetentionDays        int    `yaml:"retention_days"`
	CleanupIntervalHours int    `yaml:"cleanup_interval_hours"`
	HashSalt             string `yaml:"hash_salt"` // Random per process when empty
}

// JobSettings holds background worker settings.
type JobSettings struct {
	MaxWorkers int `yaml:"max_workers"`
}

// FilterSettings bounds listing requests.
type FilterSettings struct {
	MaxQueryLength int `yaml:"max_query_length"`
	MaxSelections  int `yaml:"max_selections"` // Per facet
}

// LoggingSettings holds logging settings.
type LoggingSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Default returns settings with every default applied.
func Default() Settings {
	var s Settings
	s.ApplyDefaults()
	return s
}

// Load reads settings from a YAML file. An empty path yields the defaults.
func Load(path string) (Settings, error) {
	var s Settings

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	s.ApplyDefaults()

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// ApplyDefaults fills empty fields with default values.
func (s *Settings) ApplyDefaults() {
	if s.Env == "" {
		s.Env = "local"
	}
	if s.HTTP.Port == 0 {
		s.HTTP.Port = 8080
	}
	if s.HTTP.ReadTimeoutSec <= 0 {
		s.HTTP.ReadTimeoutSec = 10
	}
	if s.HTTP.WriteTimeoutSec <= 0 {
		s.HTTP.WriteTimeoutSec = 10
	}
	if s.HTTP.ShutdownTimeoutSec <= 0 {
		s.HTTP.ShutdownTimeoutSec = 10
	}
	if s.HTTP.MaxBodyBytes <= 0 {
		s.HTTP.MaxBodyBytes = 64 << 10
	}
	if s.Database.Path == "" {
		s.Database.Path = "data/portfolio.db"
	}
	if s.Analytics.FlushIntervalSec <= 0 {
		s.Analytics.FlushIntervalSec = 30
	}
	if s.SMTP.Port == 0 {
		s.SMTP.Port = 587
	}
	if s.Privacy.TrackVisitors == nil {
		enabled := true
		s.Privacy.TrackVisitors = &enabled
	}
	if s.Privacy.RetentionDays <= 0 {
		s.Privacy.RetentionDays = 365
	}
	if s.Privacy.CleanupIntervalHours <= 0 {
		s.Privacy.CleanupIntervalHours = 24
	}
	if s.Privacy.HashSalt == "" {
		s.Privacy.HashSalt = randomHex(16)
	}
	if s.Jobs.MaxWorkers <= 0 {
		s.Jobs.MaxWorkers = 2
	}
	if s.Filter.MaxQueryLength <= 0 {
		s.Filter.MaxQueryLength = 200
	}
	if s.Filter.MaxSelections <= 0 {
		s.Filter.MaxSelections = 50
	}
}

// Validate checks the settings for correctness and reports every problem found.
func (s *Settings) Validate() error {
	var problems []string

	switch s.Env {
	case "local", "dev", "docker", "prod":
	default:
		problems = append(problems, fmt.Sprintf("env must be one of local, dev, docker, prod, got %q", s.Env))
	}
	if s.HTTP.Port <= 0 || s.HTTP.Port > 65535 {
		problems = append(problems, fmt.Sprintf("http.port must be between 1 and 65535, got %d", s.HTTP.Port))
	}
	if s.SMTP.Port <= 0 || s.SMTP.Port > 65535 {
		problems = append(problems, fmt.Sprintf("smtp.port must be between 1 and 65535, got %d", s.SMTP.Port))
	}
	if s.SMTP.Host != "" && s.SMTP.To == "" {
		problems = append(problems, "smtp.to is required when smtp.host is set")
	}
	switch strings.ToLower(s.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level must be debug, info, warn or error, got %q", s.Logging.Level))
	}
	if s.Admin.Token != "" && len(s.Admin.Token) < 16 {
		problems = append(problems, "admin.token must be at least 16 characters")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// VisitorTrackingEnabled reports whether page visits are recorded.
func (s *Settings) VisitorTrackingEnabled() bool {
	return s.Privacy.TrackVisitors == nil || *s.Privacy.TrackVisitors
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(b)
}
