// Package config loads the CLI configuration from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// LocalAPIURL serves development requests on a loopback host.
	LocalAPIURL = "http://127.0.0.1:8000"
	// ProductionAPIURL serves every non-loopback host.
	ProductionAPIURL = "https://l4doc-api.onrender.com"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAPIURL    = "L4DOC_API_URL"
	EnvHost      = "L4DOC_HOST"
	EnvOutputDir = "L4DOC_OUTPUT_DIR"
	EnvLogLevel  = "L4DOC_LOG_LEVEL"
)

// ErrInvalid marks configuration values that fail validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config represents the application configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Output OutputConfig `yaml:"output"`
	Status StatusConfig `yaml:"status"`
	Log    LogConfig    `yaml:"log"`

	// ConfigPath is the file the configuration was read from (not serialized).
	ConfigPath string `yaml:"-"`
}

// APIConfig selects the document API.
type APIConfig struct {
	// BaseURL, when set, wins over host based resolution.
	BaseURL string `yaml:"base_url,omitempty"`
	// Host is the hostname the client considers itself served from.
	Host          string        `yaml:"host,omitempty"`
	LocalURL      string        `yaml:"local_url"`
	ProductionURL string        `yaml:"production_url"`
	Timeout       time.Duration `yaml:"timeout"`
	// Contract optionally points at an OpenAPI file or URL replacing the
	// bundled description; "live" reads {api}/openapi.json.
	Contract string `yaml:"contract,omitempty"`
}

// OutputConfig controls where generated documents land.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// StatusConfig tunes status message behaviour.
type StatusConfig struct {
	RevertAfter time.Duration `yaml:"revert_after"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			LocalURL:      LocalAPIURL,
			ProductionURL: ProductionAPIURL,
			// the hosted API cold-starts slowly
			Timeout: 90 * time.Second,
		},
		Output: OutputConfig{Dir: "."},
		Status: StatusConfig{RevertAfter: 5 * time.Second},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		cfg.ConfigPath = path
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		c.API.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvHost); ok && strings.TrimSpace(v) != "" {
		c.API.Host = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvOutputDir); ok && strings.TrimSpace(v) != "" {
		c.Output.Dir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = strings.TrimSpace(v)
	}
}

// Validate checks the resolved API address and enumerated settings.
func (c *Config) Validate() error {
	raw := c.ResolveAPIURL()
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api url %q must be an absolute http(s) URL", ErrInvalid, raw)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api timeout must not be negative", ErrInvalid)
	}
	if c.Status.RevertAfter < 0 {
		return fmt.Errorf("%w: status revert_after must not be negative", ErrInvalid)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// ResolveAPIURL returns the API base address without a trailing slash. An
// explicit BaseURL wins; otherwise a loopback Host selects LocalURL and any
// other host, including none, selects ProductionURL.
func (c *Config) ResolveAPIURL() string {
	if base := strings.TrimSpace(c.API.BaseURL); base != "" {
		return strings.TrimRight(base, "/")
	}
	if IsLoopbackHost(c.API.Host) {
		return strings.TrimRight(c.API.LocalURL, "/")
	}
	return strings.TrimRight(c.API.ProductionURL, "/")
}

// IsLoopbackHost reports whether host (optionally with a port) is
// "localhost" or "127.0.0.1".
func IsLoopbackHost(host string) bool {
	switch strings.ToLower(hostWithoutPort(strings.TrimSpace(host))) {
	case "localhost", "127.0.0.1":
		return true
	default:
		return false
	}
}

func hostWithoutPort(hostport string) string {
	if hostport == "" {
		return ""
	}
	if strings.Contains(hostport, ":") {
		host, _, err := net.SplitHostPort(hostport)
		if err == nil {
			return host
		}
	}
	return hostport
}

// NewLogger builds a slog logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (l LogConfig) level() (slog.Level, error) {
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return level, nil
}
