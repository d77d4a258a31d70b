package forge

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can say "10s" or "1m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds client settings loaded from a YAML file. Environment
// variables referenced in the file (e.g. token: ${FORGE_TOKEN}) are expanded
// before parsing.
type Config struct {
	BaseURL   string   `yaml:"base_url"`
	Token     string   `yaml:"token"`
	UserAgent string   `yaml:"user_agent"`
	Timeout   Duration `yaml:"timeout"`
}

// LoadConfig reads and validates a client config from path. Missing optional
// fields fall back to defaults; FORGE_TOKEN overrides the token when set.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	expanded := os.ExpandEnv(string(raw))
	expanded = strings.ReplaceAll(expanded, "\r\n", "\n")

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if tok := os.Getenv("FORGE_TOKEN"); tok != "" {
		cfg.Token = tok
	}

	return cfg, cfg.Validate()
}

// Validate checks the config for mistakes that would produce confusing
// failures later.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// NewClientFromConfig builds a Client from a validated config.
func NewClientFromConfig(cfg Config) *Client {
	t := NewHTTPTransport(cfg.BaseURL, cfg.Token)
	if cfg.UserAgent != "" {
		t.WithUserAgent(cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		t.client.Timeout = time.Duration(cfg.Timeout)
	}
	return NewClient(t)
}
