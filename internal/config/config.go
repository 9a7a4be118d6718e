// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PORTFOLIO_PORT
const EnvPrefix = "PORTFOLIO"

// Config represents the runtime configuration.
// Precedence: environment > config file > defaults. CLI flags are applied on top by the caller.
type Config struct {
	// Server
	Port           int    `mapstructure:"port" yaml:"port"`
	AllowedOrigins string `mapstructure:"allowed_origins" yaml:"allowed_origins"` // Comma-separated CORS origins ("*" for any)
	RateLimit      bool   `mapstructure:"rate_limit" yaml:"rate_limit"`

	// Editing
	Template      string        `mapstructure:"template" yaml:"template"`     // Default template name
	OutputDir     string        `mapstructure:"output_dir" yaml:"output_dir"` // Where exports are written
	SessionTTL    time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`

	// Uploads
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`

	// Text generation
	APIKey          string            `mapstructure:"api_key" yaml:"api_key"` // Gemini API key
	GenerateTimeout time.Duration     `mapstructure:"generate_timeout" yaml:"generate_timeout"`
	Models          map[string]string `mapstructure:"models" yaml:"models"` // Model name per tier: lite, standard, advanced

	// PDF export
	ChromePath string `mapstructure:"chrome_path" yaml:"chrome_path"`

	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		Port:            8080,
		AllowedOrigins:  "*",
		RateLimit:       true,
		Template:        "minimal",
		OutputDir:       ".",
		SessionTTL:      2 * time.Hour,
		SweepInterval:   5 * time.Minute,
		MaxUploadBytes:  5 * 1024 * 1024,
		GenerateTimeout: 60 * time.Second,
	}
}

// Load reads configuration from an optional file plus PORTFOLIO_* environment variables.
// An explicit path that cannot be read is an error; with no path only env and defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("allowed_origins", d.AllowedOrigins)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("template", d.Template)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("session_ttl", d.SessionTTL)
	v.SetDefault("sweep_interval", d.SweepInterval)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("api_key", "")
	v.SetDefault("generate_timeout", d.GenerateTimeout)
	v.SetDefault("chrome_path", "")
	v.SetDefault("verbose", false)

	// The Gemini key keeps its conventional name alongside the prefixed one
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.Template == "" {
		return fmt.Errorf("config error: 'template' must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be positive")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("config error: 'session_ttl' must be non-negative")
	}
	if c.SessionTTL > 0 && c.SweepInterval <= 0 {
		return fmt.Errorf("config error: 'sweep_interval' must be positive when 'session_ttl' is set")
	}
	if c.GenerateTimeout < 0 {
		return fmt.Errorf("config error: 'generate_timeout' must be non-negative")
	}
	for tier := range c.Models {
		switch tier {
		case "lite", "standard", "advanced":
		default:
			return fmt.Errorf("config error: 'models.%s' is not a model tier (lite, standard, advanced)", tier)
		}
	}
	return nil
}

// Origins splits AllowedOrigins into trimmed entries
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
