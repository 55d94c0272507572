package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration, read from RECETARIO_* environment
// variables with local-development defaults.
type Config struct {
	// DataDir is the root for the database file and the uploads directory.
	DataDir string `mapstructure:"data_dir"`

	// SecretKey signs flash-message cookies.
	SecretKey string `mapstructure:"secret_key"`

	// Bind and Port configure the web server listener.
	Bind string `mapstructure:"bind"`
	Port int    `mapstructure:"port"`

	// ScrapeTimeoutSeconds bounds each network call the extraction
	// collaborator makes (page fetch and per-asset downloads).
	ScrapeTimeoutSeconds int `mapstructure:"scrape_timeout_seconds"`

	// DBMaxOpenConns / DBMaxIdleConns limit the connection pool.
	// 0 means use the sql.DB default.
	DBMaxOpenConns int `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns int `mapstructure:"db_max_idle_conns"`

	// DisabledTools lists MCP tool names to exclude from registration,
	// comma-separated in the environment variable.
	DisabledTools []string `mapstructure:"disabled_tools"`
}

// DefaultConfig returns the configuration used when no environment
// variables are set.
func DefaultConfig() *Config {
	return &Config{
		DataDir:              defaultDataDir(),
		SecretKey:            "dev-secret",
		Bind:                 "127.0.0.1",
		Port:                 8754,
		ScrapeTimeoutSeconds: 15,
	}
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("recetario")
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("secret_key", def.SecretKey)
	v.SetDefault("bind", def.Bind)
	v.SetDefault("port", def.Port)
	v.SetDefault("scrape_timeout_seconds", def.ScrapeTimeoutSeconds)
	v.SetDefault("db_max_open_conns", 0)
	v.SetDefault("db_max_idle_conns", 0)
	v.SetDefault("disabled_tools", "")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Viper reads the env value as a single string; split it ourselves.
	cfg.DisabledTools = splitList(v.GetString("disabled_tools"))

	if cfg.ScrapeTimeoutSeconds <= 0 {
		cfg.ScrapeTimeoutSeconds = def.ScrapeTimeoutSeconds
	}

	return cfg, nil
}

// ScrapeTimeout returns the per-call bound as a duration.
func (c *Config) ScrapeTimeout() time.Duration {
	return time.Duration(c.ScrapeTimeoutSeconds) * time.Second
}

// UploadDir returns the media directory under DataDir.
func (c *Config) UploadDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

// defaultDataDir resolves ~/.recetario, falling back to a relative
// directory when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recetario"
	}
	return filepath.Join(home, ".recetario")
}

// splitList splits a comma-separated value, trimming blanks.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
