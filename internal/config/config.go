package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "FINRO_CONFIG"
	websiteDirEnv = "FINRO_WEBSITE_DIR"
	baseURLEnv    = "FINRO_BASE_URL"
	logLevelEnv   = "FINRO_LOG_LEVEL"
	historyEnv    = "FINRO_HISTORY_PATH"
)

// Config holds high-level settings required across the application. One
// immutable value is built at startup and passed into construction; there
// are no package-level path globals.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Paths   PathsConfig   `yaml:"paths"`
	HTTP    HTTPConfig    `yaml:"http"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig identifies the published site.
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"baseUrl"`
	Author  string `yaml:"author"`
}

// PathsConfig anchors all on-disk state under one website root.
type PathsConfig struct {
	WebsiteDir string `yaml:"websiteDir"`
}

// HTTPConfig applies to every outbound fetch.
type HTTPConfig struct {
	UserAgent      string `yaml:"userAgent"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// HistoryConfig describes the optional run-audit database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig selects the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DataDir is where dedup state, metadata records and indexes live.
func (c Config) DataDir() string {
	return filepath.Join(c.Paths.WebsiteDir, "data")
}

// ArticlesDir is where rendered documents for one category live.
func (c Config) ArticlesDir(category string) string {
	return filepath.Join(c.Paths.WebsiteDir, "articles", category)
}

// SitemapPath locates the generated sitemap.
func (c Config) SitemapPath() string {
	return filepath.Join(c.Paths.WebsiteDir, "sitemap.xml")
}

// Timeout returns the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(websiteDirEnv); v != "" {
		c.Paths.WebsiteDir = v
	}
	if v := os.Getenv(baseURLEnv); v != "" {
		c.Site.BaseURL = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(historyEnv); v != "" {
		c.History.Path = v
		c.History.Enabled = true
	}
}

func mergeConfig(base, override Config) Config {
	if override.Site.Name != "" {
		base.Site.Name = override.Site.Name
	}
	if override.Site.BaseURL != "" {
		base.Site.BaseURL = override.Site.BaseURL
	}
	if override.Site.Author != "" {
		base.Site.Author = override.Site.Author
	}
	if override.Paths.WebsiteDir != "" {
		base.Paths.WebsiteDir = override.Paths.WebsiteDir
	}
	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}
	if override.HTTP.TimeoutSeconds > 0 {
		base.HTTP.TimeoutSeconds = override.HTTP.TimeoutSeconds
	}
	if override.History.Path != "" {
		base.History = override.History
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Name:    "FinRo.ro",
			BaseURL: "https://finro.ro",
			Author:  "Echipa FinRo",
		},
		Paths: PathsConfig{WebsiteDir: "website"},
		HTTP: HTTPConfig{
			UserAgent:      "FinRo-Bot/1.0 (+https://finro.ro/bot)",
			TimeoutSeconds: 15,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join("website", "data", "history.db"),
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
