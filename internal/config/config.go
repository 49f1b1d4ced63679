package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen   string `yaml:"listen"`
	DataDir  string `yaml:"data_dir"`  // analytics logs + active.json
	MediaDir string `yaml:"media_dir"` // gallery tree
	BlogDir  string `yaml:"blog_dir"`  // blog post tree

	// AdminToken guards the content management endpoints. There is no
	// built-in fallback: when empty (and no ADMIN_TOKEN env), those
	// endpoints answer 503.
	AdminToken string `yaml:"admin_token"`

	Store  string `yaml:"store"`   // "file" (default) or "sqlite"
	DBPath string `yaml:"db_path"` // sqlite backend only

	GeoIPURL           string `yaml:"geoip_url"`
	GeoIPTimeoutMS     int    `yaml:"geoip_timeout_ms"`
	PresenceTTLSeconds int    `yaml:"presence_ttl_seconds"`
	PreviewWidth       int    `yaml:"preview_width"`

	CORSOrigins []string `yaml:"cors_origins"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) PresenceTTL() time.Duration {
	return time.Duration(c.PresenceTTLSeconds) * time.Second
}

func (c *Config) GeoIPTimeout() time.Duration {
	return time.Duration(c.GeoIPTimeoutMS) * time.Millisecond
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data/analytics"
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = "./data/media"
	}
	if cfg.BlogDir == "" {
		cfg.BlogDir = "./data/blog"
	}
	if cfg.Store == "" {
		cfg.Store = "file"
	}
	if cfg.Store != "file" && cfg.Store != "sqlite" {
		return nil, fmt.Errorf("config: unknown store %q", cfg.Store)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data/analytics.db"
	}
	if cfg.GeoIPURL == "" {
		cfg.GeoIPURL = "https://api.country.is"
	}
	if cfg.GeoIPTimeoutMS <= 0 {
		cfg.GeoIPTimeoutMS = 1000
	}
	if cfg.PresenceTTLSeconds <= 0 {
		cfg.PresenceTTLSeconds = 300
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	// the secret belongs in the environment, not the config file
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.AdminToken = v
	}
	return &cfg, nil
}
