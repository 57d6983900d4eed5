package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultTitlePattern is the shipped title filter: the product-management
// role family. The crawl pipeline treats the pattern as a required
// parameter; this is only the fallback when config leaves it blank.
const DefaultTitlePattern = `(?i)(product\s*manager|senior\s*product\s*manager|group\s*pm|principal\s*pm|director\s*of\s*product|product\s*lead|technical\s*product\s*manager|platform\s*pm|growth\s*product\s*manager|ai\s*product\s*manager|ml\s*product\s*manager|data\s*product\s*manager|product)`

type Crawl struct {
	UserAgent            string  `yaml:"user_agent"`
	TimeoutSeconds       int     `yaml:"timeout_seconds"`
	RobotsTimeoutSeconds int     `yaml:"robots_timeout_seconds"`
	MaxAttempts          int     `yaml:"max_attempts"`
	RobotsMaxAttempts    int     `yaml:"robots_max_attempts"`
	MaxPagesPerSite      int     `yaml:"max_pages_per_site"`
	TitleIncludeRegex    string  `yaml:"title_include_regex"`
	IgnoreRobots         bool    `yaml:"ignore_robots"`
	RequestsPerSecond    float64 `yaml:"requests_per_second"`
	Burst                int     `yaml:"burst"`
}

type Matching struct {
	PreferredLocations []string `yaml:"preferred_locations"`
}

type Config struct {
	Crawl    Crawl    `yaml:"crawl"`
	Matching Matching `yaml:"matching"`
}

func Default() Config {
	return Config{
		Crawl: Crawl{
			UserAgent:            "jobmatch-bot/1.0",
			TimeoutSeconds:       30,
			RobotsTimeoutSeconds: 15,
			MaxAttempts:          4,
			RobotsMaxAttempts:    3,
			MaxPagesPerSite:      5,
			TitleIncludeRegex:    DefaultTitlePattern,
			RequestsPerSecond:    2,
			Burst:                4,
		},
	}
}

// Load reads the YAML config at path, filling gaps from Default. A missing
// file is not an error; the defaults are used as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Crawl.UserAgent == "" {
		cfg.Crawl.UserAgent = def.Crawl.UserAgent
	}
	if cfg.Crawl.TimeoutSeconds <= 0 {
		cfg.Crawl.TimeoutSeconds = def.Crawl.TimeoutSeconds
	}
	if cfg.Crawl.RobotsTimeoutSeconds <= 0 {
		cfg.Crawl.RobotsTimeoutSeconds = def.Crawl.RobotsTimeoutSeconds
	}
	if cfg.Crawl.MaxAttempts <= 0 {
		cfg.Crawl.MaxAttempts = def.Crawl.MaxAttempts
	}
	if cfg.Crawl.RobotsMaxAttempts <= 0 {
		cfg.Crawl.RobotsMaxAttempts = def.Crawl.RobotsMaxAttempts
	}
	if cfg.Crawl.MaxPagesPerSite <= 0 {
		cfg.Crawl.MaxPagesPerSite = def.Crawl.MaxPagesPerSite
	}
	if cfg.Crawl.TitleIncludeRegex == "" {
		cfg.Crawl.TitleIncludeRegex = def.Crawl.TitleIncludeRegex
	}
	if cfg.Crawl.RequestsPerSecond <= 0 {
		cfg.Crawl.RequestsPerSecond = def.Crawl.RequestsPerSecond
	}
	if cfg.Crawl.Burst <= 0 {
		cfg.Crawl.Burst = def.Crawl.Burst
	}
}

func validate(cfg Config) error {
	if _, err := regexp.Compile(cfg.Crawl.TitleIncludeRegex); err != nil {
		return fmt.Errorf("title_include_regex: %w", err)
	}
	return nil
}
