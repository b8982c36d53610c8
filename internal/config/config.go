package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         string `yaml:"port"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`
	Log   LogConfig `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		// Source is a file path or an http(s) URL of the question document.
		Source            string `yaml:"source"`
		QuestionsPerRound int    `yaml:"questions_per_round"`
		CacheTTL          string `yaml:"cache_ttl"`
		FetchTimeout      string `yaml:"fetch_timeout"`
	} `yaml:"quiz"`
	Theme struct {
		Default string `yaml:"default"`
	} `yaml:"theme"`
}

// LogConfig selects the log level and encoder.
type LogConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DurationOr parses a duration string or returns the fallback if empty or invalid.
func DurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
