package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"1s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Model struct {
		Source    string        `yaml:"source" default:"file"`
		Path      string        `yaml:"path" default:"models/churn_model.json"`
		Format    string        `yaml:"format"`
		RemoteURL string        `yaml:"remote_url"`
		Timeout   time.Duration `yaml:"timeout" default:"3s"`
		Redis     struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Key      string `yaml:"key" default:"churnscope:model"`
		} `yaml:"redis"`
	} `yaml:"model"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled" default:"true"`
		RPS     float64 `yaml:"rps" default:"10"`
		Burst   int     `yaml:"burst" default:"20"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML, fills defaults and validates.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads .env (if present) and the YAML file, then applies
// environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var c *Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		c, err = Parse(nil)
		if err != nil {
			return nil, err
		}
	} else {
		c, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CHURN_MODEL_PATH"); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv("CHURN_MODEL_SOURCE"); v != "" {
		c.Model.Source = v
	}
	if v := os.Getenv("CHURN_REDIS_ADDR"); v != "" {
		c.Model.Redis.Addr = v
	}
	if v := os.Getenv("CHURN_MODEL_URL"); v != "" {
		c.Model.RemoteURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT must be a number, got %q", v)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Model.Source {
	case SourceFile:
		if c.Model.Path == "" {
			return fmt.Errorf("model.path is required for file source")
		}
	case SourceRedis:
		if c.Model.Redis.Addr == "" || c.Model.Redis.Key == "" {
			return fmt.Errorf("model.redis.addr and model.redis.key are required for redis source")
		}
	default:
		return fmt.Errorf("model.source must be 'file' or 'redis', got '%s'", c.Model.Source)
	}
	if c.Model.Format != "" && c.Model.Format != "json" && c.Model.Format != "yaml" {
		return fmt.Errorf("model.format must be 'json' or 'yaml', got '%s'", c.Model.Format)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive")
	}
	return nil
}
