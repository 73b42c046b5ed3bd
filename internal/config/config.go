// Package config loads service settings from YAML and the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration. Sources, highest priority first:
//  1. the path passed to Load;
//  2. the CONFIG_PATH environment variable;
//  3. ./local.yaml in the working directory;
//  4. environment variables only.
//
// Environment variables always override file values, and a .env file in the
// working directory is loaded into the environment first.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	DB         DBConfig         `yaml:"db"`
	Completion CompletionConfig `yaml:"completion"`
	Log        LogConfig        `yaml:"log"`
}

type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"HTTP_PORT" env-default:"8011"`
}

func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

type DBConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"iate.db"`
}

type CompletionConfig struct {
	// openai or gateway.
	Provider string `yaml:"provider" env:"COMPLETION_PROVIDER" env-default:"openai"`
	BaseURL  string `yaml:"base_url" env:"COMPLETION_BASE_URL" env-default:"https://api.openai.com/v1"`
	APIKey   string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model    string `yaml:"model" env:"COMPLETION_MODEL" env-default:"gpt-4o"`
	// json or text.
	ResponseFormat string        `yaml:"response_format" env:"COMPLETION_RESPONSE_FORMAT" env-default:"json"`
	MaxTokens      int           `yaml:"max_tokens" env:"COMPLETION_MAX_TOKENS" env-default:"300"`
	Temperature    float64       `yaml:"temperature" env:"COMPLETION_TEMPERATURE" env-default:"0.5"`
	Timeout        time.Duration `yaml:"timeout" env:"COMPLETION_TIMEOUT" env-default:"60s"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File       string `yaml:"file" env:"LOG_FILE"`
	Console    bool   `yaml:"console" env:"LOG_CONSOLE" env-default:"true"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"30"`
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be in 1..65535, got %d", c.HTTP.Port)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	switch c.Completion.Provider {
	case "openai", "gateway":
	default:
		return fmt.Errorf("completion.provider must be openai or gateway, got %q", c.Completion.Provider)
	}
	switch c.Completion.ResponseFormat {
	case "json", "text":
	default:
		return fmt.Errorf("completion.response_format must be json or text, got %q", c.Completion.ResponseFormat)
	}
	if c.Completion.BaseURL == "" {
		return fmt.Errorf("completion.base_url is required")
	}
	if c.Completion.Timeout <= 0 {
		return fmt.Errorf("completion.timeout must be > 0")
	}
	return nil
}
