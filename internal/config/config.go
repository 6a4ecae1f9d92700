package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/pkg/validate"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string        `env:"RUN_ADDRESS" envDefault:":8080"`
	DatabaseURI        string        `env:"DATABASE_URI"`
	PublicURL          string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	GatewaysFile       string        `env:"GATEWAYS_FILE" envDefault:"gateways.yaml"`
	AdminTokenHash     string        `env:"ADMIN_TOKEN_HASH"`
	NotificationSecret string        `env:"NOTIFICATION_SECRET"`
	KlarnaTimeout      time.Duration `env:"KLARNA_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	DefaultLanguage    string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`

	Gateways []model.Gateway `env:"-"`
}

const (
	defaultKlarnaTimeout   = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Gateway returns configured gateway by ID.
func (c *Config) Gateway(id string) (*model.Gateway, bool) {
	for i := range c.Gateways {
		if c.Gateways[i].ID == id {
			return &c.Gateways[i], true
		}
	}
	return nil, false
}

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], nil)
}

// load reads environ (process environment when nil), then applies flag overrides.
func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("klarnapay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PublicURL, "u", cfg.PublicURL, "Public base URL used in Klarna merchant URLs")
	fs.StringVar(&cfg.GatewaysFile, "g", cfg.GatewaysFile, "Path to gateways YAML file")
	fs.DurationVar(&cfg.KlarnaTimeout, "klarna-timeout", cfg.KlarnaTimeout, "Klarna API request timeout")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if secretFile := lookup(environ, "NOTIFICATION_SECRET_FILE"); secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read notification secret file: %w", err)
		}
		cfg.NotificationSecret = strings.TrimSpace(string(content))
	}

	if cfg.KlarnaTimeout <= 0 {
		cfg.KlarnaTimeout = defaultKlarnaTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.NotificationSecret == "" {
		return nil, fmt.Errorf("notification secret must be provided")
	}

	gateways, err := loadGateways(cfg.GatewaysFile)
	if err != nil {
		return nil, err
	}
	cfg.Gateways = gateways

	return cfg, nil
}

type gatewaysFile struct {
	Gateways []model.Gateway `yaml:"gateways" validate:"required,min=1,unique=ID,dive"`
}

func loadGateways(path string) ([]model.Gateway, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gateways file: %w", err)
	}

	var file gatewaysFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("decode gateways file: %w", err)
	}

	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid gateways file: %w", err)
	}

	return file.Gateways, nil
}

func lookup(environ map[string]string, key string) string {
	if environ != nil {
		return environ[key]
	}
	return os.Getenv(key)
}
