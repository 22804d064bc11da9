package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
)

const (
	TransportHTTP = "http"
	TransportAMQP = "amqp"

	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
)

// Environment overrides applied after the file is read.
const (
	EnvSubmitEndpoint  = "PIZZAFORM_SUBMIT_ENDPOINT"
	EnvSubmitTransport = "PIZZAFORM_SUBMIT_TRANSPORT"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Submit   SubmitConfig   `yaml:"submit"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type SubmitConfig struct {
	Transport string        `yaml:"transport"` // http, amqp
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"` // 0 disables the client timeout
	Exchange  string        `yaml:"exchange"`
}

type CatalogConfig struct {
	Source   string           `yaml:"source"` // static, postgres
	Toppings []domain.Topping `yaml:"toppings"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			ShutdownTimeout: 10 * time.Second,
		},
		Submit: SubmitConfig{
			Transport: TransportHTTP,
			Endpoint:  "http://localhost:9009/api/order",
			Timeout:   10 * time.Second,
			Exchange:  "orders_topic",
		},
		Catalog: CatalogConfig{
			Source:   CatalogStatic,
			Toppings: append([]domain.Topping(nil), domain.DefaultToppings...),
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "pizzaform",
			Database: "pizzaform",
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			User: "guest",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvSubmitEndpoint)); v != "" {
		c.Submit.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSubmitTransport)); v != "" {
		c.Submit.Transport = v
	}
}

// Validate rejects settings the program cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Submit.Timeout < 0 {
		return fmt.Errorf("submit timeout must not be negative")
	}

	switch c.Submit.Transport {
	case TransportHTTP:
		if c.Submit.Endpoint == "" {
			return fmt.Errorf("submit endpoint is required for the http transport")
		}
	case TransportAMQP:
		if c.RabbitMQ.Host == "" {
			return fmt.Errorf("rabbitmq host is required for the amqp transport")
		}
	default:
		return fmt.Errorf("unknown submit transport %q", c.Submit.Transport)
	}

	switch c.Catalog.Source {
	case CatalogStatic:
		if len(c.Catalog.Toppings) == 0 {
			return fmt.Errorf("static catalog needs at least one topping")
		}
	case CatalogPostgres:
		if c.Database.Host == "" || c.Database.Database == "" {
			return fmt.Errorf("database host and name are required for the postgres catalog")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	return nil
}
