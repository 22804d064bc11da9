package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:9009/api/order", cfg.Submit.Endpoint)
	assert.Equal(t, domain.DefaultToppings, cfg.Catalog.Toppings)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
submit:
  endpoint: http://orders.internal/api/order
  timeout: 2s
catalog:
  toppings:
    - id: olive
      label: Olives
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, TransportHTTP, cfg.Submit.Transport)
	assert.Equal(t, "http://orders.internal/api/order", cfg.Submit.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.Submit.Timeout)
	assert.Equal(t, []domain.Topping{{ID: "olive", Label: "Olives"}}, cfg.Catalog.Toppings)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvSubmitEndpoint, "http://example.test/order")
	t.Setenv(EnvSubmitTransport, TransportAMQP)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/order", cfg.Submit.Endpoint)
	assert.Equal(t, TransportAMQP, cfg.Submit.Transport)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	_, err := Load(path)

	require.ErrorContains(t, err, "failed to parse yaml")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "timeout", mutate: func(c *Config) { c.Submit.Timeout = -time.Second }},
		{name: "transport", mutate: func(c *Config) { c.Submit.Transport = "carrier-pigeon" }},
		{name: "endpoint", mutate: func(c *Config) { c.Submit.Endpoint = "" }},
		{name: "amqp host", mutate: func(c *Config) { c.Submit.Transport = TransportAMQP; c.RabbitMQ.Host = "" }},
		{name: "catalog source", mutate: func(c *Config) { c.Catalog.Source = "csv" }},
		{name: "empty catalog", mutate: func(c *Config) { c.Catalog.Toppings = nil }},
		{name: "database", mutate: func(c *Config) { c.Catalog.Source = CatalogPostgres; c.Database.Host = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
