package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GESTAO_API_URL", "GESTAO_TIMEOUT", "GESTAO_RETRIES", "GESTAO_RATE_LIMIT",
		"GESTAO_RATE_BURST", "GESTAO_LOG_LEVEL", "GESTAO_LOG_FILE", "GESTAO_FORMAT",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("GESTAO_API_URL", "http://localhost:8080/api")
	t.Setenv("GESTAO_FORMAT", "table")
	t.Setenv("GESTAO_LOG_LEVEL", "info")
	t.Setenv("GESTAO_RATE_LIMIT", "10")
	t.Setenv("OTEL_SERVICE_NAME", "gestao-cli")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.Retries)
	assert.Equal(t, 10.0, cfg.RateLimit)
	assert.Equal(t, 20, cfg.RateBurst)
	assert.Equal(t, FormatTable, cfg.Format)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, "gestao-cli", cfg.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GESTAO_API_URL", " https://api.loja.com/api ")
	t.Setenv("GESTAO_TIMEOUT", "3s")
	t.Setenv("GESTAO_RETRIES", "2")
	t.Setenv("GESTAO_RATE_LIMIT", "2.5")
	t.Setenv("GESTAO_RATE_BURST", "5")
	t.Setenv("GESTAO_FORMAT", "JSON")
	t.Setenv("GESTAO_LOG_LEVEL", "Debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.loja.com/api", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]struct {
		key, val, msg string
	}{
		"timeout": {"GESTAO_TIMEOUT", "soon", "GESTAO_TIMEOUT inválido"},
		"retries": {"GESTAO_RETRIES", "-1", "GESTAO_RETRIES inválido"},
		"burst":   {"GESTAO_RATE_BURST", "x", "GESTAO_RATE_BURST inválido"},
		"rate":    {"GESTAO_RATE_LIMIT", "fast", "GESTAO_RATE_LIMIT inválido"},
		"format":  {"GESTAO_FORMAT", "xml", "formato inválido: use json ou table"},
		"api":     {"GESTAO_API_URL", "  ", "GESTAO_API_URL obrigatório"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)

			_, err := Load()

			assert.EqualError(t, err, tc.msg)
		})
	}
}
