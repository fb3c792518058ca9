// Package config reads the console settings from the environment (and an
// optional .env file).
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"
)

type Config struct {
	APIURL    string
	Timeout   time.Duration
	Retries   int
	RateLimit float64
	RateBurst int

	LogLevel string
	LogFile  string
	Format   string

	OTLPEndpoint string
	ServiceName  string
}

// Load carrega variáveis de ambiente e aplica defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:       strings.TrimSpace(getEnv("GESTAO_API_URL", "http://localhost:8080/api")),
		LogLevel:     strings.ToLower(strings.TrimSpace(getEnv("GESTAO_LOG_LEVEL", "info"))),
		LogFile:      getEnv("GESTAO_LOG_FILE", filepath.Join(os.TempDir(), "gestao.log")),
		Format:       strings.ToLower(strings.TrimSpace(getEnv("GESTAO_FORMAT", FormatTable))),
		OTLPEndpoint: strings.TrimSpace(getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "gestao-cli"),
	}
	if cfg.Format == "" {
		cfg.Format = FormatTable
	}
	if cfg.APIURL == "" {
		return nil, errors.New("GESTAO_API_URL obrigatório")
	}
	if err := ValidateFormat(cfg.Format); err != nil {
		return nil, err
	}

	var err error
	if cfg.Timeout, err = parseDurationEnv("GESTAO_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Retries, err = parseIntEnv("GESTAO_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = parseIntEnv("GESTAO_RATE_BURST", 20); err != nil {
		return nil, err
	}

	rps := getEnv("GESTAO_RATE_LIMIT", "10")
	cfg.RateLimit, err = strconv.ParseFloat(rps, 64)
	if err != nil || cfg.RateLimit < 0 {
		return nil, errors.New("GESTAO_RATE_LIMIT inválido")
	}

	return cfg, nil
}

func ValidateFormat(f string) error {
	switch f {
	case FormatJSON, FormatTable:
		return nil
	default:
		return errors.New("formato inválido: use json ou table")
	}
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil || dur < 0 {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}

func parseIntEnv(key string, def int) (int, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, errors.New(key + " inválido")
	}
	return n, nil
}
