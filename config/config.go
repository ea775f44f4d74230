package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"user-profile-api/internal/domain/user"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	defaultPort = "8080"
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
		// MinAge is the number of whole years a user must have lived to be stored.
		MinAge int
	}
	Storage struct {
		Driver      string
		AutoMigrate bool
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	MQ struct {
		Enabled      bool
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Tracing struct {
		Enabled    bool
		Endpoint   string
		SampleRate float64
	}

	Config struct {
		App     APP
		Storage Storage
		DB      DB
		MQ      MQ
		Tracing Tracing

		errs []error
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (c *Config) getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return def
	}
	return v
}

func (c *Config) getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("%s: %q is not a boolean", key, raw))
		return def
	}
	return v
}

func (c *Config) getFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("%s: %q is not a number", key, raw))
		return def
	}
	return v
}

func Load() Config {
	var c Config

	c.App = APP{
		Name:      getEnv("SERVICE_NAME", "userprofileapi"),
		Host:      getEnv("SERVICE_HOST", ""),
		Port:      getEnv("SERVICE_PORT", defaultPort),
		Env:       getEnv("SERVICE_ENV", ""),
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
		MinAge:    c.getInt("SERVICE_MIN_AGE", user.DefaultMinAge),
	}
	c.Storage = Storage{
		Driver:      getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		AutoMigrate: c.getBool("POSTGRES_AUTO_MIGRATE", false),
	}
	c.DB = DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	c.MQ = MQ{
		Enabled:      c.getBool("RABBITMQ_ENABLED", false),
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}
	c.Tracing = Tracing{
		Enabled:    c.getBool("TRACING_ENABLED", false),
		Endpoint:   getEnv("OTEL_COLLECTOR_ENDPOINT", "localhost:4318"),
		SampleRate: c.getFloat("OTEL_SAMPLE_RATE", 1),
	}

	return c
}

// Validate reports malformed values collected by Load and inconsistent settings.
func (c Config) Validate() error {
	errs := append([]error(nil), c.errs...)

	if c.App.MinAge < 0 {
		errs = append(errs, fmt.Errorf("SERVICE_MIN_AGE: must not be negative, got %d", c.App.MinAge))
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", c.Storage.Driver))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE: must be within [0, 1], got %v", c.Tracing.SampleRate))
	}

	return errors.Join(errs...)
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(c.DB.User),
		url.QueryEscape(c.DB.Password),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
