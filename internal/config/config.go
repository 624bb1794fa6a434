package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	// AuditDisabled as RECONCILE_SCHEDULE turns the balance audit off.
	AuditDisabled = "off"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	OperatorWorkers int
	LogLevel        string
	StorageDriver   string
	// ReconcileSchedule is the cron schedule of the balance audit.
	ReconcileSchedule string
}

// ProcessEnvironmentVariables builds the configuration from the environment.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:   "localhost",
		PostgresPort:      "5433",
		PostgresDB:        "postgres",
		PostgresUsername:  "postgres",
		PostgresPassword:  "testpassword",
		HTTPPort:          "9446",
		OperatorWorkers:   4,
		LogLevel:          "info",
		StorageDriver:     StorageDriverPostgres,
		ReconcileSchedule: "@hourly",
	}

	overrideString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	overrideString(&env.PostgresPort, "POSTGRES_PORT")
	overrideString(&env.PostgresDB, "POSTGRES_DB")
	overrideString(&env.PostgresUsername, "POSTGRES_USERNAME")
	overrideString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	overrideString(&env.HTTPPort, "HTTP_PORT")
	overrideString(&env.LogLevel, "LOG_LEVEL")
	overrideString(&env.StorageDriver, "STORAGE_DRIVER")
	overrideString(&env.ReconcileSchedule, "RECONCILE_SCHEDULE")

	if workers := os.Getenv("OPERATOR_WORKERS"); len(workers) != 0 {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: OPERATOR_WORKERS must be a positive integer, got %q", workers)
		}
		env.OperatorWorkers = n
	}

	switch env.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", env.StorageDriver)
	}

	return &env, nil
}

// PostgresURL is the connection string for the configured database.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func overrideString(field *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*field = value
	}
}
