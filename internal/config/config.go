// Package config reads the server configuration from the environment. A
// .env file in the working directory is loaded first so that local
// development does not need exported variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverLocalFile = "localfile"
)

// Config is the full server configuration.
type Config struct {
	GinMode   string // GIN_MODE, "release" or "debug"
	LogFormat string // LOG_FORMAT, "json" or "human"
	APIPort   string // API_PORT, defaults to 8080

	StorageDriver string // STORAGE_DRIVER, sqlite, postgres or localfile
	DataDir       string // DATA_DIR, where sqlite and localfile keep their files

	DBHost     string // DB_HOST
	DBUser     string // DB_USER
	DBPassword string // DB_PASSWORD
	DBName     string // DB_NAME

	CORSAllowOrigins []string // CORS_ALLOW_ORIGINS, space separated glob patterns

	JWTSecret string // JWT_SECRET, HS256 key for bearer tokens
	RedisURL  string // REDIS_URL, enables the analytics cache when set
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	// A missing .env file is fine, variables can come from the environment
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded configuration from .env")
	}

	cfg := Config{
		GinMode:       getenv("GIN_MODE", "release"),
		LogFormat:     getenv("LOG_FORMAT", "json"),
		APIPort:       getenv("API_PORT", "8080"),
		StorageDriver: getenv("STORAGE_DRIVER", DriverSQLite),
		DataDir:       getenv("DATA_DIR", "data"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisURL:      os.Getenv("REDIS_URL"),
	}

	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		cfg.CORSAllowOrigins = strings.Fields(origins)
	}

	switch cfg.StorageDriver {
	case DriverSQLite, DriverPostgres, DriverLocalFile:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER: %s", cfg.StorageDriver)
	}

	if cfg.StorageDriver == DriverPostgres && cfg.DBHost == "" {
		return Config{}, fmt.Errorf("DB_HOST must be set when STORAGE_DRIVER is %s", DriverPostgres)
	}

	return cfg, nil
}

// PostgresDSN assembles the connection string for the postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s", c.DBHost, c.DBUser, c.DBPassword, c.DBName)
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
