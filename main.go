package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/financetrackr/backend/internal/analytics"
	"github.com/financetrackr/backend/internal/config"
	v1 "github.com/financetrackr/backend/internal/controllers/v1"
	"github.com/financetrackr/backend/internal/router"
	"github.com/financetrackr/backend/internal/storage"
	"github.com/financetrackr/backend/internal/storage/db"
	"github.com/financetrackr/backend/internal/storage/localfile"
	"github.com/financetrackr/backend/internal/tracker"
	"github.com/financetrackr/backend/internal/trial"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		log.Fatal().Msg(err.Error())
	}

	store, err := openStorage(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Msg(err.Error())
		}
	}()

	counts, err := trial.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		cache = redis.NewClient(opts)
	}

	co := v1.Controller{
		Hub:       tracker.NewHub(store),
		Analytics: analytics.New(store, cache),
		Gate:      trial.NewGate(counts),
	}

	r, err := router.Config(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(co, r.Group("/"), cfg.JWTSecret)

	if err := r.Run(":" + cfg.APIPort); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// openStorage picks the storage adapter from the configuration.
func openStorage(cfg config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return db.ConnectPostgres(cfg.PostgresDSN())
	case config.DriverLocalFile:
		return localfile.New(cfg.DataDir)
	default:
		return db.Connect(filepath.Join(cfg.DataDir, "gorm.db"))
	}
}
