package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workforce-ledger/backend/internal/config"
	v1 "github.com/workforce-ledger/backend/internal/controllers/v1"
	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/internal/reports"
	"github.com/workforce-ledger/backend/internal/router"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	db, err := connect(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	cache := reports.Cache(reports.NoCache{})
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: 5 * time.Second,
		})

		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Str("addr", cfg.Redis.Addr).Msgf("Failed to connect to Redis: %s", err)
		}
		defer client.Close()

		log.Info().Str("addr", cfg.Redis.Addr).Msg("Report cache")
		cache = reports.NewRedisCache(client, "ledger:reports", cfg.Redis.TTL)
	}

	currencySymbol, err := reports.CurrencySymbol(cfg.ReportCurrencyLocale)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	controller := v1.Controller{
		DB:             db,
		Reports:        reports.NewEngine(db, cache),
		CurrencySymbol: currencySymbol,
	}
	router.AttachRoutes(controller, r.Group(cfg.APIURL.Path), cfg.EnablePprof)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Msgf("Server shutdown failed: %s", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// connect opens PostgreSQL when a database host is configured and
// SQLite in the data directory otherwise.
func connect(cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.Host != "" {
		log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("Database")
		return models.Connect(models.Postgres(cfg.Database.DSN()))
	}

	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		return nil, err
	}

	path := filepath.Join(cfg.DataDir, "gorm.db")
	log.Info().Str("path", path).Msg("Database")
	return models.Connect(models.SQLite(path))
}
