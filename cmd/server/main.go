package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Simplici0/homecost/internal/config"
	"github.com/Simplici0/homecost/internal/db"
	"github.com/Simplici0/homecost/internal/migrations"
	"github.com/Simplici0/homecost/internal/pricing"
	"github.com/Simplici0/homecost/internal/rooms"
	"github.com/Simplici0/homecost/internal/seed"
	"github.com/Simplici0/homecost/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.Level())
	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func run(cfg config.Config) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	base, err := baseDocument(cfg.CostTablePath)
	if err != nil {
		return err
	}
	table, err := pricing.NewTable(base)
	if err != nil {
		return fmt.Errorf("build cost table: %w", err)
	}

	if cfg.IsDev() {
		stats, err := seed.Run(database, base)
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		log.Info().Int("inserts", stats.Inserts).Msg("seeded cost store")
	}

	srv := &server{
		db:          database,
		provider:    pricing.NewProvider(table),
		base:        base,
		catalog:     rooms.Default(),
		costs:       store.NewCostStore(database),
		shares:      store.NewShareStore(database),
		leads:       store.NewLeadStore(database),
		adminToken:  cfg.AdminToken,
		upsellLimit: cfg.UpsellLimit,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := srv.provider.Refresh(ctx, srv.costs, base); err != nil {
		log.Warn().Err(err).Msg("using file cost table, store overlay unavailable")
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.Env).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// baseDocument loads the cost table file at path, or the embedded default
// when path is empty.
func baseDocument(path string) (pricing.Document, error) {
	if path == "" {
		return pricing.DefaultDocument(), nil
	}
	doc, err := pricing.LoadDocument(path)
	if err != nil {
		return pricing.Document{}, fmt.Errorf("parse cost table %s: %w", path, err)
	}
	return doc, nil
}
