package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/seekers/backend/internal/config"
	"github.com/seekers/backend/internal/logging"
	"github.com/seekers/backend/internal/repository"
	"github.com/seekers/backend/internal/service"
)

func main() {
	clearFirst := flag.Bool("clear", false, "既存データを削除してから投入する (CLEAR_DB_ON_SEED と同じ)")
	timeout := flag.Duration("timeout", time.Minute, "seed timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := repository.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logging.Fatal("failed to open store", "error", err)
	}
	defer store.Close()

	seed := service.NewSeedService(store, cfg.ClearDBOnSeed || *clearFirst)
	res, err := seed.SeedIfNeeded(ctx)
	if err != nil {
		store.Close()
		logging.Fatal("seed failed", "error", err)
	}

	attrs := []any{"store", store.Driver, "message", res.Message}
	if res.Data != nil {
		attrs = append(attrs,
			"packages", res.Data.Packages,
			"media", res.Data.Media,
			"backgrounds", res.Data.Backgrounds,
			"inquiries", res.Data.Inquiries,
		)
	}
	slog.Info("seed finished", attrs...)
}
