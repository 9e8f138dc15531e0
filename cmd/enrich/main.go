// Command enrich runs the kanji corpus enrichment pipeline.
//
// It reads every record file in the corpus directory that is not yet
// listed in the processed-marker file, canonicalizes bilingual meanings,
// attaches Hán Việt readings and glosses, backfills romaji for example
// compounds, and writes the enriched records back to disk. Translations
// go through a persistent on-disk cache; only cache misses reach the
// external provider.
//
// The pipeline may be interrupted and re-run: processed files are skipped
// on the next invocation.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuanvng/kanjidex/internal/enricher"
	"github.com/tuanvng/kanjidex/internal/hanviet"
	"github.com/tuanvng/kanjidex/internal/translate"
)

func main() {
	configPath := flag.String("config", "", "path to enrich YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := enricher.LoadConfig(*configPath)
	if err != nil {
		logger.Error("load enrich config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, err := translate.OpenCache(cfg.CachePath, cfg.FlushInterval)
	if err != nil {
		logger.Error("open translation cache", slog.String("error", err.Error()))
		os.Exit(1)
	}

	provider := translate.NewClaudeProvider(translate.ClaudeConfig{
		APIKey:        cfg.APIKey,
		Model:         cfg.Model,
		Timeout:       cfg.Timeout,
		Retries:       cfg.Retries,
		RateLimitWait: cfg.RateLimitWait,
	}, logger)
	translator := translate.NewService(cache, provider, cfg.Concurrency, logger)

	dict, err := hanviet.Load()
	if err != nil {
		logger.Error("load hanviet dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("hanviet dictionary loaded", slog.Int("characters", dict.Size()))

	romaji, err := enricher.NewRomajizer()
	if err != nil {
		logger.Error("init tokenizer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pipeline := enricher.New(
		cfg,
		enricher.NewNormalizer(translator),
		hanviet.NewAnnotator(dict, translator),
		romaji,
		logger,
	)

	result, runErr := pipeline.Run(ctx)

	// The cache is flushed before exit even when the run was interrupted.
	if err := translator.Flush(); err != nil {
		logger.Error("flush translation cache", slog.String("error", err.Error()))
	}

	if runErr != nil {
		logger.Error("enrichment failed",
			slog.Int("enriched", result.Enriched),
			slog.String("error", runErr.Error()),
		)
		os.Exit(1)
	}
}
