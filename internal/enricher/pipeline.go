// Package enricher is the offline batch pipeline that mutates the on-disk
// kanji corpus: it canonicalizes bilingual meanings, attaches Hán Việt
// readings and glosses, and backfills romaji for example compounds.
//
// The pipeline is safe to re-run after an interruption: a file is listed
// in the processed-marker file only after its write succeeded, and the
// marker set is consulted at startup to skip finished work.
package enricher

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvng/kanjidex/internal/domain"
	"github.com/tuanvng/kanjidex/internal/hanviet"
	"github.com/tuanvng/kanjidex/internal/index"
)

// PipelineResult holds enrichment statistics.
type PipelineResult struct {
	Total    int
	Enriched int
	Skipped  int // already listed in the processed markers
	Failed   int
}

// Pipeline processes corpus files strictly sequentially (one file fully
// written before the next begins) while fanning out translation work
// within a file under a bounded concurrency limit.
type Pipeline struct {
	cfg    *Config
	norm   *Normalizer
	ann    *hanviet.Annotator
	romaji *Romajizer // optional; nil disables romaji backfill
	log    *slog.Logger
}

// New creates a Pipeline.
func New(cfg *Config, norm *Normalizer, ann *hanviet.Annotator, romaji *Romajizer, log *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, norm: norm, ann: ann, romaji: romaji, log: log}
}

// Run enriches every unprocessed corpus file. Per-file failures are
// isolated: they are counted and logged but never abort the batch. Only a
// corpus-directory read failure or context cancellation stops the run.
func (p *Pipeline) Run(ctx context.Context) (PipelineResult, error) {
	var result PipelineResult

	processed, err := loadProcessed(p.cfg.ProcessedPath)
	if err != nil {
		return result, fmt.Errorf("read processed markers: %w", err)
	}

	entries, err := os.ReadDir(p.cfg.CorpusDir)
	if err != nil {
		return result, fmt.Errorf("read corpus dir %s: %w", p.cfg.CorpusDir, err)
	}

	marker, err := os.OpenFile(p.cfg.ProcessedPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return result, fmt.Errorf("open processed markers: %w", err)
	}
	defer marker.Close()

	for _, e := range entries {
		if e.IsDir() || !index.IsRecordFile(e.Name()) {
			continue
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Total++

		name := e.Name()
		if processed[name] {
			result.Skipped++
			continue
		}

		if err := p.enrichFile(ctx, filepath.Join(p.cfg.CorpusDir, name)); err != nil {
			p.log.Error("enrich failed",
				slog.String("file", name),
				slog.String("error", err.Error()),
			)
			result.Failed++
			continue
		}

		// Marker is appended only after the record write succeeded.
		if _, err := fmt.Fprintln(marker, name); err != nil {
			return result, fmt.Errorf("append processed marker: %w", err)
		}
		result.Enriched++
	}

	p.log.Info("enrichment complete",
		slog.Int("total", result.Total),
		slog.Int("enriched", result.Enriched),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

// enrichFile reads, enriches, and rewrites one record file.
func (p *Pipeline) enrichFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if rec.ID == "" {
		rec.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	p.norm.NormalizeRoot(ctx, &rec)
	p.ann.AnnotateRecord(ctx, &rec)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Concurrency, 1))
	for _, ex := range rec.Compounds() {
		g.Go(func() error {
			p.norm.NormalizeExample(gctx, ex)
			p.ann.AnnotateCompound(gctx, ex)
			if p.romaji != nil && ex.Romaji == "" {
				ex.Romaji = p.romaji.Romaji(ex.Word)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out, err := json.MarshalIndent(&rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// loadProcessed reads the newline-separated marker file. Lines may be bare
// character ids or full filenames; both forms are recognized.
func loadProcessed(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, ".json") {
			line += ".json"
		}
		set[line] = true
	}
	return set, scanner.Err()
}
