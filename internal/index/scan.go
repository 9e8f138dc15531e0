// Package index builds and serves the process-wide JLPT level index over
// the on-disk kanji corpus.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvng/kanjidex/internal/domain"
)

// SkippedFile records one corpus file excluded from a scan, with the
// reason, so callers can assert on skip counts instead of parsing logs.
type SkippedFile struct {
	Name   string
	Reason string
}

// ScanResult is the outcome of one full corpus scan.
type ScanResult struct {
	Records []*domain.Record
	Skipped []SkippedFile
}

// Scanner reads every record file in the corpus directory. Files are
// processed in bounded-size batches to stay under OS file-descriptor
// limits; files within a batch are read concurrently, batches run
// sequentially. A file that fails to read or parse is skipped, never
// aborting the scan; only a directory-level failure is fatal.
type Scanner struct {
	dir       string
	batchSize int
}

// NewScanner creates a Scanner over dir. batchSize below 1 defaults to 100.
func NewScanner(dir string, batchSize int) *Scanner {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Scanner{dir: dir, batchSize: batchSize}
}

// Scan reads the whole corpus.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("index: read corpus dir %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsRecordFile(e.Name()) {
			names = append(names, e.Name())
		}
	}

	result := &ScanResult{}
	for start := 0; start < len(names); start += s.batchSize {
		end := min(start+s.batchSize, len(names))
		batch := names[start:end]

		records := make([]*domain.Record, len(batch))
		skips := make([]*SkippedFile, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, name := range batch {
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				rec, err := readRecord(filepath.Join(s.dir, name))
				if err != nil {
					skips[i] = &SkippedFile{Name: name, Reason: err.Error()}
					return nil
				}
				records[i] = rec
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i := range batch {
			if records[i] != nil {
				result.Records = append(result.Records, records[i])
			} else if skips[i] != nil {
				result.Skipped = append(result.Skipped, *skips[i])
			}
		}
	}
	return result, nil
}

// IsRecordFile reports whether a corpus filename is an indexable record:
// a .json file that is not the default.json placeholder and whose name
// does not start with a private-use-area character.
func IsRecordFile(name string) bool {
	if !strings.HasSuffix(name, ".json") || name == "default.json" {
		return false
	}
	for _, r := range name {
		return !domain.IsPrivateUse(r)
	}
	return false
}

func readRecord(path string) (*domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if rec.ID == "" {
		rec.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return &rec, nil
}
