package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tuanvng/kanjidex/internal/domain"
)

// Page is one paginated slice of a level's ordered kanji summaries.
type Page struct {
	Items      []domain.Summary `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Size       int              `json:"size"`
	TotalPages int              `json:"totalPages"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service owns the process-wide JLPT level index. The index is built once,
// on the first page request, and reused for the lifetime of the process;
// corpus changes require a restart. Concurrent first requests share a
// single in-flight build, and a failed build is retried by the next
// request rather than being cached.
type Service struct {
	scanner      *Scanner
	dir          string
	overridePath string
	log          *slog.Logger

	overrideOnce sync.Once
	overrides    map[string]*domain.Override

	mu    sync.Mutex
	index map[domain.Level][]domain.Summary
	build *buildState
}

type buildState struct {
	done  chan struct{}
	index map[domain.Level][]domain.Summary
	err   error
}

// NewService creates the index service over a corpus directory. The
// override path is optional; an empty string disables local overrides.
func NewService(dir, overridePath string, scanBatchSize int, log *slog.Logger) *Service {
	return &Service{
		scanner:      NewScanner(dir, scanBatchSize),
		dir:          dir,
		overridePath: overridePath,
		log:          log,
	}
}

// GetPage returns one page of the level's ordered summaries. level accepts
// "1".."5" or "N1".."N5"; size is clamped to [1, 100] with default 20 and
// page below 1 defaults to 1. Pages past the end return empty items, not
// an error. Results are stable across calls within one process lifetime.
func (s *Service) GetPage(ctx context.Context, level string, page, size int) (*Page, error) {
	lvl, err := domain.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	idx, err := s.ensureIndex(ctx)
	if err != nil {
		return nil, err
	}

	seq := idx[lvl]
	total := len(seq)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	end := min(start+size, total)

	items := make([]domain.Summary, 0, size)
	if start < total {
		items = append(items, seq[start:end]...)
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}, nil
}

// GetKanji returns the full record for one character, merged with any
// local override. Returns domain.ErrNotFound when no record file exists.
func (s *Service) GetKanji(ctx context.Context, character string) (*domain.Record, error) {
	character = strings.TrimSpace(character)
	if n := len([]rune(character)); n != 1 {
		return nil, domain.NewValidationError("character", "must be a single character")
	}

	rec, err := readRecord(filepath.Join(s.dir, character+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: load record %q: %w", character, err)
	}

	rec.ApplyOverride(s.loadOverrides()[character])
	return rec, nil
}

// Ping reports whether the corpus directory is readable; used by health
// checks.
func (s *Service) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("index: %s is not a directory", s.dir)
	}
	return nil
}

// ensureIndex returns the built index, starting a build when none exists.
// Callers arriving during a build await the same in-flight build state.
func (s *Service) ensureIndex(ctx context.Context) (map[domain.Level][]domain.Summary, error) {
	s.mu.Lock()
	if s.index != nil {
		idx := s.index
		s.mu.Unlock()
		return idx, nil
	}
	b := s.build
	if b == nil {
		b = &buildState{done: make(chan struct{})}
		s.build = b
		go s.runBuild(b)
	}
	s.mu.Unlock()

	select {
	case <-b.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if b.err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBuildFailed, b.err)
	}
	return b.index, nil
}

// runBuild executes one build. It is detached from any single request's
// context so a cancelled caller does not kill the build other callers are
// waiting on.
func (s *Service) runBuild(b *buildState) {
	idx, err := s.buildIndex(context.Background())

	s.mu.Lock()
	if err == nil {
		s.index = idx
	}
	// Clearing build makes a failed attempt retryable on the next request.
	s.build = nil
	s.mu.Unlock()

	b.index, b.err = idx, err
	close(b.done)
}

func (s *Service) buildIndex(ctx context.Context) (map[domain.Level][]domain.Summary, error) {
	res, err := s.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	overrides := s.loadOverrides()

	idx := make(map[domain.Level][]domain.Summary, len(domain.Levels))
	untagged := 0
	for _, rec := range res.Records {
		level, ok := rec.JLPT()
		if !ok {
			untagged++
			continue
		}
		rec.ApplyOverride(overrides[rec.ID])
		idx[level] = append(idx[level], rec.Summarize(level))
	}

	// Simplest-looking characters first: stroke count ascending, ties
	// broken by locale-aware character order. Pagination depends on this
	// ordering being reproducible.
	coll := collate.New(language.Japanese)
	for level, seq := range idx {
		sort.SliceStable(seq, func(i, j int) bool {
			if seq[i].StrokeCount != seq[j].StrokeCount {
				return seq[i].StrokeCount < seq[j].StrokeCount
			}
			return coll.CompareString(seq[i].Kanji, seq[j].Kanji) < 0
		})
		for i := range seq {
			seq[i].Index = i + 1
		}
		idx[level] = seq
	}

	s.log.Info("kanji index built",
		slog.Int("records", len(res.Records)),
		slog.Int("skipped_files", len(res.Skipped)),
		slog.Int("untagged", untagged),
		slog.Int("levels", len(idx)),
	)
	for _, sk := range res.Skipped {
		s.log.Warn("corpus file skipped", slog.String("file", sk.Name), slog.String("reason", sk.Reason))
	}

	return idx, nil
}

// loadOverrides reads the optional local override dictionary once.
func (s *Service) loadOverrides() map[string]*domain.Override {
	s.overrideOnce.Do(func() {
		s.overrides = map[string]*domain.Override{}
		if s.overridePath == "" {
			return
		}
		data, err := os.ReadFile(s.overridePath)
		if err != nil {
			if !os.IsNotExist(err) {
				s.log.Warn("override dictionary unreadable",
					slog.String("path", s.overridePath),
					slog.String("error", err.Error()),
				)
			}
			return
		}
		if err := json.Unmarshal(data, &s.overrides); err != nil {
			s.log.Warn("override dictionary malformed",
				slog.String("path", s.overridePath),
				slog.String("error", err.Error()),
			)
			s.overrides = map[string]*domain.Override{}
		}
	})
	return s.overrides
}
