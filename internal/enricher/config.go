package enricher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds enrichment pipeline settings.
type Config struct {
	CorpusDir     string        `yaml:"corpus_dir"      env:"ENRICH_CORPUS_DIR"      env-default:"./data/kanji"`
	ProcessedPath string        `yaml:"processed_path"  env:"ENRICH_PROCESSED_PATH"`
	CachePath     string        `yaml:"cache_path"      env:"ENRICH_CACHE_PATH"`
	APIKey        string        `yaml:"api_key"         env:"ENRICH_API_KEY"`
	Model         string        `yaml:"model"           env:"ENRICH_MODEL"           env-default:"claude-3-5-haiku-latest"`
	Timeout       time.Duration `yaml:"timeout"         env:"ENRICH_TIMEOUT"         env-default:"30s"`
	Retries       int           `yaml:"retries"         env:"ENRICH_RETRIES"         env-default:"3"`
	RateLimitWait time.Duration `yaml:"rate_limit_wait" env:"ENRICH_RATE_LIMIT_WAIT" env-default:"30s"`
	Concurrency   int           `yaml:"concurrency"     env:"ENRICH_CONCURRENCY"     env-default:"4"`
	FlushInterval time.Duration `yaml:"flush_interval"  env:"ENRICH_FLUSH_INTERVAL"  env-default:"1500ms"`
}

// LoadConfig reads pipeline config from YAML or environment variables.
// The processed-marker and translation-cache paths default to well-known
// filenames inside the corpus directory.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("enrich config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("enrich config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("enrich config: read env: %w", err)
	}

	if cfg.ProcessedPath == "" {
		cfg.ProcessedPath = filepath.Join(cfg.CorpusDir, "kanji-processed.txt")
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(cfg.CorpusDir, "kanji-translation-cache.json")
	}
	return &cfg, nil
}
