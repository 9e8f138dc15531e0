package translate

import (
	"context"
	"log/slog"
	"strings"
)

// Provider performs the actual external translation call. Implementations
// own their retry and timeout policy; an error from Translate is treated
// as definitive by the service and cached as a negative entry.
type Provider interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Service is the cache-backed translation front. A missing translation is
// never fatal to callers: failures degrade to nil after being cached, and
// the caller renders the original-language text instead.
type Service struct {
	cache    *Cache
	provider Provider
	sem      chan struct{}
	log      *slog.Logger
}

// NewService creates a Service. concurrency bounds the number of in-flight
// provider calls across all callers.
func NewService(cache *Cache, provider Provider, concurrency int, log *slog.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		cache:    cache,
		provider: provider,
		sem:      make(chan struct{}, concurrency),
		log:      log,
	}
}

// Translate returns the translation of text between the given languages,
// or nil when the text is empty, the translation definitively failed, or
// the context was cancelled. The cache is consulted first, including
// cached negatives; only a miss reaches the provider.
func (s *Service) Translate(ctx context.Context, text, from, to string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	direction := Direction(from, to)
	if v, ok := s.cache.Get(direction, text); ok {
		return v
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil
	}

	// Re-check after waiting: another caller may have filled the key.
	if v, ok := s.cache.Get(direction, text); ok {
		return v
	}

	result, err := s.provider.Translate(ctx, text, from, to)
	if err != nil {
		// An interrupted call is not a definitive failure. Leave the
		// cache untouched so a later run retries the text.
		if ctx.Err() != nil {
			return nil
		}
		s.log.Warn("translation failed",
			slog.String("direction", direction),
			slog.String("text", text),
			slog.String("error", err.Error()),
		)
		s.cache.Put(direction, text, nil)
		return nil
	}

	// Successful results are lower-cased before caching; existing cache
	// files already hold this form.
	lowered := strings.ToLower(strings.TrimSpace(result))
	s.cache.Put(direction, text, &lowered)
	return &lowered
}

// Flush forces a synchronous cache write.
func (s *Service) Flush() error { return s.cache.Flush() }
