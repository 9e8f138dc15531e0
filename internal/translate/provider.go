package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeConfig holds provider settings for the Claude-backed translator.
type ClaudeConfig struct {
	APIKey        string
	Model         string
	Timeout       time.Duration
	Retries       int
	RateLimitWait time.Duration
}

// ClaudeProvider translates short texts through the Anthropic messages
// API. Transient failures (timeouts, 5xx, rate limits) are retried a
// bounded number of times with backoff; a 429 waits the configured
// rate-limit interval before the next attempt.
type ClaudeProvider struct {
	client anthropic.Client
	cfg    ClaudeConfig
	log    *slog.Logger
}

// NewClaudeProvider creates a ClaudeProvider.
func NewClaudeProvider(cfg ClaudeConfig, log *slog.Logger) *ClaudeProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RateLimitWait <= 0 {
		cfg.RateLimitWait = 30 * time.Second
	}
	return &ClaudeProvider{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
		log:    log,
	}
}

var languageNames = map[string]string{
	"en": "English",
	"vi": "Vietnamese",
	"ja": "Japanese",
}

// Translate performs one translation with retries. The returned string is
// the raw model output, trimmed; normalization happens in the Service.
func (p *ClaudeProvider) Translate(ctx context.Context, text, from, to string) (string, error) {
	prompt := buildPrompt(text, from, to)

	var lastErr error
	for attempt := 0; attempt <= p.cfg.Retries; attempt++ {
		if attempt > 0 {
			wait := backoff(attempt, lastErr, p.cfg.RateLimitWait)
			p.log.Debug("retrying translation",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
			)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		result, err := p.call(ctx, prompt)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
	}
	return "", fmt.Errorf("translate %q (%s→%s): retries exhausted: %w", text, from, to, lastErr)
}

func (p *ClaudeProvider) call(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	msg, err := p.client.Messages.New(callCtx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.cfg.Model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(msg.Content) == 0 {
		return "", errors.New("empty response")
	}
	return strings.TrimSpace(msg.Content[0].Text), nil
}

func buildPrompt(text, from, to string) string {
	fromName, toName := languageName(from), languageName(to)
	return fmt.Sprintf(
		"Translate the following text from %s to %s. Output ONLY the translation, with no quotes, notes, or explanations.\n\n%s",
		fromName, toName, text,
	)
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// backoff picks the wait before the next attempt: the rate-limit interval
// after a 429, otherwise 1s doubled per attempt and capped at 16s.
func backoff(attempt int, err error, rateLimitWait time.Duration) time.Duration {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) && apierr.StatusCode == 429 {
		return rateLimitWait
	}
	wait := time.Second << (attempt - 1)
	if wait > 16*time.Second {
		wait = 16 * time.Second
	}
	return wait
}
