// Package translate provides a cache-backed translation service for short
// texts between fixed language directions. Every outcome, success or
// definitive failure, is persisted so the same input is never re-submitted
// to the provider.
package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Direction builds the cache direction key for a language pair.
func Direction(from, to string) string {
	return from + "_" + to
}

// Cache is the persistent translation cache: direction -> source text ->
// translated text. A nil value is a cached negative result (translation
// attempted and failed) and is returned without retrying the provider.
//
// Writes are coalesced: Put marks the cache dirty and arms a single flush
// timer; rapid updates during a batch run collapse into one disk write.
// Flush is also called synchronously before process exit.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]map[string]*string
	dirty   bool

	flushDelay time.Duration
	timer      *time.Timer
	// afterFunc is replaceable in tests to avoid waiting on real timers.
	afterFunc func(time.Duration, func()) *time.Timer
}

// OpenCache loads the cache file at path, creating an empty cache when the
// file does not exist yet.
func OpenCache(path string, flushDelay time.Duration) (*Cache, error) {
	c := &Cache{
		path:       path,
		entries:    make(map[string]map[string]*string),
		flushDelay: flushDelay,
		afterFunc:  time.AfterFunc,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("translate: read cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("translate: parse cache %s: %w", path, err)
	}
	return c, nil
}

// Get returns the cached value for (direction, text). The second return
// distinguishes a cached negative (nil, true) from a miss (nil, false).
func (c *Cache) Get(direction, text string) (*string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byText, ok := c.entries[direction]
	if !ok {
		return nil, false
	}
	v, ok := byText[text]
	return v, ok
}

// Put stores a value (nil for a negative result) and schedules a debounced
// flush.
func (c *Cache) Put(direction, text string, value *string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[direction] == nil {
		c.entries[direction] = make(map[string]*string)
	}
	c.entries[direction][text] = value
	c.dirty = true

	if c.timer == nil && c.flushDelay > 0 {
		c.timer = c.afterFunc(c.flushDelay, func() {
			_ = c.Flush()
		})
	}
}

// Flush writes the cache to disk if dirty and disarms the pending timer.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

func (c *Cache) flushLocked() error {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if !c.dirty {
		return nil
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("translate: marshal cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("translate: write cache %s: %w", c.path, err)
	}
	c.dirty = false
	return nil
}

// Len returns the number of cached entries for a direction.
func (c *Cache) Len(direction string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries[direction])
}
