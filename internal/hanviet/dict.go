// Package hanviet maps kanji characters to their Sino-Vietnamese (Hán
// Việt) readings and meanings, and annotates kanji records with reading
// lists and human-readable gloss strings.
package hanviet

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed bank.tsv
var bank string

// Entry holds the dictionary data for a single character. Readings are
// ordered most common first; either list may be empty from the consumer's
// point of view, but the bundled bank guarantees at least one reading per
// listed character.
type Entry struct {
	Readings []string
	Meanings []string
}

// Dict is the static per-character dictionary, loaded once and read-only
// afterwards. Lookup is O(1) by character.
type Dict struct {
	entries map[rune]Entry
}

// Load parses the bundled character bank. Format: one character per line,
// tab-separated: character, comma-joined readings, comma-joined meanings.
func Load() (*Dict, error) {
	return parse(bank)
}

func parse(data string) (*Dict, error) {
	d := &Dict{entries: make(map[rune]Entry)}
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			return nil, fmt.Errorf("hanviet: line %d: want 3 fields, got %d", i+1, len(parts))
		}
		chars := []rune(parts[0])
		if len(chars) != 1 {
			return nil, fmt.Errorf("hanviet: line %d: key must be a single character", i+1)
		}
		d.entries[chars[0]] = Entry{
			Readings: splitList(parts[1]),
			Meanings: splitList(parts[2]),
		}
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Lookup returns the entry for a character.
func (d *Dict) Lookup(r rune) (Entry, bool) {
	e, ok := d.entries[r]
	return e, ok
}

// PrimaryReading returns the most common reading for a character, or the
// character itself when the bank has no entry. The fallback keeps compound
// projections the same length as their kanji count, never leaving holes.
func (d *Dict) PrimaryReading(r rune) string {
	if e, ok := d.entries[r]; ok && len(e.Readings) > 0 {
		return e.Readings[0]
	}
	return string(r)
}

// Size returns the number of characters in the bank.
func (d *Dict) Size() int { return len(d.entries) }
