package domain

import (
	"fmt"
	"strings"
)

// Level is a JLPT proficiency level tag (N1 hardest, N5 easiest).
type Level string

const (
	LevelN1 Level = "N1"
	LevelN2 Level = "N2"
	LevelN3 Level = "N3"
	LevelN4 Level = "N4"
	LevelN5 Level = "N5"
)

// Levels lists all JLPT levels in ascending difficulty of study order (N5 first).
var Levels = []Level{LevelN5, LevelN4, LevelN3, LevelN2, LevelN1}

func (l Level) String() string { return string(l) }

func (l Level) IsValid() bool {
	switch l {
	case LevelN1, LevelN2, LevelN3, LevelN4, LevelN5:
		return true
	}
	return false
}

// ParseLevel converts a client-supplied level ("1".."5" or "N1".."N5",
// case-insensitive) into a Level. Returns a ValidationError wrapping
// ErrValidation for anything outside that range.
func ParseLevel(s string) (Level, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(v, "N") {
		v = "N" + v
	}
	l := Level(v)
	if !l.IsValid() {
		return "", NewValidationError("level", fmt.Sprintf("must be 1..5 or N1..N5 (got %q)", s))
	}
	return l, nil
}
