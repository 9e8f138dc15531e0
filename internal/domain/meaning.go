package domain

import (
	"encoding/json"
	"fmt"
)

// Meaning is the canonical bilingual meaning of a kanji, radical, or
// compound word. Both sides are pointers: nil means "not yet processed",
// while an explicit JSON null means "processed, no data found". The raw
// corpus carries three legacy shapes that all decode into this one type:
//
//	"mouth"                           plain English string
//	{"english": "mouth"}              single-language object
//	{"vi": "miệng", "en": "mouth"}    canonical bilingual object
//
// The "english"/"vietnamese" key spellings are accepted on input for
// backward compatibility but never written back; marshalling always emits
// the canonical {"vi": ..., "en": ...} form with both keys present.
type Meaning struct {
	Vi *string
	En *string
}

// NewMeaning builds a Meaning from optional sides; empty strings become nil.
func NewMeaning(vi, en string) *Meaning {
	m := &Meaning{}
	if vi != "" {
		m.Vi = &vi
	}
	if en != "" {
		m.En = &en
	}
	return m
}

// Complete reports whether both language sides are present.
func (m *Meaning) Complete() bool {
	return m != nil && m.Vi != nil && m.En != nil
}

// Text returns the preferred display text for the given language,
// degrading to the other side rather than an empty string.
func (m *Meaning) Text(lang string) string {
	if m == nil {
		return ""
	}
	if lang == "vi" && m.Vi != nil {
		return *m.Vi
	}
	if m.En != nil {
		return *m.En
	}
	if m.Vi != nil {
		return *m.Vi
	}
	return ""
}

type meaningJSON struct {
	Vi         *string `json:"vi"`
	En         *string `json:"en"`
	Vietnamese *string `json:"vietnamese,omitempty"`
	English    *string `json:"english,omitempty"`
}

func (m *Meaning) UnmarshalJSON(data []byte) error {
	// Legacy shape: a bare English string.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Meaning{}
		if s != "" {
			m.En = &s
		}
		return nil
	}

	var obj meaningJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("meaning: %w", err)
	}

	*m = Meaning{Vi: obj.Vi, En: obj.En}
	if m.Vi == nil {
		m.Vi = obj.Vietnamese
	}
	if m.En == nil {
		m.En = obj.English
	}
	return nil
}

func (m Meaning) MarshalJSON() ([]byte, error) {
	return json.Marshal(meaningJSON{Vi: m.Vi, En: m.En})
}

// Gloss is a bilingual Hán Việt explanation string. A record annotated by
// an older pipeline version may carry a plain string instead of an object;
// Legacy marks that form so the annotator knows to rebuild it.
type Gloss struct {
	Vi *string
	En *string
	// Legacy is true when the source JSON was a bare string.
	Legacy bool
}

type glossJSON struct {
	Vi *string `json:"vi"`
	En *string `json:"en"`
}

func (g *Gloss) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*g = Gloss{Legacy: true}
		if s != "" {
			g.Vi = &s
		}
		return nil
	}

	var obj glossJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("hanVietExplain: %w", err)
	}
	*g = Gloss{Vi: obj.Vi, En: obj.En}
	return nil
}

func (g Gloss) MarshalJSON() ([]byte, error) {
	return json.Marshal(glossJSON{Vi: g.Vi, En: g.En})
}
