package enricher

import (
	"context"

	"github.com/tuanvng/kanjidex/internal/domain"
)

// Translator fills the missing side of a bilingual meaning. A nil result
// leaves that side unset; the record still gets its canonical shape.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) *string
}

// Normalizer converts the legacy meaning representations found in raw
// corpus records (plain English string, {english} object, or an already
// bilingual {vi, en}) into the one canonical {vi, en} shape, translating
// the missing side when exactly one is known.
//
// Normalization is one-way: the legacy meaningVN/meaningEN alias fields
// are cleared once merged. Running the normalizer on an already-canonical
// record makes no translation calls and changes nothing.
type Normalizer struct {
	tr Translator
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(tr Translator) *Normalizer {
	return &Normalizer{tr: tr}
}

// NormalizeRecord canonicalizes the root meaning and every example
// compound's meaning.
func (n *Normalizer) NormalizeRecord(ctx context.Context, rec *domain.Record) {
	n.NormalizeRoot(ctx, rec)
	for _, ex := range rec.Compounds() {
		n.NormalizeExample(ctx, ex)
	}
}

// NormalizeRoot canonicalizes only the record's own meaning. The record's
// dictionary-level English meaning serves as the fallback when the root
// has no meaning of its own.
func (n *Normalizer) NormalizeRoot(ctx context.Context, rec *domain.Record) {
	rec.Meaning = n.normalize(ctx, rec.Meaning, rec.MeaningVN, rec.MeaningEN, rec.EnglishMeaning())
	rec.MeaningVN, rec.MeaningEN = "", ""
}

// NormalizeExample canonicalizes one example compound's meaning.
func (n *Normalizer) NormalizeExample(ctx context.Context, ex *domain.Example) {
	ex.Meaning = n.normalize(ctx, ex.Meaning, ex.MeaningVN, ex.MeaningEN, "")
	ex.MeaningVN, ex.MeaningEN = "", ""
}

// normalize resolves the canonical meaning from whichever fields are
// present. When neither side is known the result is an explicit
// {vi: null, en: null}, marking "processed, no data found" as distinct
// from an absent field.
func (n *Normalizer) normalize(ctx context.Context, cur *domain.Meaning, legacyVN, legacyEN, defaultEn string) *domain.Meaning {
	var vi, en string
	if cur != nil {
		if cur.Vi != nil {
			vi = *cur.Vi
		}
		if cur.En != nil {
			en = *cur.En
		}
	}
	if vi == "" {
		vi = legacyVN
	}
	if en == "" {
		en = legacyEN
	}
	if en == "" {
		en = defaultEn
	}

	switch {
	case en != "" && vi == "":
		if t := n.tr.Translate(ctx, en, "en", "vi"); t != nil {
			vi = *t
		}
	case vi != "" && en == "":
		if t := n.tr.Translate(ctx, vi, "vi", "en"); t != nil {
			en = *t
		}
	}

	m := &domain.Meaning{}
	if vi != "" {
		m.Vi = &vi
	}
	if en != "" {
		m.En = &en
	}
	return m
}
