package hanviet

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuanvng/kanjidex/internal/domain"
)

// translator fills the English side of a gloss. Returns nil when the text
// cannot be translated; the annotator then leaves the English side empty.
type translator interface {
	Translate(ctx context.Context, text, from, to string) *string
}

// Annotator attaches Hán Việt readings and gloss strings to kanji records
// and their example compounds. Readings always come from the static
// dictionary; only the English variant of a gloss goes through the
// translator, by translating the Vietnamese gloss text itself.
type Annotator struct {
	dict *Dict
	tr   translator
}

// NewAnnotator creates an Annotator.
func NewAnnotator(dict *Dict, tr translator) *Annotator {
	return &Annotator{dict: dict, tr: tr}
}

// AnnotateRecord annotates the root character of a record. A record that
// already carries an object-form gloss is left untouched, so re-running
// the annotator is a no-op.
func (a *Annotator) AnnotateRecord(ctx context.Context, rec *domain.Record) {
	if annotated(rec.HanVietExplain) {
		return
	}
	runes := []rune(rec.ID)
	if len(runes) == 0 {
		return
	}

	entry, ok := a.dict.Lookup(runes[0])
	if !ok || len(entry.Readings) == 0 {
		return
	}

	rec.HanViet = append([]string(nil), entry.Readings...)

	vi := fmt.Sprintf("%s: %s", entry.Readings[0], strings.Join(entry.Meanings, ", "))
	rec.HanVietExplain = &domain.Gloss{Vi: &vi, En: a.translateGloss(ctx, vi)}
}

// AnnotateCompound annotates one example compound. Idempotent under the
// same object-form gloss rule as AnnotateRecord.
func (a *Annotator) AnnotateCompound(ctx context.Context, ex *domain.Example) {
	if annotated(ex.HanVietExplain) {
		return
	}
	kanji := domain.KanjiRunes(ex.Word)
	if len(kanji) == 0 {
		return
	}

	ex.HanViet = a.CompoundReadings(ex.Word)

	parts := make([]string, 0, len(kanji))
	for _, r := range kanji {
		if entry, ok := a.dict.Lookup(r); ok && len(entry.Readings) > 0 {
			seg := entry.Readings[0]
			if len(entry.Meanings) > 0 {
				seg = fmt.Sprintf("%s: %s", seg, entry.Meanings[0])
			}
			parts = append(parts, fmt.Sprintf("%c (%s)", r, seg))
		} else {
			parts = append(parts, fmt.Sprintf("%c (%c)", r, r))
		}
	}

	final := ex.Meaning.Text("vi")
	if final == "" {
		final = ex.Word
	}

	vi := fmt.Sprintf("%s → %s", strings.Join(parts, " + "), final)
	ex.HanVietExplain = &domain.Gloss{Vi: &vi, En: a.translateGloss(ctx, vi)}
}

// CompoundReadings projects a word onto its per-kanji primary readings.
// Non-kanji characters contribute nothing; a kanji absent from the bank
// echoes itself, so the result length always equals the word's kanji count.
func (a *Annotator) CompoundReadings(word string) []string {
	kanji := domain.KanjiRunes(word)
	out := make([]string, len(kanji))
	for i, r := range kanji {
		out[i] = a.dict.PrimaryReading(r)
	}
	return out
}

func (a *Annotator) translateGloss(ctx context.Context, vi string) *string {
	if a.tr == nil {
		return nil
	}
	return a.tr.Translate(ctx, vi, "vi", "en")
}

// annotated reports whether a gloss is already in canonical object form.
// Legacy string-form glosses get rebuilt.
func annotated(g *domain.Gloss) bool {
	return g != nil && !g.Legacy
}
