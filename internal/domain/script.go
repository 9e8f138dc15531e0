package domain

// IsKanji reports whether the rune is a CJK ideograph. Kana, punctuation,
// and Latin characters are excluded from the Hán Việt projection.
func IsKanji(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // Extension A
		return true
	case r >= 0xF900 && r <= 0xFAFF: // Compatibility Ideographs
		return true
	}
	return false
}

// IsPrivateUse reports whether the rune falls in the Unicode private-use
// area. Corpus files whose name starts with such a rune are placeholders
// not meant for JLPT indexing.
func IsPrivateUse(r rune) bool {
	return r >= 0xE000 && r <= 0xF8FF
}

// KanjiRunes returns the kanji characters of a word, in order, with
// everything else dropped.
func KanjiRunes(word string) []rune {
	var out []rune
	for _, r := range word {
		if IsKanji(r) {
			out = append(out, r)
		}
	}
	return out
}
