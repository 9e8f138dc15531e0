package domain

import "testing"

func TestIsKanji(t *testing.T) {
	for _, r := range []rune{'口', '一', '語', '㐀'} {
		if !IsKanji(r) {
			t.Errorf("IsKanji(%c) = false", r)
		}
	}
	for _, r := range []rune{'あ', 'カ', 'a', '。', ' ', 'ー'} {
		if IsKanji(r) {
			t.Errorf("IsKanji(%c) = true", r)
		}
	}
}

func TestIsPrivateUse(t *testing.T) {
	if !IsPrivateUse(0xE000) || !IsPrivateUse(0xF8FF) {
		t.Error("private-use boundaries should be detected")
	}
	if IsPrivateUse('口') {
		t.Error("regular kanji is not private use")
	}
}

func TestKanjiRunes(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"日本語", "日本語"},
		{"入り口", "入口"},
		{"ひらがな", ""},
		{"口コミ", "口"},
	}
	for _, tt := range tests {
		if got := string(KanjiRunes(tt.word)); got != tt.want {
			t.Errorf("KanjiRunes(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
