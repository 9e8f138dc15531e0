package enricher

import "testing"

func TestKanaToRomaji(t *testing.T) {
	tests := []struct {
		kana string
		want string
	}{
		{"ジンコウ", "jinkou"},
		{"クチ", "kuchi"},
		{"ニホンゴ", "nihongo"},
		{"キャク", "kyaku"},
		{"シャシン", "shashin"},
		{"ガッコウ", "gakkou"},  // small tsu doubles the consonant
		{"マッチャ", "matcha"},  // but っち is written tch
		{"コーヒー", "koohii"},  // long-vowel mark repeats the vowel
		{"パンー", "pan"},      // but never doubles a consonant
		{"ー", ""},
		{"ヴァイオリン", "vaiorin"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := KanaToRomaji(tt.kana); got != tt.want {
			t.Errorf("KanaToRomaji(%q) = %q, want %q", tt.kana, got, tt.want)
		}
	}
}

func TestKanaToRomaji_DropsNonKatakana(t *testing.T) {
	if got := KanaToRomaji("クチ(kuchi)"); got != "kuchi" {
		t.Errorf("KanaToRomaji with latin noise = %q", got)
	}
}

func TestRomajizer(t *testing.T) {
	if testing.Short() {
		t.Skip("IPA dictionary load is slow")
	}
	r, err := NewRomajizer()
	if err != nil {
		t.Fatalf("NewRomajizer: %v", err)
	}

	tests := []struct {
		word string
		want string
	}{
		{"人口", "jinkou"},
		{"日本語", "nihongo"},
	}
	for _, tt := range tests {
		if got := r.Romaji(tt.word); got != tt.want {
			t.Errorf("Romaji(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
