package enricher

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Romajizer derives a Hepburn-style romaji transliteration for compound
// words. The katakana reading comes from the IPA dictionary tokenizer;
// tokens the dictionary cannot read fall back to their surface form.
type Romajizer struct {
	t *tokenizer.Tokenizer
}

// NewRomajizer creates a Romajizer. Building the IPA tokenizer is
// relatively expensive; create one per process and reuse it.
func NewRomajizer() (*Romajizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Romajizer{t: t}, nil
}

// Romaji returns the romaji reading of a word, or "" when no reading can
// be derived.
func (r *Romajizer) Romaji(word string) string {
	var kana strings.Builder
	for _, token := range r.t.Tokenize(word) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		reading := token.Surface
		// IPA feature 7 is the katakana reading.
		if features := token.Features(); len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}
		kana.WriteString(reading)
	}
	return KanaToRomaji(kana.String())
}

var kanaDigraphs = map[string]string{
	"キャ": "kya", "キュ": "kyu", "キョ": "kyo",
	"シャ": "sha", "シュ": "shu", "ショ": "sho",
	"チャ": "cha", "チュ": "chu", "チョ": "cho",
	"ニャ": "nya", "ニュ": "nyu", "ニョ": "nyo",
	"ヒャ": "hya", "ヒュ": "hyu", "ヒョ": "hyo",
	"ミャ": "mya", "ミュ": "myu", "ミョ": "myo",
	"リャ": "rya", "リュ": "ryu", "リョ": "ryo",
	"ギャ": "gya", "ギュ": "gyu", "ギョ": "gyo",
	"ジャ": "ja", "ジュ": "ju", "ジョ": "jo",
	"ヂャ": "ja", "ヂュ": "ju", "ヂョ": "jo",
	"ビャ": "bya", "ビュ": "byu", "ビョ": "byo",
	"ピャ": "pya", "ピュ": "pyu", "ピョ": "pyo",
	"ファ": "fa", "フィ": "fi", "フェ": "fe", "フォ": "fo",
	"ヴァ": "va", "ヴィ": "vi", "ヴェ": "ve", "ヴォ": "vo",
	"ティ": "ti", "ディ": "di", "ウィ": "wi", "ウェ": "we", "ウォ": "wo",
}

var kanaSyllables = map[rune]string{
	'ア': "a", 'イ': "i", 'ウ': "u", 'エ': "e", 'オ': "o",
	'カ': "ka", 'キ': "ki", 'ク': "ku", 'ケ': "ke", 'コ': "ko",
	'サ': "sa", 'シ': "shi", 'ス': "su", 'セ': "se", 'ソ': "so",
	'タ': "ta", 'チ': "chi", 'ツ': "tsu", 'テ': "te", 'ト': "to",
	'ナ': "na", 'ニ': "ni", 'ヌ': "nu", 'ネ': "ne", 'ノ': "no",
	'ハ': "ha", 'ヒ': "hi", 'フ': "fu", 'ヘ': "he", 'ホ': "ho",
	'マ': "ma", 'ミ': "mi", 'ム': "mu", 'メ': "me", 'モ': "mo",
	'ヤ': "ya", 'ユ': "yu", 'ヨ': "yo",
	'ラ': "ra", 'リ': "ri", 'ル': "ru", 'レ': "re", 'ロ': "ro",
	'ワ': "wa", 'ヲ': "o", 'ン': "n",
	'ガ': "ga", 'ギ': "gi", 'グ': "gu", 'ゲ': "ge", 'ゴ': "go",
	'ザ': "za", 'ジ': "ji", 'ズ': "zu", 'ゼ': "ze", 'ゾ': "zo",
	'ダ': "da", 'ヂ': "ji", 'ヅ': "zu", 'デ': "de", 'ド': "do",
	'バ': "ba", 'ビ': "bi", 'ブ': "bu", 'ベ': "be", 'ボ': "bo",
	'パ': "pa", 'ピ': "pi", 'プ': "pu", 'ペ': "pe", 'ポ': "po",
	'ヴ': "vu",
	'ァ': "a", 'ィ': "i", 'ゥ': "u", 'ェ': "e", 'ォ': "o",
}

// KanaToRomaji converts a katakana string to Hepburn-style romaji.
// Runes outside the katakana tables are dropped.
func KanaToRomaji(kana string) string {
	runes := []rune(kana)
	var b strings.Builder
	geminate := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == 'ッ' {
			geminate = true
			continue
		}
		if r == 'ー' {
			// Long vowel: repeat the last written vowel. After a consonant
			// (ン, or a dropped rune) the mark contributes nothing.
			out := b.String()
			if len(out) > 0 {
				if c := out[len(out)-1]; strings.ContainsRune("aeiou", rune(c)) {
					b.WriteByte(c)
				}
			}
			continue
		}

		var syl string
		if i+1 < len(runes) {
			if d, ok := kanaDigraphs[string(runes[i:i+2])]; ok {
				syl = d
				i++
			}
		}
		if syl == "" {
			s, ok := kanaSyllables[r]
			if !ok {
				continue
			}
			syl = s
		}

		if geminate {
			// Hepburn writes っち as "tchi", otherwise doubles the consonant.
			if strings.HasPrefix(syl, "ch") {
				b.WriteByte('t')
			} else {
				b.WriteByte(syl[0])
			}
			geminate = false
		}
		b.WriteString(syl)
	}
	return b.String()
}
