package domain

// Record is one on-disk kanji document. Files are named {character}.json
// inside the corpus directory; ID repeats the character.
type Record struct {
	ID             string   `json:"id"`
	Meaning        *Meaning `json:"meaning,omitempty"`
	MeaningVN      string   `json:"meaningVN,omitempty"` // legacy alias, removed by normalization
	MeaningEN      string   `json:"meaningEN,omitempty"` // legacy alias, removed by normalization
	Mnemonic       string   `json:"mnemonic,omitempty"`
	HanViet        []string `json:"hanViet,omitempty"`
	HanVietExplain *Gloss   `json:"hanVietExplain,omitempty"`

	Kanjialive *KanjialiveData `json:"kanjialiveData,omitempty"`
	Jisho      *JishoData      `json:"jishoData,omitempty"`
}

// KanjialiveData is the Kanji alive source payload.
type KanjialiveData struct {
	Meaning     *Meaning  `json:"meaning,omitempty"`
	Onyomi      *Reading  `json:"onyomi,omitempty"`
	Kunyomi     *Reading  `json:"kunyomi,omitempty"`
	StrokeCount int       `json:"strokeCount,omitempty"`
	Radical     *Radical  `json:"radical,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
}

// JishoData is the Jisho source payload.
type JishoData struct {
	TaughtIn    string    `json:"taughtIn,omitempty"`
	JLPTLevel   string    `json:"jlptLevel,omitempty"`
	StrokeCount int       `json:"strokeCount,omitempty"`
	Meaning     *Meaning  `json:"meaning,omitempty"`
	Onyomi      []string  `json:"onyomi,omitempty"`
	Kunyomi     []string  `json:"kunyomi,omitempty"`
	Radical     *Radical  `json:"radical,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
}

// Reading is a kana reading with its romaji transliteration.
type Reading struct {
	Kana   string `json:"kana,omitempty"`
	Romaji string `json:"romaji,omitempty"`
}

// Radical describes the record's radical.
type Radical struct {
	Character   string   `json:"character,omitempty"`
	Meaning     *Meaning `json:"meaning,omitempty"`
	StrokeCount int      `json:"strokeCount,omitempty"`
}

// Example is a compound word illustrating the kanji's use. It carries the
// same bilingual meaning and Hán Việt fields as the root record.
type Example struct {
	Word           string   `json:"word"`
	Reading        string   `json:"reading,omitempty"`
	Romaji         string   `json:"romaji,omitempty"`
	Meaning        *Meaning `json:"meaning,omitempty"`
	MeaningVN      string   `json:"meaningVN,omitempty"`
	MeaningEN      string   `json:"meaningEN,omitempty"`
	HanViet        []string `json:"hanViet,omitempty"`
	HanVietExplain *Gloss   `json:"hanVietExplain,omitempty"`
	Audio          string   `json:"audio,omitempty"`
}

// JLPT returns the record's JLPT level tag, if it has a recognized one.
func (r *Record) JLPT() (Level, bool) {
	if r.Jisho == nil || r.Jisho.JLPTLevel == "" {
		return "", false
	}
	l, err := ParseLevel(r.Jisho.JLPTLevel)
	if err != nil {
		return "", false
	}
	return l, true
}

// Strokes returns the stroke count, preferring the Jisho payload.
func (r *Record) Strokes() int {
	if r.Jisho != nil && r.Jisho.StrokeCount > 0 {
		return r.Jisho.StrokeCount
	}
	if r.Kanjialive != nil {
		return r.Kanjialive.StrokeCount
	}
	return 0
}

// EnglishMeaning returns the best root-level English meaning available,
// used as the translation fallback for sub-records without their own.
func (r *Record) EnglishMeaning() string {
	if r.Meaning != nil && r.Meaning.En != nil {
		return *r.Meaning.En
	}
	if r.Jisho != nil && r.Jisho.Meaning != nil && r.Jisho.Meaning.En != nil {
		return *r.Jisho.Meaning.En
	}
	if r.Kanjialive != nil && r.Kanjialive.Meaning != nil && r.Kanjialive.Meaning.En != nil {
		return *r.Kanjialive.Meaning.En
	}
	return ""
}

// Compounds returns pointers to every example compound in both source
// payloads, so callers can enrich them in place.
func (r *Record) Compounds() []*Example {
	var out []*Example
	if r.Kanjialive != nil {
		for i := range r.Kanjialive.Examples {
			out = append(out, &r.Kanjialive.Examples[i])
		}
	}
	if r.Jisho != nil {
		for i := range r.Jisho.Examples {
			out = append(out, &r.Jisho.Examples[i])
		}
	}
	return out
}

// Summary is the listing projection served by the JLPT level endpoint.
type Summary struct {
	Kanji          string   `json:"kanji"`
	Meaning        *Meaning `json:"meaning,omitempty"`
	Onyomi         []string `json:"onyomi,omitempty"`
	Kunyomi        []string `json:"kunyomi,omitempty"`
	JLPTLevel      Level    `json:"jlptLevel"`
	StrokeCount    int      `json:"strokeCount"`
	Index          int      `json:"index"`
	AmHanViet      string   `json:"amHanViet,omitempty"`
	HanViet        []string `json:"hanViet,omitempty"`
	HanVietExplain *Gloss   `json:"hanVietExplain,omitempty"`
}

// Override carries locally curated fields that take precedence over corpus
// data when serving records and summaries. Keyed by character in the
// override dictionary file.
type Override struct {
	MeaningVi string   `json:"meaningVi,omitempty"`
	Mnemonic  string   `json:"mnemonic,omitempty"`
	HanViet   []string `json:"hanViet,omitempty"`
}

// ApplyOverride merges locally curated fields into the record. Vietnamese
// meaning and mnemonic from the override win over corpus values.
func (r *Record) ApplyOverride(o *Override) {
	if o == nil {
		return
	}
	if o.MeaningVi != "" {
		if r.Meaning == nil {
			r.Meaning = &Meaning{}
		}
		vi := o.MeaningVi
		r.Meaning.Vi = &vi
	}
	if o.Mnemonic != "" {
		r.Mnemonic = o.Mnemonic
	}
	if len(o.HanViet) > 0 {
		r.HanViet = append([]string(nil), o.HanViet...)
	}
}

// Summarize builds the listing projection for a record. Index is assigned
// later, after the level bucket is sorted.
func (r *Record) Summarize(level Level) Summary {
	s := Summary{
		Kanji:          r.ID,
		Meaning:        r.Meaning,
		JLPTLevel:      level,
		StrokeCount:    r.Strokes(),
		HanViet:        r.HanViet,
		HanVietExplain: r.HanVietExplain,
	}
	if r.Jisho != nil {
		s.Onyomi = r.Jisho.Onyomi
		s.Kunyomi = r.Jisho.Kunyomi
	}
	if len(r.HanViet) > 0 {
		s.AmHanViet = r.HanViet[0]
	}
	return s
}
