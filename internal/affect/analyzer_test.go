package affect

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func testLexicon(t *testing.T) Lexicon {
	t.Helper()
	lex, err := StaticProvider{Entries: map[string][]string{
		"happy":  {"joy", "positive"},
		"joyful": {"joy", "positive"},
		"fear":   {"fear", "negative"},
		"joy":    {"joy", "positive"},
	}}.Load(context.Background())
	if err != nil {
		t.Fatalf("loading static lexicon: %v", err)
	}
	return lex
}

func TestNewAnalyzerEmptyLexicon(t *testing.T) {
	tests := []struct {
		name string
		lex  Lexicon
	}{
		{"nil lexicon", nil},
		{"empty lexicon", Lexicon{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnalyzer(tt.lex); err != ErrLexiconEmpty {
				t.Errorf("expected ErrLexiconEmpty, got %v", err)
			}
		})
	}
}

func TestAnalyzeScenario(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res := a.Analyze("happy joyful fear")

	if res.WordCount != 3 {
		t.Fatalf("WordCount = %d, want 3", res.WordCount)
	}

	wantCounts := map[Affect]int{
		Joy: 2, Positive: 2, Fear: 1, Negative: 1,
	}
	for _, label := range All() {
		want := wantCounts[label]
		if got := res.RawCounts[label]; got != want {
			t.Errorf("RawCounts[%s] = %d, want %d", label, got, want)
		}
	}

	wantFreqs := map[Affect]float64{
		Joy: 2.0 / 3.0, Positive: 2.0 / 3.0, Fear: 1.0 / 3.0, Negative: 1.0 / 3.0,
	}
	for _, label := range All() {
		want := wantFreqs[label]
		if got := res.Frequencies[label]; math.Abs(got-want) > 1e-9 {
			t.Errorf("Frequencies[%s] = %f, want %f", label, got, want)
		}
	}
}

func TestAnalyzeNoMatches(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res := a.Analyze("the and of")

	if res.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", res.WordCount)
	}
	for label, count := range res.RawCounts {
		if count != 0 {
			t.Errorf("RawCounts[%s] = %d, want 0", label, count)
		}
	}
	for label, f := range res.Frequencies {
		if f != 0 {
			t.Errorf("Frequencies[%s] = %f, want 0", label, f)
		}
	}
	if res.AffectWords != nil {
		t.Errorf("AffectWords = %v, want nil", res.AffectWords)
	}
}

func TestAnalyzePunctuation(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res := a.Analyze("Fear! Joy.")

	if res.WordCount != 2 {
		t.Fatalf("WordCount = %d, want 2", res.WordCount)
	}
	if res.RawCounts[Fear] != 1 || res.RawCounts[Negative] != 1 {
		t.Errorf("fear tallies = %d/%d, want 1/1", res.RawCounts[Fear], res.RawCounts[Negative])
	}
	if res.RawCounts[Joy] != 1 || res.RawCounts[Positive] != 1 {
		t.Errorf("joy tallies = %d/%d, want 1/1", res.RawCounts[Joy], res.RawCounts[Positive])
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	for _, text := range []string{"", "   ", "42 1337 !!!", "\n\t"} {
		res := a.Analyze(text)
		if text == "" || res.WordCount == 0 {
			if res.WordCount != 0 {
				t.Errorf("Analyze(%q).WordCount = %d, want 0", text, res.WordCount)
			}
			for label, f := range res.Frequencies {
				if f != 0 {
					t.Errorf("Analyze(%q).Frequencies[%s] = %f, want 0", text, label, f)
				}
			}
		}
	}
}

func TestAnalyzeInvariants(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	texts := []string{
		"happy happy joy joy",
		"A joyful reunion, despite the fear.",
		"nothing matches in here whatsoever",
		"Fear fear FEAR!",
	}

	for _, text := range texts {
		res := a.Analyze(text)

		if res.WordCount != len(Tokenize(text)) {
			t.Errorf("Analyze(%q).WordCount = %d, want %d tokens",
				text, res.WordCount, len(Tokenize(text)))
		}
		for label, count := range res.RawCounts {
			if count < 0 || count > res.WordCount {
				t.Errorf("Analyze(%q).RawCounts[%s] = %d, outside [0,%d]",
					text, label, count, res.WordCount)
			}
			want := 0.0
			if res.WordCount > 0 {
				want = float64(count) / float64(res.WordCount)
			}
			if got := res.Frequencies[label]; math.Abs(got-want) > 1e-9 {
				t.Errorf("Analyze(%q).Frequencies[%s] = %f, want %f", text, label, got, want)
			}
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	text := "A joyful, happy day; no fear at all."
	first := a.Analyze(text)
	second := a.Analyze(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeTokensMatchesAnalyze(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	text := "Happy? Joyful! Fear, and the rest."
	fromText := a.Analyze(text)
	fromTokens := a.AnalyzeTokens(Tokenize(text))

	if !reflect.DeepEqual(fromText, fromTokens) {
		t.Errorf("Analyze and AnalyzeTokens disagree:\ntext:   %+v\ntokens: %+v", fromText, fromTokens)
	}
}

func TestAffectWords(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res := a.Analyze("happy fear day")

	if len(res.AffectWords) != 2 {
		t.Fatalf("AffectWords has %d entries, want 2: %v", len(res.AffectWords), res.AffectWords)
	}
	if _, ok := res.AffectWords["happy"]; !ok {
		t.Errorf("AffectWords missing %q: %v", "happy", res.AffectWords)
	}
	if _, ok := res.AffectWords["fear"]; !ok {
		t.Errorf("AffectWords missing %q: %v", "fear", res.AffectWords)
	}
}

func TestTopAffects(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	tests := []struct {
		name string
		text string
		want []Affect
	}{
		{"joy dominates", "happy joyful fear", []Affect{Joy, Positive}},
		{"no matches", "the and of", nil},
		{"empty", "", nil},
		{"single match", "fear alone", []Affect{Fear, Negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text).TopAffects()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopAffects(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRootFallbackLookup(t *testing.T) {
	// "joyful" stems to "joy"; a lexicon keyed by the surface form must
	// still match via the token fallback, and one keyed by the stem must
	// match via the root.
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res := a.Analyze("joyful")
	if res.RawCounts[Joy] != 1 {
		t.Errorf("surface-form lookup failed: RawCounts[joy] = %d, want 1", res.RawCounts[Joy])
	}

	stemKeyed, err := StaticProvider{Entries: map[string][]string{
		"joy": {"joy", "positive"},
	}}.Load(context.Background())
	if err != nil {
		t.Fatalf("loading stem lexicon: %v", err)
	}
	b, err := NewAnalyzer(stemKeyed)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	if got := b.Analyze("joyful").RawCounts[Joy]; got != 1 {
		t.Errorf("stem lookup failed: RawCounts[joy] = %d, want 1", got)
	}
}

func TestAnalyzerConcurrentUse(t *testing.T) {
	a, err := NewAnalyzer(testLexicon(t))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	text := "happy joyful fear"
	want := a.Analyze(text)

	done := make(chan Result, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- a.Analyze(text)
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; !reflect.DeepEqual(got, want) {
			t.Errorf("concurrent analysis diverged: %+v", got)
		}
	}
}
