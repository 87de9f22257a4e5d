package affect

import (
	"sort"
)

// Analyzer scores text against an immutable affect lexicon. It holds no
// per-analysis state, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	lexicon Lexicon
	rooter  Rooter
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRooter overrides the default Snowball root reduction.
func WithRooter(r Rooter) Option {
	return func(a *Analyzer) {
		a.rooter = r
	}
}

// NewAnalyzer builds an analyzer over lex. The lexicon must already be
// loaded; a nil or empty lexicon is the only construction failure.
func NewAnalyzer(lex Lexicon, opts ...Option) (*Analyzer, error) {
	if len(lex) == 0 {
		return nil, ErrLexiconEmpty
	}

	a := &Analyzer{
		lexicon: lex,
		rooter:  SnowballRooter{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Result holds the affect tally for one analyzed text. Each call to Analyze
// produces an independent Result; results never reference shared state.
type Result struct {
	// WordCount is the number of word tokens scored, matched or not.
	WordCount int `json:"word_count"`
	// RawCounts tallies every affect carried by matched words. Keys cover
	// the full label set; unmatched affects stay at zero.
	RawCounts map[Affect]int `json:"raw_counts"`
	// Frequencies is RawCounts normalized by WordCount, each in [0,1].
	// All zero when WordCount is zero.
	Frequencies map[Affect]float64 `json:"frequencies"`
	// AffectWords is the lexicon filtered to the words that matched,
	// keyed by the form found in the lexicon.
	AffectWords map[string][]Affect `json:"affect_words,omitempty"`
}

// TopAffects returns the labels tied at the highest nonzero frequency,
// sorted. Empty when nothing matched.
func (r Result) TopAffects() []Affect {
	var max float64
	for _, f := range r.Frequencies {
		if f > max {
			max = f
		}
	}
	if max == 0 {
		return nil
	}

	var top []Affect
	for a, f := range r.Frequencies {
		if f == max {
			top = append(top, a)
		}
	}
	sort.Slice(top, func(i, j int) bool { return top[i] < top[j] })
	return top
}

// Analyze tokenizes text and scores it against the lexicon. It never fails:
// malformed or non-alphabetic content is filtered out during tokenization
// and unmatched words simply count toward the total.
func (a *Analyzer) Analyze(text string) Result {
	return a.score(Tokenize(text))
}

// AnalyzeTokens scores pre-tokenized input, for callers that tokenize or
// lemmatize upstream. Tokens are scored verbatim apart from root reduction,
// so Analyze(text) and AnalyzeTokens(Tokenize(text)) agree.
func (a *Analyzer) AnalyzeTokens(tokens []string) Result {
	return a.score(tokens)
}

func (a *Analyzer) score(tokens []string) Result {
	res := Result{
		RawCounts:   make(map[Affect]int, len(known)),
		Frequencies: make(map[Affect]float64, len(known)),
	}
	for _, label := range All() {
		res.RawCounts[label] = 0
		res.Frequencies[label] = 0
	}

	for _, tok := range tokens {
		res.WordCount++

		key, affects := a.lookup(tok)
		if affects == nil {
			continue
		}
		for _, label := range affects {
			res.RawCounts[label]++
		}
		if res.AffectWords == nil {
			res.AffectWords = make(map[string][]Affect)
		}
		res.AffectWords[key] = affects
	}

	if res.WordCount > 0 {
		total := float64(res.WordCount)
		for label, count := range res.RawCounts {
			res.Frequencies[label] = float64(count) / total
		}
	}
	return res
}

// lookup tries the morphological root first, then the surface token, so
// lexicons keyed by either stems or lemmas resolve. Returns the key that
// matched and its affects, or "" and nil.
func (a *Analyzer) lookup(tok string) (string, []Affect) {
	root := a.rooter.Root(tok)
	if affects := a.lexicon[root]; affects != nil {
		return root, affects
	}
	if root != tok {
		if affects := a.lexicon[tok]; affects != nil {
			return tok, affects
		}
	}
	return "", nil
}
