package affect

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// ErrLexiconEmpty is returned when an analyzer is constructed over a nil or
// empty lexicon, or when a provider load produces no usable entries.
var ErrLexiconEmpty = errors.New("affect lexicon is empty")

// Lexicon maps a lowercase word root to its associated affects. It is built
// once by a Provider and never mutated afterward, so it is safe to share
// across concurrently running analyzers.
type Lexicon map[string][]Affect

// Affects returns the affect set for word, or nil when the word is unknown.
func (l Lexicon) Affects(word string) []Affect {
	return l[word]
}

// Len returns the number of words in the lexicon.
func (l Lexicon) Len() int { return len(l) }

// Words returns the lexicon vocabulary in sorted order.
func (l Lexicon) Words() []string {
	words := make([]string, 0, len(l))
	for w := range l {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Provider loads a lexicon from some backing source. Loads must be
// deterministic; the returned Lexicon is treated as immutable.
type Provider interface {
	Load(ctx context.Context) (Lexicon, error)
}

// normalize lowercases keys, drops labels outside the closed vocabulary and
// drops entries left with no labels. Unknown labels are logged, not fatal,
// so lexicon files from other taxonomies degrade instead of failing.
func normalize(raw map[string][]string) (Lexicon, error) {
	lex := make(Lexicon, len(raw))
	for word, labels := range raw {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		affects := make([]Affect, 0, len(labels))
		for _, label := range labels {
			a := Affect(strings.ToLower(strings.TrimSpace(label)))
			if !Valid(a) {
				slog.Warn("[Lexicon] Dropping unknown affect label",
					slog.String("word", word),
					slog.String("label", string(label)))
				continue
			}
			affects = append(affects, a)
		}
		if len(affects) == 0 {
			continue
		}
		lex[word] = affects
	}
	if len(lex) == 0 {
		return nil, ErrLexiconEmpty
	}
	return lex, nil
}

// StaticProvider serves a fixed in-memory mapping. Useful for tests and for
// callers that assemble their lexicon elsewhere.
type StaticProvider struct {
	Entries map[string][]string
}

func (p StaticProvider) Load(_ context.Context) (Lexicon, error) {
	return normalize(p.Entries)
}

// FileProvider reads a JSON lexicon file of the form
//
//	{"word": ["joy", "positive"], ...}
type FileProvider struct {
	Path string
}

func (p FileProvider) Load(_ context.Context) (Lexicon, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("[Lexicon] failed to open lexicon file: %w", err)
	}
	defer f.Close()

	lex, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("[Lexicon] failed to parse %s: %w", p.Path, err)
	}
	return lex, nil
}

func decode(r io.Reader) (Lexicon, error) {
	var raw map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	return normalize(raw)
}

//go:embed data/lexicon_en.json
var builtinFS embed.FS

// Builtin returns a provider for the English affect lexicon shipped with the
// binary, for use when no external lexicon source is configured.
func Builtin() Provider {
	return builtinProvider{}
}

type builtinProvider struct{}

func (builtinProvider) Load(_ context.Context) (Lexicon, error) {
	f, err := builtinFS.Open("data/lexicon_en.json")
	if err != nil {
		return nil, fmt.Errorf("[Lexicon] builtin lexicon missing: %w", err)
	}
	defer f.Close()
	return decode(f)
}
