package affect

import (
	"github.com/kljensen/snowball/english"
)

// Rooter reduces a token to the canonical root used as the lexicon lookup
// key. Implementations must be deterministic and must never fail: when no
// reduction applies, the token itself is returned.
type Rooter interface {
	Root(word string) string
}

// RootFunc adapts a plain function to the Rooter interface.
type RootFunc func(word string) string

func (f RootFunc) Root(word string) string { return f(word) }

// SnowballRooter stems English words with the Snowball (Porter2) algorithm.
type SnowballRooter struct{}

func (SnowballRooter) Root(word string) string {
	if word == "" {
		return word
	}
	root := english.Stem(word, false)
	if root == "" {
		return word
	}
	return root
}

// IdentityRooter performs no reduction. Useful when the lexicon is keyed by
// surface forms rather than stems.
type IdentityRooter struct{}

func (IdentityRooter) Root(word string) string { return word }
