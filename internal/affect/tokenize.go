package affect

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase word tokens. Tokens are maximal runs
// of unicode letters; digits, punctuation and symbols act as separators, so
// "Fear! Joy." yields ["fear", "joy"] and "v2" yields ["v"]. Empty or fully
// non-alphabetic input yields no tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return tokens
}
