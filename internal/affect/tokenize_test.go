package affect

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{"simple words", "happy joyful fear", []string{"happy", "joyful", "fear"}},
		{"punctuation stripped", "Fear! Joy.", []string{"fear", "joy"}},
		{"mixed case", "HAPPY Sad mIxEd", []string{"happy", "sad", "mixed"}},
		{"numbers dropped", "100 days of code", []string{"days", "of", "code"}},
		{"digits split tokens", "abc123def", []string{"abc", "def"}},
		{"symbols only", "!!! ??? ... $$$", nil},
		{"apostrophe splits", "don't", []string{"don", "t"}},
		{"hyphen splits", "well-being", []string{"well", "being"}},
		{"unicode letters kept", "café niño", []string{"café", "niño"}},
		{"newlines and tabs", "joy\nfear\tanger", []string{"joy", "fear", "anger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
