package affect

import "testing"

func TestSnowballRooter(t *testing.T) {
	r := SnowballRooter{}

	tests := []struct {
		word string
		want string
	}{
		{"running", "run"},
		{"cats", "cat"},
		{"joyful", "joy"},
		{"fear", "fear"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := r.Root(tt.word); got != tt.want {
			t.Errorf("Root(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSnowballRooterDeterministic(t *testing.T) {
	r := SnowballRooter{}
	for _, word := range []string{"analysis", "feelings", "happily", "xqzw"} {
		first := r.Root(word)
		for i := 0; i < 3; i++ {
			if got := r.Root(word); got != first {
				t.Fatalf("Root(%q) not deterministic: %q then %q", word, first, got)
			}
		}
	}
}

func TestIdentityRooter(t *testing.T) {
	r := IdentityRooter{}
	for _, word := range []string{"running", "", "fear"} {
		if got := r.Root(word); got != word {
			t.Errorf("Root(%q) = %q, want identity", word, got)
		}
	}
}

func TestRootFunc(t *testing.T) {
	r := RootFunc(func(w string) string { return w + "x" })
	if got := r.Root("a"); got != "ax" {
		t.Errorf("RootFunc not applied: got %q", got)
	}
}
