package affect

// Affect is one emotional category from the closed label set used by the
// lexicon. Words may carry any number of affects, including none.
type Affect string

const (
	Fear         Affect = "fear"
	Anger        Affect = "anger"
	Anticipation Affect = "anticipation"
	Trust        Affect = "trust"
	Surprise     Affect = "surprise"
	Positive     Affect = "positive"
	Negative     Affect = "negative"
	Sadness      Affect = "sadness"
	Disgust      Affect = "disgust"
	Joy          Affect = "joy"
)

// All lists every affect label in a fixed order. Result maps are keyed by
// these and only these.
func All() []Affect {
	return []Affect{
		Fear, Anger, Anticipation, Trust, Surprise,
		Positive, Negative, Sadness, Disgust, Joy,
	}
}

var known = func() map[Affect]struct{} {
	m := make(map[Affect]struct{}, 10)
	for _, a := range All() {
		m[a] = struct{}{}
	}
	return m
}()

// Valid reports whether label is part of the closed affect vocabulary.
func Valid(label Affect) bool {
	_, ok := known[label]
	return ok
}
