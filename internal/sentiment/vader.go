package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// StripLinks removes URLs from input, keeping the anchor text of markdown
// links. URLs would otherwise survive tokenization as noise words.
func StripLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// CleanMarkdown renders markdown to plain text, drops the HTML tags the
// renderer emits, collapses whitespace and strips links, leaving only the
// prose the analyzers should see.
func CleanMarkdown(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(output), " ")
	plain = strings.Join(strings.Fields(plain), " ")

	return StripLinks(plain)
}

// ScoreWithVADER computes the VADER compound polarity for text and a coarse
// label. Stored next to the affect distribution as a cross-check signal.
func ScoreWithVADER(text string) (float64, string) {
	plainText := CleanMarkdown(text)

	sentiment := analyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= 0.20 {
		label = "positive"
	} else if score <= -0.20 {
		label = "negative"
	} else {
		label = "neutral"
	}

	return score, label
}
