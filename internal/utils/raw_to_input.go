package utils

import (
	"github.com/spacesedan/affectflow/internal/models"
	"github.com/spacesedan/affectflow/internal/sentiment"
)

// RawToAffectInput strips markdown and links from raw content so only prose
// reaches the analyzers. The original text is preserved when cleanup
// changed anything.
func RawToAffectInput(c models.RawContent) models.AffectAnalysisInput {
	cleaned := sentiment.CleanMarkdown(c.Text)

	input := models.AffectAnalysisInput{
		RawContent: c,
		Text:       cleaned,
	}
	if cleaned != c.Text {
		input.WasCleaned = true
		input.OriginalText = c.Text
	}
	return input
}
