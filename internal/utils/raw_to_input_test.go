package utils

import (
	"strings"
	"testing"

	"github.com/spacesedan/affectflow/internal/models"
)

func TestRawToAffectInputPlainText(t *testing.T) {
	content := models.RawContent{
		ContentID: "c1",
		Source:    "feed",
		Text:      "plain happy text",
	}

	input := RawToAffectInput(content)

	if input.ContentID != "c1" {
		t.Errorf("ContentID = %q, want c1", input.ContentID)
	}
	if input.Text != "plain happy text" {
		t.Errorf("Text = %q, want unchanged", input.Text)
	}
	if input.WasCleaned {
		t.Error("WasCleaned = true for plain text")
	}
	if input.OriginalText != "" {
		t.Errorf("OriginalText = %q, want empty", input.OriginalText)
	}
}

func TestRawToAffectInputMarkdown(t *testing.T) {
	raw := "# Joy\n\nSome **happy** news with [a link](https://example.com)."
	content := models.RawContent{ContentID: "c2", Text: raw}

	input := RawToAffectInput(content)

	if !input.WasCleaned {
		t.Fatal("WasCleaned = false for markdown input")
	}
	if input.OriginalText != raw {
		t.Errorf("OriginalText = %q, want original markdown", input.OriginalText)
	}
	for _, banned := range []string{"#", "**", "https://"} {
		if strings.Contains(input.Text, banned) {
			t.Errorf("cleaned text %q still contains %q", input.Text, banned)
		}
	}
	for _, kept := range []string{"Joy", "happy", "a link"} {
		if !strings.Contains(input.Text, kept) {
			t.Errorf("cleaned text %q missing %q", input.Text, kept)
		}
	}
}
