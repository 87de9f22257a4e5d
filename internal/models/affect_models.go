package models

import (
	"time"

	"github.com/spacesedan/affectflow/internal/affect"
)

// AffectAnalysisInput is raw content after markdown cleanup, ready for
// scoring. OriginalText is kept when cleanup changed the text.
type AffectAnalysisInput struct {
	RawContent
	Text         string `json:"text"`
	WasCleaned   bool   `json:"was_cleaned"`
	OriginalText string `json:"original_text,omitempty"`
}

// AffectAnalysisResult is one scored text: the affect distribution plus the
// VADER polarity side-channel.
type AffectAnalysisResult struct {
	AffectAnalysisInput
	WordCount   int                       `json:"word_count"`
	RawCounts   map[affect.Affect]int     `json:"raw_counts"`
	Frequencies map[affect.Affect]float64 `json:"frequencies"`
	TopAffects  []affect.Affect           `json:"top_affects,omitempty"`
	VaderScore  float64                   `json:"vader_score"`
	VaderLabel  string                    `json:"vader_label"`
	AnalyzedAt  time.Time                 `json:"analyzed_at"`
}
