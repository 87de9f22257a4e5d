package models

import "time"

// RawContent is the unit of ingest: one piece of text from some upstream
// source, identified by ContentID for dedupe and offset tracking.
type RawContent struct {
	ContentID string          `json:"content_id"`
	Source    string          `json:"source"`
	Topic     string          `json:"topic,omitempty" dynamodbav:"topic,omitempty"`
	Text      string          `json:"text"`
	Metadata  ContentMetadata `json:"metadata"`
}

type ContentMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Language  string    `json:"language,omitempty"`
	URL       string    `json:"url,omitempty"`
}
