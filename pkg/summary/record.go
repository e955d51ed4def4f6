// Package summary holds the summary record model and the small text helpers
// the screens and the CLI share.
package summary

import (
	"strings"
	"time"
)

const (
	// NotAvailable marks a record whose source video link is unknown.
	NotAvailable = "N/A"

	DefaultLanguageCode = "en"
	DefaultLanguageName = "English"
)

// Record is one generated summary plus its metadata. JSON names follow the
// persisted layout so existing storage keeps loading.
type Record struct {
	Summary         string    `json:"summary"`
	SourceReference string    `json:"url"`
	LanguageCode    string    `json:"language"`
	LanguageName    string    `json:"languageName"`
	CreatedAt       time.Time `json:"timestamp"`
}

// NewRecord builds a record for a freshly generated summary.
func NewRecord(text, sourceReference string, lang Language, now time.Time) Record {
	source := strings.TrimSpace(sourceReference)
	if source == "" {
		source = NotAvailable
	}
	return Record{
		Summary:         text,
		SourceReference: source,
		LanguageCode:    SanitizeLanguageCode(lang.Code),
		LanguageName:    lang.Name,
		CreatedAt:       now.UTC(),
	}
}

// HasVideoURL reports whether the record points at an openable video.
func (r Record) HasVideoURL() bool {
	return HasVideoURL(r.SourceReference)
}
