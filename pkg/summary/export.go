package summary

import (
	"fmt"
	"strings"
	"time"
)

const (
	exportTimeLayout  = "2006-01-02 15:04:05"
	historyTimeLayout = "2006-01-02 15:04"
)

// Export renders a record as the plain-text download. A record without a
// timestamp is stamped with now.
func Export(r Record, now time.Time, loc *time.Location) string {
	generated := r.CreatedAt
	if generated.IsZero() {
		generated = now
	}

	var b strings.Builder
	b.WriteString("AI Video Summary\n")
	b.WriteString(fmt.Sprintf("Generated on: %s\n", generated.In(loc).Format(exportTimeLayout)))
	b.WriteString(fmt.Sprintf("Video URL: %s\n", r.SourceReference))
	b.WriteString(fmt.Sprintf("Language: %s\n", r.LanguageCode))
	b.WriteString("\nSummary:\n")
	b.WriteString(StripBold(r.Summary))
	b.WriteString("\n")
	return b.String()
}

// DownloadFilename names the exported file after the export time.
func DownloadFilename(now time.Time) string {
	return fmt.Sprintf("video-summary-%d.txt", now.UnixMilli())
}

// FormatTimestamp renders a history timestamp as date plus hours and minutes.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(historyTimeLayout)
}
