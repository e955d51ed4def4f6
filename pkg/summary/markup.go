package summary

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// PreviewLength is how many characters of a summary the history list shows.
const PreviewLength = 150

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Raw HTML in model output is dropped by goldmark's default (safe) renderer.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

// StripBold removes the **bold** markers and keeps the inner text.
func StripBold(text string) string {
	return boldPattern.ReplaceAllString(text, "$1")
}

// RenderHTML renders a summary as HTML, bold markup included.
func RenderHTML(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Truncate cuts text to max characters and appends "..." when it was longer.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
