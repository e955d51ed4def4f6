package summary

import (
	"regexp"
	"strings"
)

const maxLanguageCodeLength = 10

var invalidCodeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ValidationError is returned for user input that is rejected before any side
// effect happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SanitizeLanguageCode accepts any value and returns a safe language code.
// Non-strings and empty results fall back to DefaultLanguageCode.
func SanitizeLanguageCode(v any) string {
	code, ok := v.(string)
	if !ok || code == "" {
		return DefaultLanguageCode
	}

	runes := []rune(code)
	if len(runes) > maxLanguageCodeLength {
		runes = runes[:maxLanguageCodeLength]
	}
	cleaned := invalidCodeChars.ReplaceAllString(string(runes), "")
	if cleaned == "" {
		return DefaultLanguageCode
	}
	return cleaned
}

// Language is a selectable output language.
type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// English is the default language; prompts for it carry no language constraint.
var English = Language{Code: DefaultLanguageCode, Name: DefaultLanguageName}

// NewLanguage validates a code/name pair.
func NewLanguage(code, name string) (Language, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return Language{}, &ValidationError{Field: "language", Message: "language code is required"}
	}
	if name == "" {
		return Language{}, &ValidationError{Field: "language", Message: "language name is required"}
	}
	return Language{Code: SanitizeLanguageCode(code), Name: name}, nil
}

// IsDefaultLanguage reports whether name designates the default language. An empty
// name counts as the default.
func IsDefaultLanguage(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.EqualFold(name, DefaultLanguageName)
}

// ValidateSourceReference trims the submitted video link and rejects empty input.
func ValidateSourceReference(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &ValidationError{Field: "url", Message: "Please enter a valid URL"}
	}
	return trimmed, nil
}
