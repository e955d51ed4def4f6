// Package languages provides the selectable output languages, grouped the way
// the input screen offers them.
package languages

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"vidsum/pkg/summary"
)

const (
	GroupCountry = "country"
	GroupIndian  = "indian"
)

//go:embed catalog.yml
var catalogYAML []byte

type rawEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Catalog holds the validated language options per group.
type Catalog struct {
	groups map[string][]summary.Language
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded language catalog is invalid: %v", err))
	}
	return c
}

// Parse reads a catalog. Entries without a code or a name are skipped.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string][]rawEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse language catalog: %w", err)
	}

	c := &Catalog{groups: make(map[string][]summary.Language, len(raw))}
	for group, entries := range raw {
		langs := make([]summary.Language, 0, len(entries))
		for _, e := range entries {
			lang, err := summary.NewLanguage(e.Code, e.Name)
			if err != nil {
				continue
			}
			langs = append(langs, lang)
		}
		c.groups[group] = langs
	}
	return c, nil
}

// Groups lists the known group names in display order.
func (c *Catalog) Groups() []string {
	return []string{GroupCountry, GroupIndian}
}

// Options returns the languages of a group with English first when the group
// does not already contain it. Any group other than "indian" means "country".
func (c *Catalog) Options(group string) []summary.Language {
	if group != GroupIndian {
		group = GroupCountry
	}
	langs := c.groups[group]

	for _, l := range langs {
		if l.Code == summary.DefaultLanguageCode {
			out := make([]summary.Language, len(langs))
			copy(out, langs)
			return out
		}
	}

	out := make([]summary.Language, 0, len(langs)+1)
	out = append(out, summary.English)
	return append(out, langs...)
}

// Resolve finds code within group, falling back to English.
func (c *Catalog) Resolve(group, code string) summary.Language {
	for _, l := range c.Options(group) {
		if l.Code == code {
			return l
		}
	}
	return summary.English
}
