// Package i18n resolves localization keys against an embedded message catalog.
package i18n

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultCatalog []byte

// Translator maps a localization key to display text.
type Translator interface {
	T(key string) string
}

// TranslatorFunc adapts a plain function.
type TranslatorFunc func(key string) string

func (f TranslatorFunc) T(key string) string { return f(key) }

// Catalog holds messages per locale code (en_IN, hi_IN, ...).
type Catalog struct {
	fallback string
	locales  []string
	messages map[string]map[string]string
	matcher  language.Matcher
}

// Load parses the embedded catalog. fallback is the locale used when nothing matches.
func Load(fallback string) (*Catalog, error) {
	return Parse(defaultCatalog, fallback)
}

// Parse builds a catalog from YAML of the form {locale: {KEY: text}}.
func Parse(raw []byte, fallback string) (*Catalog, error) {
	messages := map[string]map[string]string{}
	if err := yaml.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}
	if _, ok := messages[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q missing from catalog", fallback)
	}

	// fallback first so the matcher prefers it on ties
	locales := []string{fallback}
	for code := range messages {
		if code != fallback {
			locales = append(locales, code)
		}
	}
	tags := make([]language.Tag, 0, len(locales))
	for _, code := range locales {
		tags = append(tags, language.Make(strings.ReplaceAll(code, "_", "-")))
	}

	return &Catalog{
		fallback: fallback,
		locales:  locales,
		messages: messages,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// Match picks the catalog locale for an Accept-Language header or locale code.
func (c *Catalog) Match(accept string) string {
	accept = strings.ReplaceAll(strings.TrimSpace(accept), "_", "-")
	if accept == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.locales[idx]
}

// For returns a translator for the locale. Unknown keys fall back to the
// fallback locale and finally to the key itself.
func (c *Catalog) For(locale string) Translator {
	primary := c.messages[locale]
	fallback := c.messages[c.fallback]
	return TranslatorFunc(func(key string) string {
		if v, ok := primary[key]; ok && v != "" {
			return v
		}
		if v, ok := fallback[key]; ok && v != "" {
			return v
		}
		return key
	})
}
