// Package i18n holds the portal copy as an x/text message catalog.
package i18n

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Locale is the only locale the portal ships.
const Locale = "es-MX"

// Localizer provides translated strings for templates.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// NewCatalog builds the es-MX catalog, also registered under plain "es".
func NewCatalog() (*catalog.Builder, error) {
	tag := language.MustParse(Locale)
	base, _ := tag.Base()
	tags := []language.Tag{tag, language.Make(base.String())}

	b := catalog.NewBuilder(catalog.Fallback(tag))
	keys := make([]string, 0, len(messages))
	for k := range messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, t := range tags {
			if err := b.SetString(t, k, messages[k]); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", t, k, err)
			}
		}
	}
	return b, nil
}

// NewPrinter returns an es-MX printer over the portal catalog.
func NewPrinter() (*message.Printer, error) {
	cat, err := NewCatalog()
	if err != nil {
		return nil, err
	}
	return message.NewPrinter(language.MustParse(Locale), message.Catalog(cat)), nil
}

// T returns a translated string or the key if no localizer is available.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}

// Has reports whether key is defined in the catalog.
func Has(key string) bool {
	_, ok := messages[key]
	return ok
}
