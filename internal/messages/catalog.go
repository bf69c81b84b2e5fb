// Package messages provides the localized strings used in suggestion payloads.
package messages

import (
	"golang.org/x/text/language"

	"github.com/gcbaptista/go-fuzzy-search/model"
)

// DefaultLanguage is used when a requested language cannot be matched.
const DefaultLanguage = "en"

// Provider resolves the suggestion strings for a language tag.
type Provider interface {
	Messages(lang string) model.Messages
}

// defaults is the built-in catalog.
var defaults = map[string]model.Messages{
	"en": {Suggest: "Did you mean this?", NoResults: "No results found."},
	"tr": {Suggest: "Bunu mu demek istediniz?", NoResults: "Sonuç bulunamadı."},
	"de": {Suggest: "Meinten Sie das?", NoResults: "Keine Ergebnisse gefunden."},
	"az": {Suggest: "Bu sözü demək istədiyinizə əminsiniz?", NoResults: "Heç bir nəticə tapılmadı."},
	"fr": {Suggest: "Vouliez-vous dire ceci?", NoResults: "Aucun résultat trouvé."},
	"es": {Suggest: "¿Quisiste decir esto?", NoResults: "No se encontraron resultados."},
	"it": {Suggest: "Volevi dire questo?", NoResults: "Nessun risultato trovato."},
	"ru": {Suggest: "Вы имели в виду это?", NoResults: "Результатов не найдено."},
	"pt": {Suggest: "Quis dizer isto?", NoResults: "Nenhum resultado encontrado."},
	"ar": {Suggest: "هل كنت تعني هذا؟", NoResults: "لم يتم العثور على نتائج."},
}

// Catalog is a Provider backed by the built-in strings with optional overrides.
type Catalog struct {
	entries []model.Messages
	tags    []language.Tag
	matcher language.Matcher
}

// NewCatalog builds a catalog from the defaults with custom merged over them per language.
// A non-empty custom field replaces the default one; languages absent from the defaults
// are added. Unparseable language keys are ignored.
func NewCatalog(custom map[string]model.Messages) *Catalog {
	merged := make(map[string]model.Messages, len(defaults)+len(custom))
	for lang, m := range defaults {
		merged[lang] = m
	}
	for lang, override := range custom {
		base := merged[lang]
		if override.Suggest != "" {
			base.Suggest = override.Suggest
		}
		if override.NoResults != "" {
			base.NoResults = override.NoResults
		}
		merged[lang] = base
	}

	c := &Catalog{}
	// The first tag is the matcher's fallback.
	c.add(DefaultLanguage, merged[DefaultLanguage])
	for lang, m := range merged {
		if lang != DefaultLanguage {
			c.add(lang, m)
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c
}

func (c *Catalog) add(lang string, m model.Messages) {
	tag, err := language.Parse(lang)
	if err != nil {
		return
	}
	c.tags = append(c.tags, tag)
	c.entries = append(c.entries, m)
}

// Messages returns the strings for lang. Regional variants resolve to their base
// language ("pt-BR" -> "pt"); unknown or malformed tags fall back to English.
// Fields missing from a custom-only language are filled from English.
func (c *Catalog) Messages(lang string) model.Messages {
	m := c.entries[0]
	if tag, err := language.Parse(lang); err == nil {
		_, idx, confidence := c.matcher.Match(tag)
		if confidence != language.No {
			m = c.entries[idx]
		}
	}

	fallback := c.entries[0]
	if m.Suggest == "" {
		m.Suggest = fallback.Suggest
	}
	if m.NoResults == "" {
		m.NoResults = fallback.NoResults
	}
	return m
}

// Languages returns the language tags the catalog can serve.
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		langs = append(langs, tag.String())
	}
	return langs
}
