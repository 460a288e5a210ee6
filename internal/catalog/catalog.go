// Package catalog is the static registry mapping (locale, translation)
// pairs to provider-specific identifiers and display metadata.
package catalog

import (
	"strings"

	"horse.fit/manna/internal/language"
)

// Namespace identifies which upstream content provider owns a translation
// code. It replaces the "bolls:"-style string prefixes of ad hoc setups
// with a typed discriminator built once at registry load.
type Namespace int

const (
	NamespaceUnknown Namespace = iota
	NamespaceBolls
	NamespaceAPIBible
	NamespaceGetBible
	NamespaceBibleAPI
	NamespaceBibleOrg
)

func (n Namespace) String() string {
	switch n {
	case NamespaceBolls:
		return "bolls"
	case NamespaceAPIBible:
		return "api-bible"
	case NamespaceGetBible:
		return "getbible"
	case NamespaceBibleAPI:
		return "bible-api"
	case NamespaceBibleOrg:
		return "bible-org"
	default:
		return "unknown"
	}
}

// RequiresCredential reports whether the namespace needs a configured API key.
func (n Namespace) RequiresCredential() bool {
	return n == NamespaceAPIBible
}

// Descriptor binds one translation to its provider namespace and display
// metadata. Descriptors are static and never mutated after process start.
type Descriptor struct {
	Locale       string    `json:"locale"`
	Namespace    Namespace `json:"-"`
	Code         string    `json:"id"`
	Abbreviation string    `json:"abbreviation"`
	Name         string    `json:"name"`
}

const DefaultLocale = "en"

// Primary translation tables per locale. Credential-free Bolls entries are
// listed first so they become the locale default; API.Bible entries follow
// for deployments with a key configured.
var translations = map[string][]Descriptor{
	"en": {
		{Locale: "en", Namespace: NamespaceBolls, Code: "KJV", Abbreviation: "KJV", Name: "King James Version"},
		{Locale: "en", Namespace: NamespaceBolls, Code: "WEB", Abbreviation: "WEB", Name: "World English Bible"},
		{Locale: "en", Namespace: NamespaceBolls, Code: "YLT", Abbreviation: "YLT", Name: "Young's Literal Translation"},
		{Locale: "en", Namespace: NamespaceAPIBible, Code: "06125adad2d5898a-01", Abbreviation: "ASV", Name: "American Standard Version"},
		{Locale: "en", Namespace: NamespaceAPIBible, Code: "55212e3cf5d04d49-01", Abbreviation: "KJVA", Name: "King James Version (API)"},
		{Locale: "en", Namespace: NamespaceAPIBible, Code: "65eec8e0b60e656b-01", Abbreviation: "FBV", Name: "Free Bible Version"},
	},
	"es": {
		{Locale: "es", Namespace: NamespaceBolls, Code: "RV1960", Abbreviation: "RV60", Name: "Reina Valera 1960"},
		{Locale: "es", Namespace: NamespaceBolls, Code: "NVI", Abbreviation: "NVI", Name: "Nueva Versión Internacional"},
		{Locale: "es", Namespace: NamespaceBolls, Code: "NTV", Abbreviation: "NTV", Name: "Nueva Traducción Viviente"},
		{Locale: "es", Namespace: NamespaceBolls, Code: "LBLA", Abbreviation: "LBLA", Name: "La Biblia de las Américas"},
		{Locale: "es", Namespace: NamespaceAPIBible, Code: "592420522e16049f-01", Abbreviation: "RVR09", Name: "Reina Valera 1909"},
	},
	"de": {
		{Locale: "de", Namespace: NamespaceBolls, Code: "HFA", Abbreviation: "HFA", Name: "Hoffnung für Alle 2015"},
		{Locale: "de", Namespace: NamespaceBolls, Code: "LUT", Abbreviation: "LUT", Name: "Luther 1912"},
		{Locale: "de", Namespace: NamespaceBolls, Code: "SCH", Abbreviation: "SCH", Name: "Schlachter 1951"},
		{Locale: "de", Namespace: NamespaceBolls, Code: "S00", Abbreviation: "S00", Name: "Schlachter 2000"},
		{Locale: "de", Namespace: NamespaceAPIBible, Code: "926aa5efbc5e04e2-01", Abbreviation: "LUT12", Name: "Luther Bibel 1912 (API)"},
	},
	"fr": {
		{Locale: "fr", Namespace: NamespaceBolls, Code: "FRLSG", Abbreviation: "LSG", Name: "Louis Segond 1910"},
		{Locale: "fr", Namespace: NamespaceBolls, Code: "NBS", Abbreviation: "NBS", Name: "Nouvelle Bible Segond 2002"},
		{Locale: "fr", Namespace: NamespaceBolls, Code: "FRDBY", Abbreviation: "DBY", Name: "Bible de Darby 1890"},
		{Locale: "fr", Namespace: NamespaceBolls, Code: "FRPDV17", Abbreviation: "PDV", Name: "Parole de Vie 2017"},
	},
	"pt": {
		{Locale: "pt", Namespace: NamespaceBolls, Code: "ARA", Abbreviation: "ARA", Name: "Almeida Revista e Atualizada"},
		{Locale: "pt", Namespace: NamespaceBolls, Code: "NAA", Abbreviation: "NAA", Name: "Nova Almeida Atualizada 2017"},
		{Locale: "pt", Namespace: NamespaceBolls, Code: "NTLH", Abbreviation: "NTLH", Name: "Nova Tradução na Linguagem de Hoje"},
		{Locale: "pt", Namespace: NamespaceAPIBible, Code: "d63894c8d9a7a503-01", Abbreviation: "BLT", Name: "Bíblia Livre Para Todos"},
	},
	"it": {
		{Locale: "it", Namespace: NamespaceBolls, Code: "NR06", Abbreviation: "NR06", Name: "Nuova Riveduta 2006"},
		{Locale: "it", Namespace: NamespaceBolls, Code: "CEI", Abbreviation: "CEI", Name: "Conferenza Episcopale Italiana 2008"},
		{Locale: "it", Namespace: NamespaceAPIBible, Code: "41aa25bc421df6bc-01", Abbreviation: "DIO", Name: "La Sacra Bibbia (Diodati)"},
	},
	"zh": {
		{Locale: "zh", Namespace: NamespaceBolls, Code: "CUNPS", Abbreviation: "CUNPS", Name: "Chinese Union New Punctuation (Simplified)"},
		{Locale: "zh", Namespace: NamespaceBolls, Code: "CUV", Abbreviation: "CUV", Name: "Chinese Union (Traditional)"},
		{Locale: "zh", Namespace: NamespaceAPIBible, Code: "7ea794434e9ea7ee-01", Abbreviation: "CCB", Name: "当代译本 (简体)"},
	},
}

// GetBible.net fallback translation codes per locale.
var getBibleTranslations = map[string][]Descriptor{
	"en": {
		{Locale: "en", Namespace: NamespaceGetBible, Code: "kjv", Abbreviation: "KJV", Name: "King James Version"},
		{Locale: "en", Namespace: NamespaceGetBible, Code: "asv", Abbreviation: "ASV", Name: "American Standard Version"},
		{Locale: "en", Namespace: NamespaceGetBible, Code: "web", Abbreviation: "WEB", Name: "World English Bible"},
	},
	"es": {
		{Locale: "es", Namespace: NamespaceGetBible, Code: "valera", Abbreviation: "RV09", Name: "Reina Valera (1909)"},
		{Locale: "es", Namespace: NamespaceGetBible, Code: "sse", Abbreviation: "SSE", Name: "Sagradas Escrituras (1569)"},
	},
	"de": {
		{Locale: "de", Namespace: NamespaceGetBible, Code: "schlachter", Abbreviation: "SCH", Name: "Schlachter (1951)"},
		{Locale: "de", Namespace: NamespaceGetBible, Code: "luther1545", Abbreviation: "LUT45", Name: "Luther (1545)"},
	},
	"fr": {
		{Locale: "fr", Namespace: NamespaceGetBible, Code: "ls1910", Abbreviation: "LSG", Name: "Louis Segond (1910)"},
		{Locale: "fr", Namespace: NamespaceGetBible, Code: "martin", Abbreviation: "MAR", Name: "Martin (1744)"},
	},
	"pt": {
		{Locale: "pt", Namespace: NamespaceGetBible, Code: "almeida", Abbreviation: "AA", Name: "Almeida Atualizada"},
	},
	"it": {
		{Locale: "it", Namespace: NamespaceGetBible, Code: "riveduta", Abbreviation: "RIV", Name: "Riveduta Bible (1927)"},
		{Locale: "it", Namespace: NamespaceGetBible, Code: "giovanni", Abbreviation: "DIO", Name: "Giovanni Diodati Bible (1649)"},
	},
	"zh": {
		{Locale: "zh", Namespace: NamespaceGetBible, Code: "cus", Abbreviation: "CUS", Name: "Union Simplified"},
		{Locale: "zh", Namespace: NamespaceGetBible, Code: "cut", Abbreviation: "CUT", Name: "Union Traditional"},
	},
}

// Resolve returns the descriptor for a requested translation. An empty
// translation ID yields the locale default; an unknown ID falls back to
// the locale default rather than erroring, so callers must not assume the
// returned descriptor matches the requested ID exactly.
func Resolve(locale, translationID string) Descriptor {
	descriptors := ForLocale(locale)
	requested := strings.TrimSpace(translationID)
	if requested == "" {
		return descriptors[0]
	}
	for _, descriptor := range descriptors {
		if strings.EqualFold(descriptor.Code, requested) || strings.EqualFold(descriptor.Abbreviation, requested) {
			return descriptor
		}
	}
	return descriptors[0]
}

// ForLocale returns the registered descriptors for a locale, falling back
// to the default locale. Every supported locale has at least one entry.
func ForLocale(locale string) []Descriptor {
	normalized := language.NormalizeCode(locale)
	if descriptors, ok := translations[normalized]; ok {
		return descriptors
	}
	return translations[DefaultLocale]
}

// GetBibleDefault returns the GetBible.net descriptor used when the
// multilingual fallback provider serves a locale.
func GetBibleDefault(locale string) Descriptor {
	normalized := language.NormalizeCode(locale)
	if descriptors, ok := getBibleTranslations[normalized]; ok {
		return descriptors[0]
	}
	return getBibleTranslations[DefaultLocale][0]
}

// SupportedLocales lists the locales with registered translations.
func SupportedLocales() []string {
	return []string{"en", "es", "de", "fr", "pt", "it", "zh"}
}

// IsSupportedLocale reports whether the locale has its own registry entries.
func IsSupportedLocale(locale string) bool {
	_, ok := translations[language.NormalizeCode(locale)]
	return ok
}
