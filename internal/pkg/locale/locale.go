// Package locale maps purchase country and interface language to Klarna RFC-1766 locales.
package locale

import "strings"

// Default is used for countries Klarna has no mapping for.
const Default = "en-US"

type mapping struct {
	language string
	locale   string
}

// First entry per country is the fallback when the language isn't supported there.
var table = map[string][]mapping{
	"AT": {{"de", "de-AT"}, {"en", "en-AT"}},
	"AU": {{"en", "en-AU"}},
	"BE": {{"nl", "nl-BE"}, {"fr", "fr-BE"}, {"en", "en-BE"}},
	"CA": {{"en", "en-CA"}, {"fr", "fr-CA"}},
	"CH": {{"de", "de-CH"}, {"fr", "fr-CH"}, {"it", "it-CH"}, {"en", "en-CH"}},
	"DE": {{"de", "de-DE"}, {"en", "en-DE"}},
	"DK": {{"da", "da-DK"}, {"en", "en-DK"}},
	"ES": {{"es", "es-ES"}, {"en", "en-ES"}},
	"FI": {{"fi", "fi-FI"}, {"sv", "sv-FI"}, {"en", "en-FI"}},
	"FR": {{"fr", "fr-FR"}, {"en", "en-FR"}},
	"GB": {{"en", "en-GB"}},
	"IT": {{"it", "it-IT"}, {"en", "en-IT"}},
	"NL": {{"nl", "nl-NL"}, {"en", "en-NL"}},
	"NO": {{"nb", "nb-NO"}, {"en", "en-NO"}},
	"NZ": {{"en", "en-NZ"}},
	"PL": {{"pl", "pl-PL"}, {"en", "en-PL"}},
	"SE": {{"sv", "sv-SE"}, {"en", "en-SE"}},
	"US": {{"en", "en-US"}, {"es", "es-US"}},
}

// Build returns locale for purchase country and interface language.
// Empty country yields empty locale so the field is left unset.
func Build(country, language string) string {
	if country == "" {
		return ""
	}
	mappings, ok := table[strings.ToUpper(country)]
	if !ok || len(mappings) == 0 {
		return Default
	}

	language = baseLanguage(language)
	for _, m := range mappings {
		if m.language == language {
			return m.locale
		}
	}
	return mappings[0].locale
}

var shippingLabels = map[string]string{
	"da": "Fragt",
	"de": "Versand",
	"en": "Shipping",
	"es": "Envío",
	"fi": "Toimitus",
	"fr": "Livraison",
	"it": "Spedizione",
	"nb": "Frakt",
	"nl": "Verzending",
	"pl": "Wysyłka",
	"sv": "Frakt",
}

// ShippingLabel returns the order line name for shipments in the given language.
func ShippingLabel(language string) string {
	language = baseLanguage(language)
	if label, ok := shippingLabels[language]; ok {
		return label
	}
	return shippingLabels["en"]
}

// baseLanguage lowercases and strips region: "sv-SE" -> "sv".
func baseLanguage(language string) string {
	language = strings.ToLower(language)
	if i := strings.IndexAny(language, "-_"); i > 0 {
		language = language[:i]
	}
	return language
}
