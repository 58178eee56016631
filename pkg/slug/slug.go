package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given title.
// Accented Latin characters common in product and page titles are
// transliterated to their ASCII equivalents.
//
// Examples:
//   - "Privacy Policy" → "privacy-policy"
//   - "Éditeur Crème" → "editeur-creme"
//   - "SEO   Toolkit!" → "seo-toolkit"
func Generate(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	// Transliterate common accented characters to ASCII.
	replacer := strings.NewReplacer(
		"à", "a", "â", "a", "ä", "a", "á", "a",
		"è", "e", "é", "e", "ê", "e", "ë", "e",
		"î", "i", "ï", "i", "í", "i",
		"ô", "o", "ö", "o", "ó", "o",
		"û", "u", "ü", "u", "ù", "u", "ú", "u",
		"ç", "c", "ñ", "n", "ß", "ss",
	)
	s = replacer.Replace(s)

	// Replace any non-alphanumeric run with a single hyphen.
	s = slugRegexp.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
