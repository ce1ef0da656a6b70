package normalize

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// asciiFold transliterates s to plain ASCII and upper-cases it. BAN CSV
// extracts sometimes carry decomposed diacritics (combining marks as
// separate code points); normalizing to NFC first makes unidecode's
// per-rune table lookups exact instead of leaving a stray combining mark
// behind.
func asciiFold(s string) string {
	folded := unidecode.Unidecode(norm.NFC.String(s))
	return strings.ToUpper(folded)
}
