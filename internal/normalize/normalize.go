// Package normalize implements the French-address-specific text
// normalizer: ASCII-folding, abbreviation expansion, separator
// stripping, and stop-word removal, producing the comparable
// "normalise" form stored and queried throughout the database. It also
// implements mine(), the address-token miner that splits a free-form
// address into (numero, voie, voie_type).
package normalize

import (
	"regexp"
	"strings"
)

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	commaAposHyph = strings.NewReplacer(",", " ", "'", " ", "-", " ")
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// Uniform applies steps 1-3 of the normalization pipeline: strip
// surrounding whitespace, ASCII-fold diacritics, upper-case, drop
// parenthesized substrings, truncate at a stray "/" or "|", replace
// ",", "'", "-" with a space, and drop '"'.
func Uniform(s string) string {
	s = strings.TrimSpace(s)
	s = asciiFold(s)
	s = removeSeparators(s)
	s = commaAposHyph.Replace(s)
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// removeSeparators drops any parenthesized substring, then keeps only
// the text left of a remaining "/" or "|".
func removeSeparators(s string) string {
	s = parenthesized.ReplaceAllString(s, "")
	if i := strings.IndexAny(s, "/|"); i >= 0 {
		s = s[:i]
	}
	return s
}

// Nom produces the lightly-processed display form of a commune or voie
// name stored alongside its normalise form: ASCII-fold and upper-case,
// then drop parenthesized substrings and truncate at a stray "/" or
// "|" — no abbreviation expansion, no stop-word removal, no comma/
// apostrophe/hyphen stripping.
func Nom(s string) string {
	return removeSeparators(asciiFold(strings.TrimSpace(s)))
}

// UniformWords splits the uniformed string on whitespace into tokens,
// dropping empty tokens produced by the cleanup above.
func UniformWords(s string) []string {
	fields := strings.Fields(Uniform(s))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Translate expands each token through the abbreviation table,
// token-wise, leaving unmatched tokens unchanged.
func Translate(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		if expanded, ok := abbreviations[w]; ok {
			out[i] = expanded
		} else {
			out[i] = w
		}
	}
	return out
}

// dropStopWords filters out stop tokens, preserving order.
func dropStopWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopWords[w]; !stop {
			out = append(out, w)
		}
	}
	return out
}

// processedWords runs the full token pipeline: split, expand
// abbreviations, drop stop words — the exact token set `mine` and the
// final concatenation both operate on.
func processedWords(s string) []string {
	return dropStopWords(Translate(UniformWords(s)))
}

// UniformAdresse produces the normalise form of a street address: the
// concatenation of the processed tokens without separators.
func UniformAdresse(s string) string {
	return strings.Join(processedWords(s), "")
}

// UniformCommune produces the normalise form of a commune name: like
// UniformAdresse, but with any remaining digit characters stripped.
func UniformCommune(s string) string {
	joined := strings.Join(processedWords(s), "")
	return digitPattern.ReplaceAllString(joined, "")
}
