package normalize

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// Mined is the result of mining a free-form street address into its
// number, street name, and street type.
type Mined struct {
	Numero      int
	HasNumero   bool
	Voie        string
	VoieType    string
	HasVoieType bool
}

// Mine extracts (numero, voie, voie_type) from a free-form address. It
// operates on the same processed token stream (abbreviation-expanded,
// stop-words dropped) that feeds UniformAdresse, so Mine(x).Voie always
// equals a suffix concatenation of UniformAdresse(x)'s tokens.
//
// Returns ok=false only when the address has no tokens at all.
func Mine(adresse string) (Mined, bool) {
	words := processedWords(adresse)
	if len(words) == 0 {
		return Mined{}, false
	}

	typeIndex, hasType := findVoieType(words)

	numeroLimit := len(words) - 1
	if hasType {
		numeroLimit = typeIndex
	}
	numero, numeroIndex, hasNumero := findNumero(words, numeroLimit)

	if !hasType {
		if hasNumero {
			typeIndex = numeroIndex + 1
		} else {
			typeIndex = 0
		}
	}

	m := Mined{Numero: numero, HasNumero: hasNumero}
	if typeIndex < len(words) {
		m.Voie = joinFrom(words, typeIndex)
		m.VoieType = words[typeIndex]
		m.HasVoieType = true
	}
	return m, true
}

// findVoieType scans right-to-left for the rightmost token that is a
// one-word street type, or whose pair with its successor is a two-word
// street type.
func findVoieType(words []string) (int, bool) {
	for i := len(words) - 1; i >= 0; i-- {
		if i+1 < len(words) {
			if _, ok := voieType2[wordPair{words[i], words[i+1]}]; ok {
				return i, true
			}
		}
		if _, ok := voieType1[words[i]]; ok {
			return i, true
		}
	}
	return 0, false
}

// findNumero scans tokens[0:limit) right-to-left for the first token
// containing a digit run (e.g. "12BIS" yields 12), returning its parsed
// value and index.
func findNumero(words []string, limit int) (int, int, bool) {
	for i := limit - 1; i >= 0; i-- {
		if digits := digitRun.FindString(words[i]); digits != "" {
			n, err := strconv.Atoi(digits)
			if err == nil {
				return n, i, true
			}
		}
	}
	return 0, 0, false
}

func joinFrom(words []string, from int) string {
	out := ""
	for _, w := range words[from:] {
		out += w
	}
	return out
}
