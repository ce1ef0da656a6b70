// Package ingest implements the indexing pipeline: parsing per-department
// BAN CSV extracts, aggregating rows into the postal -> commune -> voie ->
// localisation hierarchy, and emitting the five sorted content tables plus
// the three sort-index tables.
package ingest

import (
	"strconv"
	"strings"

	"github.com/banfr/geofr/internal/coord"
	"github.com/banfr/geofr/internal/normalize"
)

const fieldCount = 19

// Column indices (0-based) of the fields this pipeline reads out of a
// BAN CSV row.
const (
	colNumero            = 5
	colRepetition        = 6
	colNomVoie           = 7
	colCodePostal        = 8
	colNomCommune        = 9
	colCodeInsee         = 10
	colNomComplementaire = 11
	colLongitude         = 14
	colLatitude          = 15
)

// row is one accepted, parsed, and normalized CSV record, ready to be
// accumulated into the department's hierarchy.
type row struct {
	codePostal        int
	communeNom        string
	communeNormalise  string
	codeInsee         string
	voieNom           string
	voieNormalise     string
	numero            int
	repetition        string
	lon, lat          int32
}

// rejectReason explains, for logging purposes only, why a row was
// skipped.
type rejectReason string

const (
	rejectFieldCount   rejectReason = "field_count"
	rejectParseInt     rejectReason = "parse_int"
	rejectParseFloat   rejectReason = "parse_float"
	rejectEmptyCommune rejectReason = "empty_commune"
	rejectEmptyVoie    rejectReason = "empty_voie"
	rejectVoieTooLong  rejectReason = "voie_too_long"
)

func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// parseRow validates and normalizes one raw CSV line's fields, already
// split on ";". It returns ok=false with a reason when the row must be
// rejected — counted and skipped, never fatal.
func parseRow(fields []string) (row, rejectReason, bool) {
	if len(fields) != fieldCount {
		return row{}, rejectFieldCount, false
	}

	codePostal, err := strconv.Atoi(stripQuotes(fields[colCodePostal]))
	if err != nil {
		return row{}, rejectParseInt, false
	}
	numero, err := strconv.Atoi(stripQuotes(fields[colNumero]))
	if err != nil {
		return row{}, rejectParseInt, false
	}
	longitude, err := strconv.ParseFloat(stripQuotes(fields[colLongitude]), 64)
	if err != nil {
		return row{}, rejectParseFloat, false
	}
	latitude, err := strconv.ParseFloat(stripQuotes(fields[colLatitude]), 64)
	if err != nil {
		return row{}, rejectParseFloat, false
	}

	communeSource := stripQuotes(fields[colNomComplementaire])
	if communeSource == "" {
		communeSource = stripQuotes(fields[colNomCommune])
	}
	communeNormalise := normalize.UniformCommune(communeSource)
	if communeNormalise == "" {
		return row{}, rejectEmptyCommune, false
	}
	communeNom := normalize.Nom(communeSource)

	voieSource := stripQuotes(fields[colNomVoie])
	voieNormalise := normalize.UniformAdresse(voieSource)
	if voieNormalise == "" {
		return row{}, rejectEmptyVoie, false
	}
	voieNom := normalize.Nom(voieSource)
	if len(voieNom) > 47 {
		return row{}, rejectVoieTooLong, false
	}

	r := row{
		codePostal:       codePostal,
		communeNom:       communeNom,
		communeNormalise: communeNormalise,
		codeInsee:        stripQuotes(fields[colCodeInsee]),
		voieNom:          voieNom,
		voieNormalise:    voieNormalise,
		numero:           numero,
		repetition:       stripQuotes(fields[colRepetition]),
		lon:              coord.ToInt(longitude),
		lat:              coord.ToInt(latitude),
	}
	return r, "", true
}
