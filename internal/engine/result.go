package engine

import "github.com/banfr/geofr/internal/coord"

// Quality codes, per spec.md §4.6's result table: the deepest table
// level the query actually resolved.
const (
	QualityLocalisation = 1
	QualityVoieNumero   = 2
	QualityVoie         = 3
	QualityCommune      = 4
	QualityPostal       = 5
	QualityNone         = 6
)

// level identifies which table a match bottomed out at; assembleResult
// walks ref_id back-pointers upward from it to fill every ancestor.
type level int

const (
	levelNone level = iota
	levelPostal
	levelCommune
	levelVoie
	levelLocalisation
)

// Result is the outcome of Position or Reverse: the resolved address
// hierarchy down to whatever depth matched, plus coordinates and a
// quality code. Every sub-struct is nil when that level was not
// resolved; Longitude/Latitude are nil exactly when Quality > 4.
type Result struct {
	Departement  *DepartementFields  `json:"departement,omitempty"`
	Postal       *PostalFields       `json:"postal,omitempty"`
	Commune      *CommuneFields      `json:"commune,omitempty"`
	Voie         *VoieFields         `json:"voie,omitempty"`
	Localisation *LocalisationFields `json:"localisation,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty"`
	Latitude     *float64            `json:"latitude,omitempty"`
	Quality      int                 `json:"quality"`
}

type DepartementFields struct {
	Code string `json:"code"`
}

type PostalFields struct {
	Code int32 `json:"code"`
}

type CommuneFields struct {
	Nom       string `json:"nom"`
	CodeInsee string `json:"code_insee"`
}

type VoieFields struct {
	Nom string `json:"nom"`
}

type LocalisationFields struct {
	Numero int16 `json:"numero"`
}

// noMatch is the quality-6 result: no field resolved at all.
func noMatch() Result { return Result{Quality: QualityNone} }

// assembleResult walks ref_id back-pointers upward from (lvl, rowID) to
// reconstruct the full hierarchy, independent of which search path
// found that row — a fallback hit on voie_index, for instance, still
// yields the correct commune/postal/departement chain via voie.RefID.
func (db *Database) assembleResult(lvl level, rowID int32, quality int) Result {
	r := Result{Quality: quality}

	communeID, haveCommune := int32(0), false
	postalID, havePostal := int32(0), false

	if lvl == levelLocalisation {
		loc := db.localisation.At(int(rowID))
		r.Localisation = &LocalisationFields{Numero: loc.Numero}
		lon, lat := coord.ToDegrees(loc.Lon), coord.ToDegrees(loc.Lat)
		r.Longitude, r.Latitude = &lon, &lat
		rowID = loc.RefID
		lvl = levelVoie
	}
	if lvl == levelVoie {
		voie := db.voie.At(int(rowID))
		r.Voie = &VoieFields{Nom: voie.Nom}
		if r.Longitude == nil {
			lon, lat := coord.ToDegrees(voie.Lon), coord.ToDegrees(voie.Lat)
			r.Longitude, r.Latitude = &lon, &lat
		}
		communeID, haveCommune = voie.RefID, true
		lvl = levelCommune
	}
	if lvl == levelCommune {
		if !haveCommune {
			communeID, haveCommune = rowID, true
		}
		commune := db.commune.At(int(communeID))
		r.Commune = &CommuneFields{Nom: commune.Nom, CodeInsee: commune.CodeInsee}
		if r.Longitude == nil {
			lon, lat := coord.ToDegrees(commune.Lon), coord.ToDegrees(commune.Lat)
			r.Longitude, r.Latitude = &lon, &lat
		}
		postalID, havePostal = commune.RefID, true
		lvl = levelPostal
	}
	if lvl == levelPostal {
		if !havePostal {
			postalID, havePostal = rowID, true
		}
		postal := db.postal.At(int(postalID))
		r.Postal = &PostalFields{Code: postal.Code}
		dept := db.departement.At(int(postal.RefID))
		r.Departement = &DepartementFields{Code: dept.Code}
	}
	return r
}
