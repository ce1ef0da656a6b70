// Package geofr is an offline address search and geocoding engine for
// France: forward geocoding (postal code, commune, free-form street
// address -> coordinates and a match-quality code) and reverse
// geocoding (coordinates -> nearest known address), both served
// entirely from a precomputed, memory-mapped local database with no
// network access at query time.
package geofr

import (
	"context"

	"github.com/banfr/geofr/internal/config"
	"github.com/banfr/geofr/internal/engine"
)

// Re-exported so callers never need to import internal/engine directly.
type (
	Result             = engine.Result
	DepartementFields  = engine.DepartementFields
	PostalFields       = engine.PostalFields
	CommuneFields      = engine.CommuneFields
	VoieFields         = engine.VoieFields
	LocalisationFields = engine.LocalisationFields
	Thresholds         = engine.Thresholds
)

const (
	QualityLocalisation = engine.QualityLocalisation
	QualityVoieNumero   = engine.QualityVoieNumero
	QualityVoie         = engine.QualityVoie
	QualityCommune      = engine.QualityCommune
	QualityPostal       = engine.QualityPostal
	QualityNone         = engine.QualityNone
)

// Database is an opened, memory-mapped address database, safe for
// concurrent read-only queries.
type Database struct {
	eng *engine.Database
}

// Open memory-maps every table under dir (built by the geofr CLI's
// index and reverse verbs).
func Open(dir string) (*Database, error) {
	eng, err := engine.Open(dir)
	if err != nil {
		return nil, err
	}
	return &Database{eng: eng}, nil
}

// Close unmaps every table.
func (db *Database) Close() error { return db.eng.Close() }

// Position resolves a postal code, commune name, and street address to
// the best-matching point in the database. Pass nil for codePostal and
// "" for commune/adresse when not supplied. Never fails; an
// unresolvable query returns Result.Quality == QualityNone.
func (db *Database) Position(ctx context.Context, codePostal *int, commune, adresse string) Result {
	return db.eng.PositionWithThresholds(ctx, codePostal, commune, adresse, config.C.Thresholds)
}

// PositionCached is Position memoized by an in-process LRU cache keyed
// on the normalized inputs.
func (db *Database) PositionCached(ctx context.Context, codePostal *int, commune, adresse string) Result {
	return db.eng.PositionCachedWithThresholds(ctx, codePostal, commune, adresse, config.C.Thresholds)
}

// Reverse resolves a (longitude, latitude) pair to the nearest known
// localisation.
func (db *Database) Reverse(ctx context.Context, longitude, latitude float64) Result {
	return db.eng.Reverse(ctx, longitude, latitude)
}
