package engine

import (
	"context"

	"github.com/banfr/geofr/internal/kdtree"
)

// Reverse resolves a (longitude, latitude) pair to the nearest known
// localisation, per spec.md §4.7. It returns quality 6 only when the
// k-d tree is empty (an uninitialized or corrupt database); any
// populated database always finds a nearest point.
func (db *Database) Reverse(ctx context.Context, longitude, latitude float64) Result {
	res, ok := kdtree.Nearest(db.kdtree, [2]float64{longitude, latitude})
	if !ok {
		return noMatch()
	}
	return db.assembleResult(levelLocalisation, res.RefID, QualityLocalisation)
}
