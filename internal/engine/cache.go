package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/banfr/geofr/internal/normalize"
)

// PositionCached is Position memoized by an in-process LRU keyed on the
// normalized form of the inputs, so repeated lookups of the same
// address (a common pattern when batch-geocoding a CSV of records)
// never re-run the search. The cache is created lazily, sized
// DefaultCacheSize, on first call.
func (db *Database) PositionCached(ctx context.Context, codePostal *int, commune, adresse string) Result {
	return db.PositionCachedWithThresholds(ctx, codePostal, commune, adresse, DefaultThresholds())
}

// PositionCachedWithThresholds is PositionCached with caller-supplied
// tuning, used by internal/config so cached and uncached queries stay
// consistent with operator overrides.
func (db *Database) PositionCachedWithThresholds(ctx context.Context, codePostal *int, commune, adresse string, th Thresholds) Result {
	cache := db.ensureCache(DefaultCacheSize)
	key := fingerprint(codePostal, commune, adresse)
	if r, ok := cache.Get(key); ok {
		return r
	}
	r := db.PositionWithThresholds(ctx, codePostal, commune, adresse, th)
	cache.Add(key, r)
	return r
}

func fingerprint(codePostal *int, commune, adresse string) string {
	postal := "-"
	if codePostal != nil {
		postal = strconv.Itoa(*codePostal)
	}
	h := sha256.New()
	h.Write([]byte(postal))
	h.Write([]byte{0})
	h.Write([]byte(normalize.UniformCommune(commune)))
	h.Write([]byte{0})
	h.Write([]byte(normalize.UniformAdresse(adresse)))
	return hex.EncodeToString(h.Sum(nil))
}
