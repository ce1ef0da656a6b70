// Package engine implements the query engine: hierarchical forward
// lookup with fuzzy fallback (Position) and k-d tree nearest-neighbor
// reverse lookup (Reverse), against a Database of memory-mapped tables
// opened once and shared read-only across concurrent queries.
package engine

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/banfr/geofr/internal/dbformat"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Database holds every memory-mapped table that backs the query engine.
// It is safe for concurrent read-only use by any number of goroutines
// once Open has returned: no table is mutated again. The only mutable
// state is the memo cache behind PositionCached, which is created once
// and is itself safe for concurrent use.
type Database struct {
	dir string

	departement  *dbformat.Table[dbformat.Departement]
	postal       *dbformat.Table[dbformat.Postal]
	commune      *dbformat.Table[dbformat.Commune]
	voie         *dbformat.Table[dbformat.Voie]
	localisation *dbformat.Table[dbformat.Localisation]

	postalIndex  *dbformat.Table[dbformat.IndexEntry]
	communeIndex *dbformat.Table[dbformat.IndexEntry]
	voieIndex    *dbformat.Table[dbformat.IndexEntry]

	kdtree *dbformat.Table[dbformat.KDNode]

	once    sync.Once
	openErr error

	cacheOnce sync.Once
	cache     *lru.Cache[string, Result]
}

// DefaultCacheSize is the capacity of the optional in-process memo cache
// used by PositionCached.
const DefaultCacheSize = 4096

// Open memory-maps every table under dir. All nine files must already
// exist (built by Index/BuildKDTree); Open fails otherwise.
func Open(dir string) (*Database, error) {
	db := &Database{dir: dir}
	db.once.Do(func() { db.openErr = db.mapTables() })
	if db.openErr != nil {
		return nil, db.openErr
	}
	return db, nil
}

func (db *Database) path(name string) string { return filepath.Join(db.dir, name) }

func (db *Database) mapTables() error {
	var err error
	if db.departement, err = dbformat.OpenDepartement(db.path("departement.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.postal, err = dbformat.OpenPostal(db.path("postal.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.commune, err = dbformat.OpenCommune(db.path("commune.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.voie, err = dbformat.OpenVoie(db.path("voie.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.localisation, err = dbformat.OpenLocalisation(db.path("localisation.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.postalIndex, err = dbformat.OpenIndex(db.path("postal_index.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.communeIndex, err = dbformat.OpenIndex(db.path("commune_index.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.voieIndex, err = dbformat.OpenIndex(db.path("voie_index.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if db.kdtree, err = dbformat.OpenKDTree(db.path("kdtree.dat")); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	return nil
}

// Close unmaps every table.
func (db *Database) Close() error {
	var first error
	tables := []interface{ Close() error }{
		db.departement, db.postal, db.commune, db.voie, db.localisation,
		db.postalIndex, db.communeIndex, db.voieIndex, db.kdtree,
	}
	for _, t := range tables {
		if err := t.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (db *Database) ensureCache(size int) *lru.Cache[string, Result] {
	db.cacheOnce.Do(func() {
		c, err := lru.New[string, Result](size)
		if err != nil {
			panic(fmt.Sprintf("geofr: invalid cache size %d: %v", size, err))
		}
		db.cache = c
	})
	return db.cache
}
