package ingest

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/banfr/geofr/internal/dbformat"
	"github.com/banfr/geofr/internal/kdtree"
)

// BuildKDTree reads every row of localisation.dat and writes kdtree.dat:
// the packed k-d tree used by reverse geocoding. It is a separate step
// from Index (the "reverse" CLI verb) so that a database can be
// reindexed without paying to rebuild the tree, and vice versa.
func BuildKDTree(databaseDir string) error {
	loc, err := dbformat.OpenLocalisation(filepath.Join(databaseDir, "localisation.dat"))
	if err != nil {
		return fmt.Errorf("open localisation table: %w", err)
	}
	defer loc.Close()

	n := loc.Len()
	points := make([]kdtree.Point, n)
	for i := 0; i < n; i++ {
		l := loc.At(i)
		points[i] = kdtree.Point{Lon: l.Lon, Lat: l.Lat, RefID: int32(i)}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Lon < points[j].Lon })

	order := kdtree.PreOrder(n)
	builder := kdtree.NewBuilder()
	for _, i := range order {
		builder.Insert(points[i], kdtree.France)
	}

	w := dbformat.NewKDTreeWriter()
	for _, node := range builder.Nodes() {
		w.Append(node)
	}
	if err := w.WriteFile(filepath.Join(databaseDir, "kdtree.dat")); err != nil {
		return fmt.Errorf("write kdtree: %w", err)
	}
	return nil
}
